package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quillpad/mediastore/internal/backend"
	"github.com/quillpad/mediastore/internal/config"
	"github.com/quillpad/mediastore/internal/domain"
	"github.com/quillpad/mediastore/internal/repository"
	"github.com/quillpad/mediastore/internal/service"
	"github.com/quillpad/mediastore/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"golang.org/x/sync/errgroup"
)

// Operations CLI over the media storage facade. The HTTP transport
// consuming the same facade lives in a separate service.
func main() {
	savePath := flag.String("save", "", "Path of an image file to upload")
	deleteID := flag.String("delete", "", "Upload id to delete")
	getID := flag.String("get", "", "Upload id to look up")
	listUser := flag.String("list-user", "", "List uploads owned by this user")
	listNote := flag.String("list-note", "", "List uploads attached to this note")
	username := flag.String("user", "", "Acting username (for -save and -delete)")
	noteID := flag.String("note", "", "Target note id or alias (for -save)")
	flag.Parse()

	// Load configuration; an unrecognized MEDIA_BACKEND fails here.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	otelProvider, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: cfg.OTEL.ServiceVersion,
		Environment:    cfg.OTEL.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		Enabled:        cfg.OTEL.Enabled,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize OpenTelemetry: %v", err)
	}
	if otelProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			otelProvider.Shutdown(shutdownCtx)
		}()
	}

	// Connect to MongoDB with OpenTelemetry instrumentation
	ctxConn, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoOpts := options.Client().ApplyURI(cfg.MongoDB.URI)
	if cfg.OTEL.Enabled {
		mongoOpts.SetMonitor(otelmongo.NewMonitor())
	}

	mongoClient, err := mongo.Connect(ctxConn, mongoOpts)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()

	// Verify both stores are reachable before doing anything
	g, ctxPing := errgroup.WithContext(ctxConn)
	g.Go(func() error { return mongoClient.Ping(ctxPing, nil) })
	g.Go(func() error { return redisClient.Ping(ctxPing).Err() })
	if err := g.Wait(); err != nil {
		log.Fatalf("Dependency check failed: %v", err)
	}

	mongoDB := mongoClient.Database(cfg.MongoDB.Database)

	// Construct the active backend once; it is held for the lifetime
	// of the process.
	mediaBackend, err := backend.New(ctx, cfg.Media)
	if err != nil {
		log.Fatalf("Failed to initialize media backend: %v", err)
	}
	log.Printf("Media backend ready: %s", mediaBackend.Type())

	uploadRepo := repository.NewMongoUploadRepository(mongoDB)
	cacheRepo := repository.NewRedisCacheRepository(redisClient)
	cachedUploads := repository.NewCachedUploadRepository(uploadRepo, cacheRepo)
	noteRepo := repository.NewMongoNoteRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)

	media := service.NewMediaService(
		mediaBackend,
		cachedUploads,
		noteRepo,
		userRepo,
		cfg.Media.MaxUploadSizeMB,
	)

	switch {
	case *savePath != "":
		if *username == "" || *noteID == "" {
			log.Fatal("-save requires -user and -note")
		}
		file, err := os.ReadFile(*savePath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *savePath, err)
		}
		url, err := media.SaveFile(ctx, file, *username, *noteID)
		if err != nil {
			log.Fatalf("Save failed: %v", err)
		}
		printJSON(media.ToMediaUploadURLDTO(url))

	case *deleteID != "":
		if *username == "" {
			log.Fatal("-delete requires -user")
		}
		if err := media.DeleteFile(ctx, *deleteID, *username); err != nil {
			log.Fatalf("Delete failed: %v", err)
		}
		fmt.Printf("Deleted %s\n", *deleteID)

	case *getID != "":
		upload, err := media.FindUploadByID(ctx, *getID)
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		printJSON(media.ToMediaUploadDTO(upload))

	case *listUser != "":
		uploads, err := media.ListUploadsByUser(ctx, &domain.User{Username: *listUser})
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		printUploads(media, uploads)

	case *listNote != "":
		uploads, err := media.ListUploadsByNote(ctx, &domain.Note{ID: *listNote})
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		printUploads(media, uploads)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printUploads(media *service.MediaService, uploads []*domain.MediaUpload) {
	dtos := make([]domain.MediaUploadDTO, 0, len(uploads))
	for _, u := range uploads {
		dtos = append(dtos, media.ToMediaUploadDTO(u))
	}
	printJSON(dtos)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	fmt.Println(string(out))
}
