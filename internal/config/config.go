package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/quillpad/mediastore/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Media   MediaConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	OTEL    OTELConfig
}

// MediaConfig selects the storage backend and carries its settings.
// Exactly one backend is active for the lifetime of the process.
type MediaConfig struct {
	Backend         domain.BackendType
	MaxUploadSizeMB int64
	Filesystem      FilesystemConfig
	S3              S3Config
	Azure           AzureConfig
	Imgur           ImgurConfig
}

// FilesystemConfig holds local-disk backend configuration
type FilesystemConfig struct {
	UploadsPath string
}

// S3Config holds object-storage backend configuration. Endpoint may
// point at any S3-compatible store (AWS, SeaweedFS, MinIO).
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// AzureConfig holds blob-storage backend configuration
type AzureConfig struct {
	AccountName string
	AccountKey  string
	Container   string
}

// ImgurConfig holds the third-party image host configuration
type ImgurConfig struct {
	ClientID string
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
}

// OTELConfig holds OpenTelemetry export configuration
type OTELConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// Load reads configuration from environment variables
// It attempts to load from .env file first, then falls back to system env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	backend, err := domain.ParseBackendType(getEnv("MEDIA_BACKEND", "filesystem"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		Media: MediaConfig{
			Backend:         backend,
			MaxUploadSizeMB: getEnvAsInt64("MAX_UPLOAD_SIZE_MB", 10),
			Filesystem: FilesystemConfig{
				UploadsPath: getEnv("MEDIA_UPLOADS_PATH", "uploads"),
			},
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				Region:    getEnv("S3_REGION", "us-east-1"),
				Bucket:    getEnv("S3_BUCKET", "media"),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
			},
			Azure: AzureConfig{
				AccountName: getEnv("AZURE_ACCOUNT_NAME", ""),
				AccountKey:  getEnv("AZURE_ACCOUNT_KEY", ""),
				Container:   getEnv("AZURE_CONTAINER", "media"),
			},
			Imgur: ImgurConfig{
				ClientID: getEnv("IMGUR_CLIENT_ID", ""),
			},
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "quillpad"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		OTEL: OTELConfig{
			Enabled:        getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "mediastore"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnv("OTEL_ENVIRONMENT", "development"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the selected backend has the settings it needs
func (c *Config) Validate() error {
	switch c.Media.Backend {
	case domain.BackendFilesystem:
		if c.Media.Filesystem.UploadsPath == "" {
			return fmt.Errorf("MEDIA_UPLOADS_PATH is required for the filesystem backend")
		}
	case domain.BackendS3:
		if c.Media.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	case domain.BackendAzure:
		if c.Media.Azure.AccountName == "" {
			return fmt.Errorf("AZURE_ACCOUNT_NAME is required for the azure backend")
		}
		if c.Media.Azure.AccountKey == "" {
			return fmt.Errorf("AZURE_ACCOUNT_KEY is required for the azure backend")
		}
	case domain.BackendImgur:
		if c.Media.Imgur.ClientID == "" {
			return fmt.Errorf("IMGUR_CLIENT_ID is required for the imgur backend")
		}
	}
	if c.Media.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
