package domain

import (
	"testing"
)

func TestParseBackendType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    BackendType
		wantErr bool
	}{
		{name: "filesystem", input: "filesystem", want: BackendFilesystem},
		{name: "s3", input: "s3", want: BackendS3},
		{name: "azure", input: "azure", want: BackendAzure},
		{name: "imgur", input: "imgur", want: BackendImgur},
		{name: "unknown value", input: "ftp", wantErr: true},
		{name: "empty value", input: "", wantErr: true},
		{name: "case sensitive", input: "S3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBackendType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBackendType(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBackendType(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBackendType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBackendLocatorVariant(t *testing.T) {
	tests := []struct {
		name    string
		locator BackendLocator
		want    BackendType
		wantErr bool
	}{
		{
			name:    "filesystem variant",
			locator: BackendLocator{Filesystem: &FilesystemLocator{Path: "/data/uploads/x"}},
			want:    BackendFilesystem,
		},
		{
			name:    "s3 variant",
			locator: BackendLocator{S3: &S3Locator{Bucket: "media", Key: "x"}},
			want:    BackendS3,
		},
		{
			name:    "azure variant",
			locator: BackendLocator{Azure: &AzureLocator{Container: "media", Blob: "x"}},
			want:    BackendAzure,
		},
		{
			name:    "imgur variant",
			locator: BackendLocator{Imgur: &ImgurLocator{DeleteHash: "h", Link: "https://i.imgur.com/x.png"}},
			want:    BackendImgur,
		},
		{
			name:    "empty locator",
			locator: BackendLocator{},
			wantErr: true,
		},
		{
			name: "two variants set",
			locator: BackendLocator{
				Filesystem: &FilesystemLocator{Path: "/x"},
				S3:         &S3Locator{Bucket: "media", Key: "x"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.locator.Variant()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Variant() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Variant() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Variant() = %v, want %v", got, tt.want)
			}
		})
	}
}
