package storage

import (
	"context"
	"testing"

	"sikassosugu.ml/app/internal/config"
)

func TestNewLocalDriver(t *testing.T) {
	res, err := New(context.Background(), config.StorageConfig{
		Driver:         "local",
		LocalDir:       t.TempDir(),
		LocalURLPrefix: "/uploads",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res.Driver != "local" {
		t.Errorf("driver = %q, want local", res.Driver)
	}
	if res.Storage == nil {
		t.Fatal("nil storage")
	}
}

func TestNewDefaultsToLocal(t *testing.T) {
	res, err := New(context.Background(), config.StorageConfig{LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res.Driver != "local" {
		t.Errorf("driver = %q, want local", res.Driver)
	}
}

func TestNewS3MissingConfig(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "s3", S3Bucket: "b"})
	if err == nil {
		t.Fatal("expected error for incomplete s3 config")
	}
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
