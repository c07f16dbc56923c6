package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/sikassosugu?parseTime=true")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != "dev" {
		t.Errorf("env = %q, want dev", cfg.App.Env)
	}
	if cfg.App.SecureCookies {
		t.Error("secure cookies should be off outside prod")
	}
	if cfg.Storage.Driver != "local" {
		t.Errorf("storage driver = %q, want local", cfg.Storage.Driver)
	}
	if cfg.Storage.LocalDir == "" || cfg.Storage.LocalURLPrefix == "" {
		t.Error("local storage defaults missing")
	}
}

func TestLoadStorageFromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_REGION", "eu-west-1")
	t.Setenv("S3_BUCKET", "sikassosugu-media")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.sikassosugu.ml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.Storage
	if s.Driver != "s3" || s.S3Region != "eu-west-1" || s.S3Bucket != "sikassosugu-media" {
		t.Errorf("storage = %+v, env values not applied", s)
	}
	if s.S3Prefix != "uploads" {
		t.Errorf("s3 prefix = %q, want default uploads", s.S3Prefix)
	}
}

func TestLoadRejectsShortCookieSecret(t *testing.T) {
	t.Setenv("COOKIE_SECRET", "short")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/sikassosugu")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short COOKIE_SECRET")
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("COOKIE_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("DB_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DB_DSN")
	}
}
