package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is assembled once at startup from environment variables.
// godotenv loads a local .env in development; production supplies real
// env vars.
type Config struct {
	App      AppConfig
	DB       DBConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Upload   UploadAuthConfig
	WhatsApp WhatsAppConfig
}

type AppConfig struct {
	Env           string // "dev" or "prod"
	Addr          string
	BaseURL       string // public origin, used in emails and links
	CookieSecret  []byte
	SecureCookies bool
	SessionTTL    time.Duration

	// Recipient of new-order notifications.
	OrderEmail string
}

type DBConfig struct {
	DSN string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	From          string
	FromName      string
	TLSMode       string // "", "starttls", "tls"
	SkipVerifyTLS bool
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

// StorageConfig selects the file-storage driver for product images.
type StorageConfig struct {
	Driver string // "local" or "s3"

	LocalDir       string
	LocalURLPrefix string

	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

// UploadAuthConfig signs direct-upload requests for payment receipts.
type UploadAuthConfig struct {
	PrivateKey string
	PublicKey  string
	ExpireIn   time.Duration
}

// WhatsAppConfig holds the numbers behind the wa.me contact links.
type WhatsAppConfig struct {
	// E.164 digits without "+", e.g. "22370000000".
	SalesNumber   string
	SupportNumber string
}

func Load() (Config, error) {
	var cfg Config

	cfg.App = AppConfig{
		Env:           envOr("APP_ENV", "dev"),
		Addr:          envOr("APP_ADDR", ":8080"),
		BaseURL:       envOr("APP_BASE_URL", "http://localhost:8080"),
		CookieSecret:  []byte(os.Getenv("COOKIE_SECRET")),
		SecureCookies: envOr("APP_ENV", "dev") == "prod",
		SessionTTL:    durationOr("SESSION_TTL", 30*24*time.Hour),
		OrderEmail:    os.Getenv("ORDER_NOTIFY_EMAIL"),
	}
	if len(cfg.App.CookieSecret) < 16 {
		return cfg, fmt.Errorf("COOKIE_SECRET must be at least 16 bytes")
	}

	cfg.DB = DBConfig{DSN: os.Getenv("DB_DSN")}
	if cfg.DB.DSN == "" {
		return cfg, fmt.Errorf("DB_DSN is required")
	}

	cfg.SMTP = SMTPConfig{
		Host:          envOr("SMTP_HOST", "localhost"),
		Port:          envOr("SMTP_PORT", "1025"),
		User:          os.Getenv("SMTP_USER"),
		Pass:          os.Getenv("SMTP_PASS"),
		From:          envOr("SMTP_FROM", "no-reply@sikassosugu.ml"),
		FromName:      envOr("SMTP_FROM_NAME", "Sikasso Sugu"),
		TLSMode:       os.Getenv("SMTP_TLS_MODE"),
		SkipVerifyTLS: boolOr("SMTP_SKIP_VERIFY_TLS", false),
	}

	cfg.Redis = RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Username: os.Getenv("REDIS_USERNAME"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       intOr("REDIS_DB", 0),
		TTL:      durationOr("REDIS_TTL", 5*time.Minute),
	}

	cfg.Storage = StorageConfig{
		Driver:          envOr("STORAGE_DRIVER", "local"),
		LocalDir:        envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
		LocalURLPrefix:  envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
		S3Region:        os.Getenv("S3_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Prefix:        envOr("S3_PREFIX", "uploads"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	cfg.Upload = UploadAuthConfig{
		PrivateKey: os.Getenv("UPLOAD_PRIVATE_KEY"),
		PublicKey:  os.Getenv("UPLOAD_PUBLIC_KEY"),
		ExpireIn:   durationOr("UPLOAD_EXPIRE_IN", 10*time.Minute),
	}

	cfg.WhatsApp = WhatsAppConfig{
		SalesNumber:   envOr("WHATSAPP_SALES_NUMBER", "22370000000"),
		SupportNumber: envOr("WHATSAPP_SUPPORT_NUMBER", "22370000000"),
	}

	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intOr(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolOr(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durationOr(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
