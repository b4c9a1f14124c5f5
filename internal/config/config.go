package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from a .env file or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Resume   ResumeConfig   `mapstructure:"resume"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	LogLevel       string `mapstructure:"log_level"`
	ReloadOnChange bool   `mapstructure:"reload_on_change"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// AuthConfig controls token signing.
type AuthConfig struct {
	SecretKey            string `mapstructure:"secret_key"`
	Algorithm            string `mapstructure:"algorithm"`
	AccessTokenTTLMinute int    `mapstructure:"access_token_expires_minutes"`
}

// DatabaseConfig contains connection options for SQLite or PostgreSQL.
type DatabaseConfig struct {
	Type     string `mapstructure:"type"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	Verbose  bool   `mapstructure:"-"`
}

// RedisConfig 包含 Redis 连接配置。Addr 为空时不启用缓存与任务队列。
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// ResumeConfig covers the media endpoints.
type ResumeConfig struct {
	PDFPath   string `mapstructure:"pdf_path"`
	PDFObject string `mapstructure:"pdf_object"`
	HTMLURL   string `mapstructure:"html_url"`
	ClamdAddr string `mapstructure:"clamd_addr"`
}

// AdminConfig holds the bootstrap credentials seeded once at startup.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// WorkerConfig 配置 PDF 渲染 worker。
type WorkerConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	if d.IsSQLite() {
		return d.Path
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// IsSQLite reports whether the file-backed driver is selected.
func (d DatabaseConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(d.Type), "sqlite")
}

// Enabled reports whether a MinIO endpoint is configured.
func (m MinIOConfig) Enabled() bool {
	return strings.TrimSpace(m.Endpoint) != ""
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// AccessTokenTTL converts the configured minutes into a duration.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinute) * time.Minute
}

// Address returns host:port for the HTTP listener.
func (a APIConfig) Address() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// SlogLevel maps API_LOG_LEVEL to a slog level. Unknown values fall back to error.
func (a APIConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Origins splits the comma separated CORS allow list.
func (a APIConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(a.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Load reads .env (if present) and then configuration from environment variables (with defaults).
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Database.Verbose = cfg.API.ReloadOnChange

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8000)
	v.SetDefault("api.log_level", "error")
	v.SetDefault("api.reload_on_change", false)
	v.SetDefault("api.allowed_origins", "")
	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.access_token_expires_minutes", 15)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "resume.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "resume")
	v.SetDefault("database.user", "resume")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "resume")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("resume.pdf_path", "resume.pdf")
	v.SetDefault("resume.pdf_object", "resume/resume.pdf")
	v.SetDefault("worker.concurrency", 2)
	v.SetDefault("worker.metrics_addr", ":9091")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.host":                          "API_HOST",
		"api.port":                          "API_PORT",
		"api.log_level":                     "API_LOG_LEVEL",
		"api.reload_on_change":              "API_RELOAD_ON_CHANGE",
		"api.allowed_origins":               "CORS_ALLOWED_ORIGINS",
		"auth.secret_key":                   "SECRET_KEY",
		"auth.algorithm":                    "ALGORITHM",
		"auth.access_token_expires_minutes": "ACCESS_TOKEN_EXPIRES_MINUTES",
		"database.type":                     "DB_TYPE",
		"database.path":                     "DB_PATH",
		"database.host":                     "DATABASE_HOST",
		"database.port":                     "DATABASE_PORT",
		"database.name":                     "POSTGRES_DB",
		"database.user":                     "POSTGRES_USER",
		"database.password":                 "POSTGRES_PASSWORD",
		"database.sslmode":                  "DATABASE_SSLMODE",
		"redis.addr":                        "REDIS_ADDR",
		"redis.password":                    "REDIS_PASSWORD",
		"redis.db":                          "REDIS_DB",
		"redis.cache_ttl":                   "RESUME_CACHE_TTL",
		"minio.endpoint":                    "MINIO_ENDPOINT",
		"minio.access_key_id":               "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":           "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":                     "MINIO_USE_SSL",
		"minio.bucket":                      "MINIO_BUCKET",
		"minio.region":                      "MINIO_REGION",
		"minio.auto_create_bucket":          "MINIO_AUTO_CREATE_BUCKET",
		"resume.pdf_path":                   "RESUME_PDF_PATH",
		"resume.pdf_object":                 "RESUME_PDF_OBJECT",
		"resume.html_url":                   "RESUME_HTML_URL",
		"resume.clamd_addr":                 "CLAMD_ADDR",
		"admin.username":                    "EMAIL",
		"admin.password":                    "PLAINPASS",
		"worker.concurrency":                "WORKER_CONCURRENCY",
		"worker.metrics_addr":               "WORKER_METRICS_ADDR",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	switch strings.ToLower(cfg.API.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "critical":
	default:
		return fmt.Errorf("unsupported log level %q", cfg.API.LogLevel)
	}
	if strings.TrimSpace(cfg.Auth.SecretKey) == "" {
		return errors.New("secret key is required (SECRET_KEY)")
	}
	switch strings.ToUpper(cfg.Auth.Algorithm) {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported signing algorithm %q", cfg.Auth.Algorithm)
	}
	if cfg.Auth.AccessTokenTTLMinute <= 0 {
		return errors.New("access token ttl must be positive")
	}

	switch strings.ToLower(cfg.Database.Type) {
	case "sqlite":
		if cfg.Database.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	case "postgres", "postgresql":
		if cfg.Database.Host == "" {
			return errors.New("database host is required")
		}
		if cfg.Database.Port <= 0 {
			return errors.New("database port must be positive")
		}
		if cfg.Database.Name == "" {
			return errors.New("database name is required")
		}
		if cfg.Database.User == "" {
			return errors.New("database user is required")
		}
		if cfg.Database.Password == "" {
			return errors.New("database password is required")
		}
	default:
		return fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}

	if cfg.MinIO.Enabled() {
		if cfg.MinIO.AccessKeyID == "" {
			return errors.New("minio access key id is required")
		}
		if cfg.MinIO.SecretAccessKey == "" {
			return errors.New("minio secret access key is required")
		}
		if cfg.MinIO.Bucket == "" {
			return errors.New("minio bucket is required")
		}
	}
	return nil
}
