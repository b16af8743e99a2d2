package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	DB     DBConfig
	Local  LocalConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Backup BackupConfig
}

// StoreConfig selects the persistence driver: "postgres" or "local".
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// LocalConfig holds settings for the file-backed local store.
type LocalConfig struct {
	Dir string `mapstructure:"dir"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// BackupConfig holds backup export settings.
type BackupConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BILLBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Store defaults: local file store keeps the zero-config path working
	v.SetDefault("store.driver", "local")
	v.SetDefault("local.dir", "./data")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billbook")
	v.SetDefault("db.password", "billbook_secret")
	v.SetDefault("db.name", "billbook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "billbook")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "billbook-backups")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@billbook.app")
	v.SetDefault("email.from_name", "BillBook")

	// Backup defaults
	v.SetDefault("backup.bucket", "")
	v.SetDefault("backup.prefix", "backups")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BILLBOOK_SERVER_PORT",
		"server.read_timeout":  "BILLBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BILLBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BILLBOOK_SERVER_ENVIRONMENT",
		"store.driver":         "BILLBOOK_STORE_DRIVER",
		"local.dir":            "BILLBOOK_LOCAL_DIR",
		"db.host":              "BILLBOOK_DB_HOST",
		"db.port":              "BILLBOOK_DB_PORT",
		"db.user":              "BILLBOOK_DB_USER",
		"db.password":          "BILLBOOK_DB_PASSWORD",
		"db.name":              "BILLBOOK_DB_NAME",
		"db.sslmode":           "BILLBOOK_DB_SSLMODE",
		"db.max_open":          "BILLBOOK_DB_MAX_OPEN",
		"db.max_idle":          "BILLBOOK_DB_MAX_IDLE",
		"jwt.secret":           "BILLBOOK_JWT_SECRET",
		"jwt.access_expiry":    "BILLBOOK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "BILLBOOK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "BILLBOOK_JWT_ISSUER",
		"s3.region":            "BILLBOOK_S3_REGION",
		"s3.bucket":            "BILLBOOK_S3_BUCKET",
		"s3.endpoint":          "BILLBOOK_S3_ENDPOINT",
		"s3.access_key":        "BILLBOOK_S3_ACCESS_KEY",
		"s3.secret_key":        "BILLBOOK_S3_SECRET_KEY",
		"s3.presign_expiry":    "BILLBOOK_S3_PRESIGN_EXPIRY",
		"log.level":            "BILLBOOK_LOG_LEVEL",
		"log.format":           "BILLBOOK_LOG_FORMAT",
		"cors.allowed_origins": "BILLBOOK_CORS_ALLOWED_ORIGINS",
		"email.provider":       "BILLBOOK_EMAIL_PROVIDER",
		"email.region":         "BILLBOOK_EMAIL_REGION",
		"email.from_address":   "BILLBOOK_EMAIL_FROM_ADDRESS",
		"email.from_name":      "BILLBOOK_EMAIL_FROM_NAME",
		"backup.bucket":        "BILLBOOK_BACKUP_BUCKET",
		"backup.prefix":        "BILLBOOK_BACKUP_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLBOOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Driver: v.GetString("store.driver"),
	}
	cfg.Local = LocalConfig{
		Dir: v.GetString("local.dir"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Backup = BackupConfig{
		Bucket: v.GetString("backup.bucket"),
		Prefix: v.GetString("backup.prefix"),
	}
	// Backup bucket defaults to the S3 bucket when unset
	if cfg.Backup.Bucket == "" {
		cfg.Backup.Bucket = cfg.S3.Bucket
	}

	return cfg, nil
}
