package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App   AppConfig
	Log   LogConfig
	HTTP  HTTPConfig
	Store StoreConfig
	Media MediaConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxUploadSize    int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// StoreConfig selects and locates the content record stores. Each entity
// kind (about singleton, projects collection) gets its own durable store
// inside DataDir.
type StoreConfig struct {
	Driver     string // json or sqlite
	DataDir    string // json driver: directory holding projects.json / about.json
	SQLitePath string // sqlite driver: database file path
}

// MediaConfig configures the media blob backend.
type MediaConfig struct {
	Backend       string // local or s3
	LocalDir      string // local: directory blobs are written to
	PublicPath    string // local: URL path prefix the directory is served under
	Endpoint      string // s3: endpoint URL (any S3-compatible host)
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	UsePathStyle  bool
	PublicBaseURL string // s3: base URL returned references are built from
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PORTFOLIO_ prefix (e.g., PORTFOLIO_MEDIA_SECRET_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxUploadSize:    v.GetInt64("http.max_upload_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Store: StoreConfig{
			Driver:     v.GetString("store.driver"),
			DataDir:    v.GetString("store.data_dir"),
			SQLitePath: v.GetString("store.sqlite_path"),
		},
		Media: MediaConfig{
			Backend:       v.GetString("media.backend"),
			LocalDir:      v.GetString("media.local_dir"),
			PublicPath:    v.GetString("media.public_path"),
			Endpoint:      v.GetString("media.endpoint"),
			Region:        v.GetString("media.region"),
			Bucket:        v.GetString("media.bucket"),
			AccessKey:     v.GetString("media.access_key"),
			SecretKey:     v.GetString("media.secret_key"),
			UseSSL:        v.GetBool("media.use_ssl"),
			UsePathStyle:  v.GetBool("media.use_path_style"),
			PublicBaseURL: v.GetString("media.public_base_url"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "portfolio-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxUploadSize == 0 {
		cfg.HTTP.MaxUploadSize = 100 << 20 // 100MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "json"
	}
	if cfg.Store.DataDir == "" {
		cfg.Store.DataDir = "data"
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "data/portfolio.db"
	}
	if cfg.Media.Backend == "" {
		cfg.Media.Backend = "local"
	}
	if cfg.Media.LocalDir == "" {
		cfg.Media.LocalDir = "public/uploads"
	}
	if cfg.Media.PublicPath == "" {
		cfg.Media.PublicPath = "/uploads"
	}
	if cfg.Media.Region == "" {
		cfg.Media.Region = "us-east-1"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Store.Driver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("store.driver must be 'json' or 'sqlite', got %q", c.Store.Driver)
	}

	switch c.Media.Backend {
	case "local":
	case "s3":
		if c.Media.Bucket == "" {
			return fmt.Errorf("media.bucket is required for the s3 backend")
		}
		if c.Media.AccessKey == "" || c.Media.SecretKey == "" {
			return fmt.Errorf("media.access_key and media.secret_key are required for the s3 backend")
		}
	default:
		return fmt.Errorf("media.backend must be 'local' or 's3', got %q", c.Media.Backend)
	}

	if c.HTTP.MaxUploadSize < 0 {
		return fmt.Errorf("http.max_upload_size cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}
