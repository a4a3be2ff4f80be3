package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL   = "http://127.0.0.1:8080"
	DefaultLogLevel = "info"

	DefaultMaxUploadBytes     int64 = 10 * 1024 * 1024
	DefaultMultipartMaxMemory int64 = 8 * 1024 * 1024
	DefaultTokenTTLMinutes          = 30

	configPathEnvKey  = "INNKEEP_CONFIG"
	defaultConfigPath = "innkeep.toml"

	databaseDSNEnvKey  = "INNKEEP_DATABASE_DSN"
	storeAccessEnvKey  = "INNKEEP_OBJECT_STORE_ACCESS_KEY"
	storeSecretEnvKey  = "INNKEEP_OBJECT_STORE_SECRET_KEY"
	tokenSecretEnvKey  = "INNKEEP_TOKEN_SECRET"
	logLevelEnvKey     = "INNKEEP_LOG_LEVEL"
	devTokenSecretWarn = "dev-secret-change-in-production"
)

// DatabaseConfig holds relational store connection settings.
type DatabaseConfig struct {
	DSN string `toml:"dsn"`
}

// ObjectStoreConfig holds blob store connection settings.
type ObjectStoreConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	TokenSecret     string `toml:"token_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxUploadBytes     int64 `toml:"max_upload_bytes"`
	MultipartMaxMemory int64 `toml:"multipart_max_memory"`
}

// Config defines runtime configuration for innkeep.
type Config struct {
	APIURL      string            `toml:"api_url"`
	LogLevel    string            `toml:"log_level"`
	Database    DatabaseConfig    `toml:"database"`
	ObjectStore ObjectStoreConfig `toml:"object_store"`
	Auth        AuthConfig        `toml:"auth"`
	Uploads     UploadConfig      `toml:"uploads"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
		ObjectStore: ObjectStoreConfig{
			Bucket: "innkeep-uploads",
			Region: "us-east-1",
		},
		Auth: AuthConfig{
			TokenSecret:     devTokenSecretWarn,
			TokenTTLMinutes: DefaultTokenTTLMinutes,
		},
		Uploads: UploadConfig{
			MaxUploadBytes:     DefaultMaxUploadBytes,
			MultipartMaxMemory: DefaultMultipartMaxMemory,
		},
	}
}

// Load reads configuration from the TOML file (INNKEEP_CONFIG or
// ./innkeep.toml), then applies environment overrides for secrets.
func Load() (*Config, error) {
	cfg := Default()

	path := strings.TrimSpace(os.Getenv(configPathEnvKey))
	required := path != ""
	if path == "" {
		path = defaultConfigPath
	}

	if err := loadFile(path, &cfg, required); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)

	if cfg.Uploads.MaxUploadBytes <= 0 {
		cfg.Uploads.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Uploads.MultipartMaxMemory <= 0 {
		cfg.Uploads.MultipartMaxMemory = DefaultMultipartMaxMemory
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = DefaultTokenTTLMinutes
	}

	return &cfg, nil
}

func loadFile(path string, cfg *Config, required bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(databaseDSNEnvKey)); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(storeAccessEnvKey)); v != "" {
		cfg.ObjectStore.AccessKey = v
	}
	if v := strings.TrimSpace(os.Getenv(storeSecretEnvKey)); v != "" {
		cfg.ObjectStore.SecretKey = v
	}
	if v := strings.TrimSpace(os.Getenv(tokenSecretEnvKey)); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(logLevelEnvKey)); v != "" {
		cfg.LogLevel = v
	}
}
