// Package config loads the service configuration from defaults, an optional
// stocksync.yaml and STOCKSYNC_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisAddr   string `mapstructure:"redis_addr"`
}

type LoggerConfig struct {
	Mode       string `mapstructure:"mode"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

type WebhookConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

type AppConfig struct {
	AppID     string        `mapstructure:"app_id"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	HTTP      HTTPConfig    `mapstructure:"http"`
	Storage   StorageConfig `mapstructure:"storage"`
	Logger    LoggerConfig  `mapstructure:"logger"`
	Webhook   WebhookConfig `mapstructure:"webhook"`
}

// DevJWTSecret signs tokens when no secret is configured. It is only
// accepted with in-memory storage.
const DevJWTSecret = "super-secret-key"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_id", "default-app-id")
	v.SetDefault("jwt_secret", DevJWTSecret)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.database_url", "")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.file_enable", false)
	v.SetDefault("logger.filename", "stocksync.log")
	v.SetDefault("webhook.rate", 1.0)
	v.SetDefault("webhook.burst", 3)
}

// Load reads the configuration. configFile may be empty, in which case
// stocksync.yaml is looked up in the working directory and /etc/stocksync.
func Load(configFile string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("stocksync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/stocksync")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("STOCKSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Storage.DatabaseURL == "" {
		cfg.Storage.DatabaseURL = v.GetString("database_url_fallback")
	}
	if cfg.Logger.Filename != "" && v.IsSet("log_file") {
		cfg.Logger.FileEnable = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnv maps the flat variable names used in deployments onto the nested
// keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("http.addr", "STOCKSYNC_HTTP_ADDR")
	_ = v.BindEnv("storage.driver", "STOCKSYNC_STORAGE_DRIVER")
	_ = v.BindEnv("storage.database_url", "STOCKSYNC_DATABASE_URL")
	_ = v.BindEnv("database_url_fallback", "DATABASE_URL")
	_ = v.BindEnv("storage.redis_addr", "STOCKSYNC_REDIS_ADDR")
	_ = v.BindEnv("logger.mode", "STOCKSYNC_LOG_MODE")
	_ = v.BindEnv("logger.filename", "STOCKSYNC_LOG_FILE")
	_ = v.BindEnv("log_file", "STOCKSYNC_LOG_FILE")
	_ = v.BindEnv("webhook.rate", "STOCKSYNC_WEBHOOK_RATE")
	_ = v.BindEnv("webhook.burst", "STOCKSYNC_WEBHOOK_BURST")
}

func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return errors.New("config: postgres storage needs STOCKSYNC_DATABASE_URL or DATABASE_URL")
		}
		if c.JWTSecret == DevJWTSecret {
			return errors.New("config: postgres storage needs STOCKSYNC_JWT_SECRET set to a private value")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.AppID == "" {
		return errors.New("config: app_id is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: jwt_secret is required")
	}
	if c.Webhook.Rate <= 0 || c.Webhook.Burst < 1 {
		return errors.New("config: webhook rate and burst must be positive")
	}
	return nil
}
