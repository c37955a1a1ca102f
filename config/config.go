package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/jwalitptl/storefront-api/pkg/validator"
)

// EnvPrefix prefixes every environment override, e.g.
// STOREFRONT_COMMERCE_ENDPOINT or STOREFRONT_SERVER_PORT.
const EnvPrefix = "STOREFRONT"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	I18n       I18nConfig       `mapstructure:"i18n"`
	Commerce   CommerceConfig   `mapstructure:"commerce"`
	Settings   SettingsConfig   `mapstructure:"settings"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit" split_words:"true"`
	Security   SecurityConfig   `mapstructure:"security"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" split_words:"true"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" split_words:"true" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" split_words:"true" validate:"gt=0"`
	MaxBodySize     int64         `mapstructure:"max_body_size" split_words:"true" validate:"gt=0"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

type I18nConfig struct {
	DefaultLocale string `mapstructure:"default_locale" split_words:"true" validate:"required"`
}

type CommerceConfig struct {
	Endpoint        string        `mapstructure:"endpoint" validate:"required,url"`
	StorefrontToken string        `mapstructure:"storefront_token" split_words:"true" validate:"required"`
	Timeout         time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxFailures     int           `mapstructure:"max_failures" split_words:"true" validate:"gt=0"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout" split_words:"true" validate:"gt=0"`
}

type SettingsConfig struct {
	// Revalidate is how long password complexity settings are cached.
	Revalidate      time.Duration `mapstructure:"revalidate" validate:"gt=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" split_words:"true"`
}

// RedisConfig configures the shared settings cache. An empty URL disables it.
type RedisConfig struct {
	URL          string `mapstructure:"url" validate:"omitempty,url"`
	KeyPrefix    string `mapstructure:"key_prefix" split_words:"true"`
	PoolSize     int    `mapstructure:"pool_size" split_words:"true"`
	MinIdleConns int    `mapstructure:"min_idle_conns" split_words:"true"`
}

type AuthConfig struct {
	// ResetPasswordPath is the storefront page reset links point to.
	ResetPasswordPath string `mapstructure:"reset_password_path" split_words:"true" validate:"required,startswith=/"`
}

type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" split_words:"true" validate:"gte=0"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" split_words:"true"`
}

type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" split_words:"true"`
	HSTS           bool     `mapstructure:"hsts"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled" split_words:"true"`
	MetricsPath       string `mapstructure:"metrics_path" split_words:"true" validate:"omitempty,startswith=/"`
	Namespace         string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 20*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_size", 64<<10)

	v.SetDefault("logging.level", "info")

	v.SetDefault("i18n.default_locale", "en")

	v.SetDefault("commerce.timeout", 10*time.Second)
	v.SetDefault("commerce.max_failures", 5)
	v.SetDefault("commerce.breaker_timeout", 30*time.Second)

	v.SetDefault("settings.revalidate", 900*time.Second)
	v.SetDefault("settings.cleanup_interval", 10*time.Minute)

	v.SetDefault("redis.key_prefix", "storefront:")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("auth.reset_password_path", "/change-password")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 1.0)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.idle_timeout", 10*time.Minute)

	v.SetDefault("security.allowed_origins", []string{})
	v.SetDefault("security.hsts", true)

	v.SetDefault("monitoring.prometheus_enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.namespace", "storefront")
}

// LoadConfig reads config.yaml from path, or from . and ./config when path
// is empty, then applies STOREFRONT_* environment overrides. A missing
// config file is not an error when no path was given.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values. Failures are validator.Issues keyed
// by config path, e.g. "commerce.endpoint".
func (c *Config) Validate() error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
