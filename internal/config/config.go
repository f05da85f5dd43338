package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/reviewshelf/internal/validation"
	"github.com/spf13/viper"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// DefaultMediaTypes are the media types accepted by the shell if none are configured.
var DefaultMediaTypes = []string{"Movie", "Book", "TV Show"}

// Config holds the configuration for reviewshelf.
type Config struct {
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
	// MediaTypes is the list of media types a title can be filed under.
	// Input is matched case-insensitively and stored with the casing given here.
	MediaTypes []string `yaml:"media_types" mapstructure:"media_types" validate:"min=1,dive,required"`
	// Cache holds the review summary cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// CacheConfig holds the configuration for the review summary cache.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type" validate:"oneof=memory redis"`
	// RedisURL is the address of the Redis server if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is how long summaries live in Redis. The memory cache never expires entries.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("REVIEWSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.reviewshelf")
		v.AddConfigPath("/etc/reviewshelf")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("no config file found, using defaults")
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("media_types", slices.Clone(DefaultMediaTypes))

	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", time.Hour)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing reviewshelf config")
	}

	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Cache == nil {
		c.Cache = &CacheConfig{Type: CacheTypeMemory}
	}
	if err := validation.Struct(c.Cache); err != nil {
		return fmt.Errorf("invalid cache config: %w", err)
	}
	if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
	}

	seen := make(map[string]struct{}, len(c.MediaTypes))
	for _, mt := range c.MediaTypes {
		key := strings.ToLower(mt)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("media type %q is configured more than once", mt)
		}
		seen[key] = struct{}{}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	for i, mt := range c.MediaTypes {
		c.MediaTypes[i] = strings.TrimSpace(mt)
	}

	if c.Cache != nil {
		c.Cache.Type = CacheType(strings.ToLower(strings.TrimSpace(string(c.Cache.Type))))
		c.Cache.RedisURL = strings.TrimSpace(c.Cache.RedisURL)
	}
}
