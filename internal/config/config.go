// Package config provides Viper-based configuration management for subfeed
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g. SUBFEED_FEED_LIMIT.
const EnvPrefix = "SUBFEED"

// Config represents the complete subfeed configuration
type Config struct {
	Client   ClientConfig   `mapstructure:"client"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Comments CommentsConfig `mapstructure:"comments"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ClientConfig configures the HTTP side of the subreddit client
type ClientConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	UserAgent string        `mapstructure:"user_agent" validate:"required,max=256"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// FeedConfig contains post listing defaults
type FeedConfig struct {
	Sort     string        `mapstructure:"sort" validate:"oneof=hot rising top new"`
	Limit    int           `mapstructure:"limit" validate:"gt=0,lte=100"`
	Pages    int           `mapstructure:"pages" validate:"gt=0"`
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

// CommentsConfig contains comment listing defaults. Zero means the platform default.
type CommentsConfig struct {
	Depth int `mapstructure:"depth" validate:"gte=0"`
	Limit int `mapstructure:"limit" validate:"gte=0"`
}

// NATSConfig configures snapshot publishing. An empty URL disables it.
type NATSConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	Subject string `mapstructure:"subject" validate:"required"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
	JSON   bool `mapstructure:"json"`
}

// Load reads configuration from an optional .env file, the config file and
// SUBFEED_* environment variables, in increasing precedence.
func Load(cfgFile string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".subfeed")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/subfeed")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads path into the process environment. Variables that are
// already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("client.base_url", "https://www.reddit.com")
	v.SetDefault("client.user_agent", "subfeed/0.1")
	v.SetDefault("client.timeout", 30*time.Second)

	v.SetDefault("feed.sort", "hot")
	v.SetDefault("feed.limit", 25)
	v.SetDefault("feed.pages", 1)
	v.SetDefault("feed.interval", 2*time.Second)

	v.SetDefault("comments.depth", 0)
	v.SetDefault("comments.limit", 0)

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "subfeed")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)
	v.SetDefault("output.json", false)
}

var validate = validator.New()

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fieldMessage(fe))
	}
	sort.Strings(messages)
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt", "gte", "lte", "max":
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
