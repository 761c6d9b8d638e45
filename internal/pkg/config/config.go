package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Authorization modes for the notification center prompter.
const (
	AuthorizationPrompt = "prompt" // Ask LINE whether the practitioner follows the bot
	AuthorizationGrant  = "grant"
	AuthorizationDeny   = "deny"
)

// Config centralises all environment configuration.
type Config struct {
	Port                      int     `mapstructure:"PORT"`
	DBURL                     string  `mapstructure:"DB_URL"`
	LogLevel                  string  `mapstructure:"LOG_LEVEL"`
	Timezone                  string  `mapstructure:"TIMEZONE"`
	ChannelSecret             string  `mapstructure:"CHANNEL_SECRET"`
	ChannelAccessToken        string  `mapstructure:"CHANNEL_ACCESS_TOKEN"`
	PractitionerLineID        string  `mapstructure:"MY_USER_ID"`
	NotificationAuthorization string  `mapstructure:"NOTIFICATION_AUTHORIZATION"`
	RateLimitRPS              float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst            int     `mapstructure:"RATE_LIMIT_BURST"`

	Location *time.Location `mapstructure:"-"`
}

var keys = []string{
	"PORT",
	"DB_URL",
	"LOG_LEVEL",
	"TIMEZONE",
	"CHANNEL_SECRET",
	"CHANNEL_ACCESS_TOKEN",
	"MY_USER_ID",
	"NOTIFICATION_AUTHORIZATION",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
}

// Load reads configuration from the environment (already populated from .env
// by godotenv) and applies defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DB_URL", "drnote.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("NOTIFICATION_AUTHORIZATION", AuthorizationPrompt)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc

	c.NotificationAuthorization = strings.ToLower(strings.TrimSpace(c.NotificationAuthorization))
	switch c.NotificationAuthorization {
	case AuthorizationPrompt, AuthorizationGrant, AuthorizationDeny:
	default:
		return fmt.Errorf("invalid NOTIFICATION_AUTHORIZATION %q", c.NotificationAuthorization)
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// LineEnabled reports whether LINE credentials and a recipient are configured.
func (c *Config) LineEnabled() bool {
	return c.ChannelSecret != "" && c.ChannelAccessToken != "" && c.PractitionerLineID != ""
}
