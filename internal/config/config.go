package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/warfeed/pkg/client"
	"github.com/ajitpratap0/warfeed/pkg/models"
)

const (
	// DefaultWarID is the war season queried when none is given.
	DefaultWarID = 801

	// DefaultTopPlanets is how many planets summaries include by default.
	DefaultTopPlanets = 10

	// DefaultNewsBudget is the token budget for news text in briefings.
	DefaultNewsBudget = 1500
)

// Config holds all configuration for warfeed.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Server  ServerConfig  `mapstructure:"server"`
	Claude  ClaudeConfig  `mapstructure:"claude"`
	RefData RefDataConfig `mapstructure:"refdata"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds war-status API settings.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	WarID      int64         `mapstructure:"war_id"`
	Language   string        `mapstructure:"language"`
	Timeout    time.Duration `mapstructure:"timeout"`
	TopPlanets int           `mapstructure:"top_planets"`
}

// ServerConfig holds JSON gateway settings.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// ClaudeConfig holds Anthropic Claude API settings used for briefings.
type ClaudeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	NewsBudget int    `mapstructure:"news_budget"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	masked := maskAPIKey(c.APIKey)
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", masked, c.Model)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// RefDataConfig points at reference tables that replace the bundled ones.
// An empty Dir uses only the bundled tables.
type RefDataConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", client.BaseURL)
	v.SetDefault("api.war_id", DefaultWarID)
	v.SetDefault("api.language", models.English.Tag())
	v.SetDefault("api.timeout", client.DefaultHTTPTimeout)
	v.SetDefault("api.top_planets", DefaultTopPlanets)

	v.SetDefault("server.listen_addr", ":8080")

	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")
	v.SetDefault("claude.news_budget", DefaultNewsBudget)

	v.SetDefault("refdata.dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".warfeed"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("WARFEED")
	v.AutomaticEnv()

	_ = v.BindEnv("claude.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("api.base_url", "WARFEED_API_BASE_URL")
	_ = v.BindEnv("api.war_id", "WARFEED_API_WAR_ID")
	_ = v.BindEnv("api.language", "WARFEED_API_LANGUAGE")
	_ = v.BindEnv("api.timeout", "WARFEED_API_TIMEOUT")
	_ = v.BindEnv("server.listen_addr", "WARFEED_SERVER_LISTEN_ADDR")
	_ = v.BindEnv("refdata.dir", "WARFEED_REFDATA_DIR")
	_ = v.BindEnv("logging.level", "WARFEED_LOGGING_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.WarID <= 0 {
		return fmt.Errorf("api.war_id must be greater than 0")
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be greater than 0")
	}
	if c.API.TopPlanets <= 0 {
		return fmt.Errorf("api.top_planets must be greater than 0")
	}
	if c.Claude.NewsBudget < 0 {
		return fmt.Errorf("claude.news_budget must be >= 0")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// Language returns the configured API language.
func (c *Config) Language() (models.Language, error) {
	lang, err := models.ParseLanguage(c.API.Language)
	if err != nil {
		return 0, fmt.Errorf("api.language: %w", err)
	}
	return lang, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
