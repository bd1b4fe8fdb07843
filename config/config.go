package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"

	"croupier/database"
)

// Config holds all application configuration.
type Config struct {
	// Discord configuration
	DiscordToken string `envconfig:"DISCORD_TOKEN"`
	GuildID      string `envconfig:"GUILD_ID"`

	// Database configuration
	DatabaseURL  string `envconfig:"DATABASE_URL"`
	DatabaseName string `envconfig:"DATABASE_NAME"`

	// Economy configuration
	StartingBalance int64 `envconfig:"STARTING_BALANCE" default:"1000"`
	DailyResetHour  int   `envconfig:"DAILY_RESET_HOUR" default:"14"` // UTC

	// House fee configuration
	FeeCombineMode string `envconfig:"FEE_COMBINE_MODE" default:"max"`
	HostFeeTier    int    `envconfig:"HOST_FEE_TIER" default:"1"`

	// Game session configuration
	TurnTimeoutSeconds int `envconfig:"TURN_TIMEOUT_SECONDS" default:"60"`
	IdleSessionMinutes int `envconfig:"IDLE_SESSION_MINUTES" default:"15"`
	ScriptedActDelayMS int `envconfig:"SCRIPTED_ACT_DELAY_MS" default:"1500"`

	// Environment: "development", "production" or "test"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and
// database name.
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load reads configuration from environment variables.
func load() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return &config, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing.
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing.
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests.
func NewTestConfig() *Config {
	return &Config{
		Environment:        "test",
		StartingBalance:    1000,
		DailyResetHour:     14,
		FeeCombineMode:     "max",
		HostFeeTier:        0,
		TurnTimeoutSeconds: 60,
		IdleSessionMinutes: 15,
		ScriptedActDelayMS: 1,
	}
}
