/* config.go
 * Loads runtime configuration from the environment, optionally seeded from a .env file
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"octofit-tracker/api/external"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting read from the environment
type Config struct {
	// Runtime host identifier used to build the API address, e.g. "<name>-8000.app.github.dev"
	CodespaceName string `envconfig:"CODESPACE_NAME"`
	HostSuffix    string `envconfig:"API_HOST_SUFFIX" default:"app.github.dev"`
	// Full override of the API address, e.g. http://localhost:8000
	APIBaseURL string `envconfig:"API_BASE_URL"`

	HTTPAddr     string `envconfig:"HTTP_ADDR" default:":3000"`
	DiscordToken string `envconfig:"DISCORD_TOKEN"`
	Locale       string `envconfig:"LOCALE" default:"en-US"`

	RequestsPerSecond float64       `envconfig:"REQUESTS_PER_SECOND" default:"0"`
	RequestBurst      int           `envconfig:"REQUEST_BURST" default:"1"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"0s"`
	LogPayloads       bool          `envconfig:"LOG_PAYLOADS" default:"true"`
}

// Load reads the given .env files (default ".env") into the environment and processes it into a Config.
// Missing .env files are not an error, variables may come from the real environment instead
// Preconditions: Receives optional .env file paths
// Postconditions: Returns the populated Config, or an error if a .env file is unreadable or a variable is malformed
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		log.Println("no .env file found, using environment only")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// BaseURL returns the API deployment address. An empty CODESPACE_NAME yields a malformed address that fails on
// first fetch, not at startup
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return external.BaseURLFromHost(c.CodespaceName, c.HostSuffix)
}

// ClientConfig returns the settings for the API client
func (c *Config) ClientConfig() external.ClientConfig {
	return external.ClientConfig{
		BaseURL:           c.BaseURL(),
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.RequestBurst,
		Timeout:           c.RequestTimeout,
		LogPayloads:       c.LogPayloads,
	}
}
