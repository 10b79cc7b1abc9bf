package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// PlaceholderAPIKey is the value shipped in the example config; it never authenticates.
const PlaceholderAPIKey = "YOUR_YOUTUBE_API_KEY"

// APIKeyEnv names the environment variable that overrides the configured API key.
const APIKeyEnv = "YOUTUBE_API_KEY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Search      SearchConfig      `toml:"search"`
	Server      ServerConfig      `toml:"server"`
	Player      PlayerConfig      `toml:"player"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains YouTube Data API settings.
type YouTubeConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// SearchConfig controls how queries are sent to the search endpoint.
type SearchConfig struct {
	MaxResults     int     `toml:"max_results"`
	QuerySuffix    string  `toml:"query_suffix"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Timeout returns the per-request timeout, or zero when unset.
func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PlayerConfig contains embedded player widget settings.
type PlayerConfig struct {
	Width    int  `toml:"width"`
	Height   int  `toml:"height"`
	Controls bool `toml:"controls"`
}

// HasAPIKey reports whether a usable (non-empty, non-placeholder) API key is configured.
func (c *Config) HasAPIKey() bool {
	key := c.Credentials.YouTube.APIKey
	return key != "" && key != PlaceholderAPIKey
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Fields missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv resolves the API key from the environment, falling back to the given dotenv files in order.
//
// A real environment variable wins over dotenv files, which win over the config file. Missing files are ignored.
func ApplyEnv(config *Config, filenames ...string) {
	key := os.Getenv(APIKeyEnv)
	for _, name := range filenames {
		if key != "" {
			break
		}
		env, err := godotenv.Read(name)
		if err != nil {
			continue
		}
		key = env[APIKeyEnv]
	}

	if key != "" {
		config.Credentials.YouTube.APIKey = key
	}
}
