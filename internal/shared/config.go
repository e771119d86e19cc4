package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	UI      UIConfig      `toml:"ui"`
}

// CatalogConfig contains remote movie-catalog API settings.
type CatalogConfig struct {
	APIKey       string  `toml:"api_key"`
	BaseURL      string  `toml:"base_url"`
	ImageBaseURL string  `toml:"image_base_url"`
	PosterSize   string  `toml:"poster_size"`
	Language     string  `toml:"language"`
	RateLimit    float64 `toml:"rate_limit"`
}

// Key resolves the catalog API credential, preferring the CINEMATE_TMDB_KEY
// environment variable over the config file value.
func (c CatalogConfig) Key() string {
	if key := os.Getenv("CINEMATE_TMDB_KEY"); key != "" {
		return key
	}
	return c.APIKey
}

// StorageConfig contains local state directory settings.
type StorageConfig struct {
	StateDir string `toml:"state_dir"`
}

// CacheConfig contains catalog-cache database settings.
type CacheConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains interactive UI tunables.
type UIConfig struct {
	DebounceMS            int `toml:"debounce_ms"`
	MinQueryLength        int `toml:"min_query_length"`
	BannerSize            int `toml:"banner_size"`
	BannerIntervalSeconds int `toml:"banner_interval_seconds"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
