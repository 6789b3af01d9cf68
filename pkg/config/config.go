package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Catalog Settings
	CatalogPath string `yaml:"catalog_path"` // empty means the bundled catalog
	AssetsDir   string `yaml:"assets_dir"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// UI Settings
	ColorTheme      string `yaml:"color_theme"`
	TableWidth      int    `yaml:"table_width"`
	DefaultSort     string `yaml:"default_sort"`
	Editor          string `yaml:"editor"`
	CopyToClipboard bool   `yaml:"copy_to_clipboard"`

	// Scan Settings
	MaxWorkers      int      `yaml:"max_workers"`
	BrandFields     []string `yaml:"brand_fields"`
	CategoryFields  []string `yaml:"category_fields"`
	WatchDebounceMS int      `yaml:"watch_debounce_ms"`

	// Server Settings
	ServeAddr          string  `yaml:"serve_addr"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:        "",
		AssetsDir:          "",
		LogLevel:           "warn",
		LogFormat:          "text",
		ColorTheme:         "auto",
		TableWidth:         0,
		DefaultSort:        "declared",
		Editor:             "",
		CopyToClipboard:    false,
		MaxWorkers:         4,
		BrandFields:        []string{"brandName", "brand"},
		CategoryFields:     []string{"categoryName", "category"},
		WatchDebounceMS:    500,
		ServeAddr:          "127.0.0.1:8088",
		RateLimitPerSecond: 50,
		RateLimitBurst:     100,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores essential values that a config file blanked out
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.MaxWorkers <= 0 {
		c.MaxWorkers = def.MaxWorkers
	}
	if len(c.BrandFields) == 0 {
		c.BrandFields = def.BrandFields
	}
	if len(c.CategoryFields) == 0 {
		c.CategoryFields = def.CategoryFields
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = def.WatchDebounceMS
	}
	if c.ServeAddr == "" {
		c.ServeAddr = def.ServeAddr
	}
	if c.RateLimitPerSecond <= 0 {
		c.RateLimitPerSecond = def.RateLimitPerSecond
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = def.RateLimitBurst
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if !isOneOf(c.LogFormat, "text", "json") {
		c.LogFormat = def.LogFormat
	}
	if !isOneOf(c.DefaultSort, "declared", "name", "asset") {
		c.DefaultSort = def.DefaultSort
	}
	if !isOneOf(c.ColorTheme, "auto", "dark", "light") {
		c.ColorTheme = def.ColorTheme
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isOneOf(value string, valid ...string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
