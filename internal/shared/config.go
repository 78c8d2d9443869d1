package shared

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.toml
var exampleConf []byte

// Frame orders understood by the processing service's sort_order form field.
const (
	SortOldToYoung = "old-to-young"
	SortYoungToOld = "young-to-old"
)

// Config represents the application configuration loaded from a TOML (or YAML) file.
type Config struct {
	Service ServiceConfig `toml:"service" yaml:"service"`
	Upload  UploadConfig  `toml:"upload" yaml:"upload"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// ServiceConfig locates the processing service.
type ServiceConfig struct {
	BaseURL string `toml:"base_url" yaml:"base_url"`
	Token   string `toml:"token" yaml:"token"`
}

// UploadConfig contains selection and form settings.
type UploadConfig struct {
	MaxBytes  int64  `toml:"max_bytes" yaml:"max_bytes"`
	SortOrder string `toml:"sort_order" yaml:"sort_order"`
}

// OutputConfig contains playback and download settings.
type OutputConfig struct {
	Dir          string  `toml:"dir" yaml:"dir"`
	OpenBrowser  bool    `toml:"open_browser" yaml:"open_browser"`
	DownloadRate float64 `toml:"download_rate" yaml:"download_rate"`
	MaxRetries   int     `toml:"max_retries" yaml:"max_retries"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// LoadConfig reads and parses a configuration file from the specified path.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as TOML.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = toml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
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

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: service.base_url %q is not an absolute URL", ErrInvalidConfig, c.Service.BaseURL)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("%w: upload.max_bytes must be positive", ErrInvalidConfig)
	}
	if err := ValidateSortOrder(c.Upload.SortOrder); err != nil {
		return fmt.Errorf("%w: upload.sort_order: %v", ErrInvalidConfig, err)
	}
	if c.Output.DownloadRate < 0 || c.Output.MaxRetries < 0 {
		return fmt.Errorf("%w: output download settings must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ValidateSortOrder accepts the frame orders the service understands.
func ValidateSortOrder(order string) error {
	switch order {
	case SortOldToYoung, SortYoungToOld:
		return nil
	default:
		return fmt.Errorf("%w: sort order %q (want %s or %s)", ErrInvalidArgument, order, SortOldToYoung, SortYoungToOld)
	}
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
