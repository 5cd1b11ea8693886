// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for namesdb configuration.
	DefaultConfigDir = ".namesdb"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite database file name.
	DefaultDatabaseFile = "names.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Database   DatabaseConfig   `yaml:"database,omitempty"`
	NoidMinter NoidMinterConfig `yaml:"noidminter,omitempty"`
	Docstore   DocstoreConfig   `yaml:"docstore,omitempty"`
	Embedder   EmbedderConfig   `yaml:"embedder,omitempty"`
}

// DatabaseConfig holds configuration for the SQLite registry database.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// NoidMinterConfig holds configuration for the identifier-minting service.
type NoidMinterConfig struct {
	URL      string `yaml:"url,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// DocstoreConfig holds configuration for the Qdrant search index.
type DocstoreConfig struct {
	Host        string `yaml:"host,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	IndexPrefix string `yaml:"index_prefix,omitempty"`
	APIKey      string `yaml:"api_key,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Docstore: DocstoreConfig{
			Host:        "localhost",
			Port:        6334,
			IndexPrefix: "names",
		},
	}
}

// Load loads configuration from the .namesdb directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'namesdb init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. File values
// win; the environment only fills gaps, so a checked-in config never has
// to carry secrets.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = key
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" && c.Docstore.APIKey == "" {
		c.Docstore.APIKey = key
	}
	if pass := os.Getenv("NOIDMINTER_PASSWORD"); pass != "" && c.NoidMinter.Password == "" {
		c.NoidMinter.Password = pass
	}
}

// ConfigDir returns the path to the .namesdb config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// DatabasePath returns the SQLite database path, honoring a configured
// override.
func (c *Config) DatabasePath(basePath string) string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
}

// Exists checks if a namesdb config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
