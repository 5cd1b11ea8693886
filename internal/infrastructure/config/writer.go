package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Names Registry Configuration

database:
  # path: /var/lib/namesdb/names.db (defaults to .namesdb/names.db)

noidminter:
  url: http://ddr.densho.org/noidminter/names/
  username: namesdb
  # password: your-password (or set NOIDMINTER_PASSWORD env var)

docstore:
  host: localhost
  port: 6334
  index_prefix: names
  # api_key: your-api-key (for Qdrant Cloud)

embedder:
  provider: openai
  model: text-embedding-3-small
  # api_key: your-api-key (or set OPENAI_API_KEY env var)
`

// WriteDefault creates the .namesdb directory and writes a default
// config file.
func WriteDefault(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
