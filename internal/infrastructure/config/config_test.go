package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultConfigDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigDir, DefaultConfigFile), []byte(content), 0644))
	return dir
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, "")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Docstore.Host)
	assert.Equal(t, 6334, cfg.Docstore.Port)
	assert.Equal(t, "names", cfg.Docstore.IndexPrefix)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := writeConfig(t, "docstore:\n  host: qdrant.example.org\n  index_prefix: namestest\n")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "qdrant.example.org", cfg.Docstore.Host)
	assert.Equal(t, "namestest", cfg.Docstore.IndexPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "noidminter:\n  url: http://minter.local/\n  username: namesdb\n")
	t.Setenv("NOIDMINTER_PASSWORD", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.NoidMinter.Password)
	assert.Equal(t, "sk-test", cfg.Embedder.APIKey)
}

func TestLoad_FileValueWinsOverEnv(t *testing.T) {
	dir := writeConfig(t, "noidminter:\n  password: from-file\n")
	t.Setenv("NOIDMINTER_PASSWORD", "from-env")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.NoidMinter.Password)
}

func TestDatabasePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultDatabaseFile), cfg.DatabasePath("/base"))

	cfg.Database.Path = "/var/lib/namesdb/names.db"
	assert.Equal(t, "/var/lib/namesdb/names.db", cfg.DatabasePath("/base"))
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	// refuses to clobber an existing config
	assert.Error(t, WriteDefault(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://ddr.densho.org/noidminter/names/", cfg.NoidMinter.URL)
}
