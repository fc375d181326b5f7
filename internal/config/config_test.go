package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Embedding.Provider)
	assert.Equal(t, "openai", cfg.Chat.Provider)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedding.APIKeyEnv)
	assert.Equal(t, 30, cfg.Embedding.TimeoutSecs)
	assert.Equal(t, 120, cfg.Chat.TimeoutSecs)
	assert.Equal(t, "catalog.json", cfg.Catalog.ExportPath)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /var/lib/semindex/index.db
embedding:
  provider: openai
  model: text-embedding-3-small
  timeout_secs: 15
chat:
  provider: ollama
  base_url: http://localhost:11434
catalog:
  export_path: /srv/portal/catalog.json
  files_root: /srv/portal/files
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/semindex/index.db", cfg.DBPath)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 15, cfg.Embedding.TimeoutSecs)
	assert.Equal(t, "ollama", cfg.Chat.Provider)
	assert.Equal(t, "/srv/portal/catalog.json", cfg.Catalog.ExportPath)
	assert.Equal(t, "/srv/portal/files", cfg.Catalog.FilesRoot)

	// unset fields still get defaults
	assert.Equal(t, "OPENAI_API_KEY", cfg.Chat.APIKeyEnv)
	assert.Equal(t, 120, cfg.Chat.TimeoutSecs)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedding: [not: a: mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAPIKeyResolution(t *testing.T) {
	cfg := defaultConfig()
	cfg.Embedding.APIKeyEnv = "SEMINDEX_TEST_EMBED_KEY"
	cfg.Chat.APIKeyEnv = "SEMINDEX_TEST_CHAT_KEY"

	t.Setenv("SEMINDEX_TEST_EMBED_KEY", "embed-secret")
	t.Setenv("SEMINDEX_TEST_CHAT_KEY", "chat-secret")

	assert.Equal(t, "embed-secret", cfg.EmbeddingAPIKey())
	assert.Equal(t, "chat-secret", cfg.ChatAPIKey())
}

func TestAPIKeyOverrideFallback(t *testing.T) {
	cfg := defaultConfig()
	cfg.Embedding.APIKeyEnv = "SEMINDEX_TEST_UNSET"
	cfg.Chat.APIKeyEnv = "SEMINDEX_TEST_UNSET"

	t.Setenv("SEMINDEX_TEST_UNSET", "")
	t.Setenv("SEMINDEX_EMBEDDING_KEY", "embed-override")
	t.Setenv("SEMINDEX_CHAT_KEY", "chat-override")

	assert.Equal(t, "embed-override", cfg.EmbeddingAPIKey())
	assert.Equal(t, "chat-override", cfg.ChatAPIKey())
}

func TestTimeouts(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "30s", cfg.EmbeddingTimeout().String())
	assert.Equal(t, "2m0s", cfg.ChatTimeout().String())
}
