// Package testutil provides shared test helpers for creating config files and deck fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/grevocab/internal/catalog"
	"github.com/at-ishikawa/grevocab/internal/config"
	"github.com/at-ishikawa/grevocab/internal/progress"
)

// DefaultDeckItems returns the items written by SetupTestConfig.
func DefaultDeckItems() []catalog.VocabularyItem {
	return []catalog.VocabularyItem{
		{ID: "1", Word: "abate", Definition: "to become less intense", PartOfSpeech: "verb", Example: "The storm did not abate until morning."},
		{ID: "2", Word: "laconic", Definition: "using very few words", PartOfSpeech: "adjective"},
		{ID: "3", Word: "ephemeral", Definition: "lasting a very short time", PartOfSpeech: "adjective", Example: "Fame in the digital age is often ephemeral."},
	}
}

// ConfigOption configures optional fields when creating a config fixture.
type ConfigOption func(*testConfig)

type testConfig struct {
	items   []catalog.VocabularyItem
	driver  string
	storage string
}

// WithDeckItems replaces the default deck.
func WithDeckItems(items []catalog.VocabularyItem) ConfigOption {
	return func(cfg *testConfig) {
		cfg.items = items
	}
}

// WithSQLiteStorage stores progress in a SQLite database instead of the YAML file.
func WithSQLiteStorage() ConfigOption {
	return func(cfg *testConfig) {
		cfg.driver = config.StorageDriverSQLite
		cfg.storage = filepath.Join("data", "progress.db")
	}
}

// SetupTestConfig creates a config file, a deck file and the data directory for testing.
// Progress is stored in data/progress.yml under tmpDir unless an option says otherwise.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		items:   DefaultDeckItems(),
		driver:  config.StorageDriverYAML,
		storage: filepath.Join("data", "progress.yml"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "data"), 0755))
	deckPath := filepath.Join(tmpDir, "decks", "gre.yml")
	WriteDeckFile(t, deckPath, cfg.items)

	configContent := fmt.Sprintf(`deck:
  files:
    - %s
storage:
  driver: %s
  path: %s
session:
  size: 5
  new_ratio: 0.4
`,
		deckPath,
		cfg.driver,
		filepath.Join(tmpDir, cfg.storage),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteDeckFile writes items as a YAML deck file, creating parent directories.
func WriteDeckFile(t *testing.T, path string, items []catalog.VocabularyItem) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content, err := yaml.Marshal(items)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0644))
}

// CreateProgressFile writes state as a YAML progress file.
func CreateProgressFile(t *testing.T, path string, state *progress.State) {
	t.Helper()
	require.NoError(t, progress.NewYAMLRepository(path).Save(context.Background(), state))
}
