package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDeckFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		order   []string
		want    []VocabularyItem
		wantErr bool
	}{
		{
			name: "reads items and assigns row ids across files",
			files: map[string]string{
				"a.yml": `- word: aberrant
  definition: departing from an accepted standard
  part_of_speech: adjective
  example: His aberrant behavior worried everyone.
- id: custom
  word: abate
  definition: become less intense
`,
				"b.yml": `- word: laconic
  definition: using very few words
  form: base
`,
			},
			order: []string{"a.yml", "b.yml"},
			want: []VocabularyItem{
				{ID: "0", Word: "aberrant", Definition: "departing from an accepted standard", PartOfSpeech: "adjective", Example: "His aberrant behavior worried everyone."},
				{ID: "custom", Word: "abate", Definition: "become less intense"},
				{ID: "2", Word: "laconic", Definition: "using very few words", Form: "base"},
			},
		},
		{
			name:  "empty file yields no items",
			files: map[string]string{"empty.yml": ""},
			order: []string{"empty.yml"},
			want:  nil,
		},
		{
			name:    "malformed yaml",
			files:   map[string]string{"bad.yml": "- word: [unterminated\n"},
			order:   []string{"bad.yml"},
			wantErr: true,
		},
		{
			name:    "missing file",
			order:   []string{"missing.yml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
			}
			var paths []string
			for _, name := range tt.order {
				paths = append(paths, filepath.Join(dir, name))
			}

			got, err := ReadDeckFiles(paths...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
