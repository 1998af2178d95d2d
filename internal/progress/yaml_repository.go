package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// YAMLRepository stores the progress document in a single YAML file.
type YAMLRepository struct {
	path string
}

// NewYAMLRepository creates a YAMLRepository for the file at path.
func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

// Load reads the YAML file. A missing file yields an empty document;
// a file that exists but cannot be decoded or validated yields ErrCorruptState.
func (r *YAMLRepository) Load(_ context.Context) (*State, error) {
	contents, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no progress file, starting fresh", "path", r.path)
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}
	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrCorruptState, r.path)
	}

	var state State
	if err := yaml.Unmarshal(contents, &state); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptState, r.path, err)
	}
	if state.Records == nil {
		state.Records = make(map[string]PerformanceRecord)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return &state, nil
}

// Save replaces the YAML file atomically.
func (r *YAMLRepository) Save(_ context.Context, state *State) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("yaml.NewEncoder().Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close > %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", r.path, err)
	}

	slog.Debug("progress saved", "path", r.path, "records", len(state.Records))
	return nil
}
