package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ReadDeckFiles reads vocabulary items from YAML deck files.
// Each file holds a sequence of items. Items without an id get their
// row index across all files, counting from 0.
func ReadDeckFiles(paths ...string) ([]VocabularyItem, error) {
	var items []VocabularyItem
	for _, path := range paths {
		deck, err := readDeckFile(path)
		if err != nil {
			return nil, fmt.Errorf("readDeckFile(%s) > %w", path, err)
		}
		for _, item := range deck {
			if item.ID == "" {
				item.ID = strconv.Itoa(len(items))
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func readDeckFile(path string) ([]VocabularyItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var items []VocabularyItem
	if err := yaml.NewDecoder(file).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return items, nil
}
