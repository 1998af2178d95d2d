package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrDuplicateID is returned when two items in a deck share an ID.
var ErrDuplicateID = errors.New("duplicate item id")

// Catalog is an immutable, ID-indexed collection of vocabulary items.
// It is built once and never changes afterwards.
type Catalog struct {
	items []VocabularyItem
	index map[string]int
}

// New validates the items and builds a catalog.
// A missing BlankedExample is derived from Example when the word can be found in it.
func New(items []VocabularyItem) (*Catalog, error) {
	validate := validator.New()

	c := &Catalog{
		items: make([]VocabularyItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("invalid item at position %d: %w", i, err)
		}
		if _, ok := c.index[item.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}
		if item.BlankedExample == "" && item.Example != "" {
			if blanked := BlankExample(item.Example, item.Word); blanked != item.Example {
				item.BlankedExample = blanked
			}
		}

		c.index[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// LookupByID returns the item with the given ID and whether it exists.
func (c *Catalog) LookupByID(id string) (VocabularyItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return VocabularyItem{}, false
	}
	return c.items[i], true
}

// Search returns items whose word or definition contains query, ignoring case.
// Results keep the catalog order.
func (c *Catalog) Search(query string) []VocabularyItem {
	q := strings.ToLower(query)

	var result []VocabularyItem
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Word), q) ||
			strings.Contains(strings.ToLower(item.Definition), q) {
			result = append(result, item)
		}
	}
	return result
}

// AllIDs returns the ID of every item.
func (c *Catalog) AllIDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []VocabularyItem {
	items := make([]VocabularyItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Catalog) Len() int {
	return len(c.items)
}
