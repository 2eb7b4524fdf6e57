// Package catalog loads, queries, and persists the skill catalog.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antopolskiy/skillz/internal/filelock"
)

const fileMode = 0o644

// DefaultCategory groups items without an explicit category.
const DefaultCategory = "General"

// ErrNotFound is returned by Load when the catalog file does not exist.
var ErrNotFound = errors.New("catalog not found")

// Item is one installable skill. Name doubles as the directory name under the
// repository's skills path.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Group returns the item's category, or DefaultCategory when unset.
func (it Item) Group() string {
	if it.Category == "" {
		return DefaultCategory
	}
	return it.Category
}

// Catalog is the on-disk document {"skills": [...]}.
type Catalog struct {
	Skills []Item `json:"skills"`
}

// Find returns the item with the given name.
func (c *Catalog) Find(name string) (Item, bool) {
	for _, it := range c.Skills {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// Names returns item names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Skills))
	for i, it := range c.Skills {
		names[i] = it.Name
	}
	return names
}

// SetDescription replaces the description of the named item. It reports
// whether the item exists.
func (c *Catalog) SetDescription(name, desc string) bool {
	for i := range c.Skills {
		if c.Skills[i].Name == name {
			c.Skills[i].Description = desc
			return true
		}
	}
	return false
}

// Validate checks that every item has a unique, non-empty name.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Skills))
	for i, it := range c.Skills {
		if it.Name == "" {
			return fmt.Errorf("skill #%d has no name", i+1)
		}
		if seen[it.Name] {
			return fmt.Errorf("duplicate skill name %q", it.Name)
		}
		seen[it.Name] = true
	}
	return nil
}

// Parse decodes and validates catalog JSON.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // catalog path from flags or config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the catalog as two-space indented JSON.
func (c *Catalog) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the catalog to path while holding the catalog's file lock.
// The content is written to a temporary file and renamed into place.
func (c *Catalog) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil { //nolint:mnd // directory permissions
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	unlock, err := filelock.Lock(filelock.PathFor(path))
	if err != nil {
		return err
	}
	defer func() { _ = unlock() }()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing catalog: %w", err)
	}
	return nil
}
