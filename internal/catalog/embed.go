package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed data/skills-catalog.json
var embeddedJSON []byte

// Embedded returns a fresh copy of the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	c, err := Parse(embeddedJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}
