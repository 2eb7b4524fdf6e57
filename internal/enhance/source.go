package enhance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antopolskiy/skillz/internal/catalog"
)

// ErrDocumentNotFound is returned by a DocumentSource when a skill has no
// document.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentSource supplies the SKILL.md text of a skill.
type DocumentSource interface {
	Document(name string) (string, error)
}

// DirSource reads <Dir>/<name>/SKILL.md.
type DirSource struct {
	Dir string
}

// Path returns the document path for name.
func (s DirSource) Path(name string) string {
	return filepath.Join(s.Dir, name, catalog.SkillMarkdown)
}

// Document implements DocumentSource.
func (s DirSource) Document(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, s.Path(name))
		}
		return "", fmt.Errorf("reading %s: %w", s.Path(name), err)
	}
	return string(data), nil
}

// MapSource serves documents from memory.
type MapSource map[string]string

// Document implements DocumentSource.
func (m MapSource) Document(name string) (string, error) {
	doc, ok := m[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	return doc, nil
}
