// Package selection tracks which catalog skills the user has picked.
package selection

import "github.com/antopolskiy/skillz/internal/catalog"

// Set is a set of skill names that remembers insertion order. The zero value
// is ready to use.
type Set struct {
	order []string
	index map[string]int
}

// New returns a Set holding names, duplicates dropped.
func New(names ...string) *Set {
	s := &Set{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name. It reports whether the set changed.
func (s *Set) Add(name string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = len(s.order)
	s.order = append(s.order, name)
	return true
}

// Remove deletes name. It reports whether the set changed.
func (s *Set) Remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	delete(s.index, name)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
	return true
}

// Toggle adds name if absent and removes it otherwise. It returns true when
// name is selected afterwards.
func (s *Set) Toggle(name string) bool {
	if s.Remove(name) {
		return false
	}
	s.Add(name)
	return true
}

// Has reports whether name is selected.
func (s *Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of selected names.
func (s *Set) Len() int { return len(s.order) }

// Clear deselects everything.
func (s *Set) Clear() {
	s.order = nil
	s.index = nil
}

// Names returns the selected names in the order they were added.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SelectMatching adds every item, typically the currently filtered view.
func (s *Set) SelectMatching(items []catalog.Item) {
	for _, it := range items {
		s.Add(it.Name)
	}
}

// ToggleCategory deselects every item of category when all of them are
// already selected, and selects all of them otherwise.
func (s *Set) ToggleCategory(items []catalog.Item, category string) {
	members := catalog.InCategory(items, category)
	if len(members) == 0 {
		return
	}
	all := true
	for _, it := range members {
		if !s.Has(it.Name) {
			all = false
			break
		}
	}
	for _, it := range members {
		if all {
			s.Remove(it.Name)
		} else {
			s.Add(it.Name)
		}
	}
}
