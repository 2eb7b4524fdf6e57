package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryGroup is one category section of the catalog listing.
type CategoryGroup struct {
	Category string `json:"category"`
	Items    []Item `json:"skills"`
}

// Group buckets items by category. Categories are ordered alphabetically with
// DefaultCategory last; items within a category are ordered by name.
func Group(items []Item) []CategoryGroup {
	col := collate.New(language.English, collate.IgnoreCase)

	byCategory := make(map[string][]Item)
	for _, it := range items {
		byCategory[it.Group()] = append(byCategory[it.Group()], it)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	slices.SortFunc(categories, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == DefaultCategory:
			return 1
		case b == DefaultCategory:
			return -1
		}
		return col.CompareString(a, b)
	})

	groups := make([]CategoryGroup, 0, len(categories))
	for _, cat := range categories {
		members := byCategory[cat]
		slices.SortStableFunc(members, func(a, b Item) int {
			return col.CompareString(a.Name, b.Name)
		})
		groups = append(groups, CategoryGroup{Category: cat, Items: members})
	}
	return groups
}

// CategoryCount is the number of items in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Categories returns item counts per category in Group order.
func Categories(items []Item) []CategoryCount {
	groups := Group(items)
	counts := make([]CategoryCount, len(groups))
	for i, g := range groups {
		counts[i] = CategoryCount{Category: g.Category, Count: len(g.Items)}
	}
	return counts
}

// InCategory returns the items whose Group equals category.
func InCategory(items []Item, category string) []Item {
	var out []Item
	for _, it := range items {
		if it.Group() == category {
			out = append(out, it)
		}
	}
	return out
}
