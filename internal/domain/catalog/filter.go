// internal/domain/catalog/filter.go
package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AllCategories selects every category.
const AllCategories = "all"

// FilterState is the search box + category selector of a list page.
type FilterState struct {
	SearchTerm string `json:"searchTerm"`
	Category   string `json:"category"`
}

// DefaultFilter is the state a list page starts in and returns to on clear.
func DefaultFilter() FilterState {
	return FilterState{SearchTerm: "", Category: AllCategories}
}

// Clear resets the state to DefaultFilter.
func (s FilterState) Clear() FilterState {
	return DefaultFilter()
}

// IsDefault reports whether the state lets every item through.
func (s FilterState) IsDefault() bool {
	return s.SearchTerm == "" && s.allCategories()
}

func (s FilterState) allCategories() bool {
	return s.Category == "" || s.Category == AllCategories
}

// Filter returns the items visible under state, in input order.
// Category and search term are both applied to the same base list.
func Filter(items []Item, state FilterState) []Item {
	out := make([]Item, 0, len(items))
	term := fold(state.SearchTerm)
	for _, it := range items {
		if !state.allCategories() && it.Category != state.Category {
			continue
		}
		if term != "" && !strings.Contains(fold(it.Title), term) && !strings.Contains(fold(it.Description), term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Preview returns the first n items (home page sections). n <= 0 returns all.
func Preview(items []Item, n int) []Item {
	if n <= 0 || n >= len(items) {
		return append([]Item(nil), items...)
	}
	return append([]Item(nil), items[:n]...)
}

// Related returns up to n items other than excludeID, in input order.
func Related(items []Item, excludeID string, n int) []Item {
	out := make([]Item, 0, n)
	for _, it := range items {
		if len(out) >= n {
			break
		}
		if it.ID == excludeID {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories returns the distinct non-empty categories of items in first-seen order.
func Categories(items []Item) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, it := range items {
		c := strings.TrimSpace(it.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func fold(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(norm.NFKC.String(s))
}
