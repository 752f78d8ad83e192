// Package search narrows the item list before a price batch.
package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mogtools/ahsync/internal/domain"
)

// FilterItems returns the items whose name fuzzily matches query,
// case-insensitively and ignoring diacritics. An empty query keeps the list
// unchanged.
func FilterItems(items []*domain.Item, query string) []*domain.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	var matched []*domain.Item
	for _, item := range items {
		if fuzzy.MatchNormalizedFold(query, item.Name) {
			matched = append(matched, item)
		}
	}
	return matched
}
