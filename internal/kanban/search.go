package kanban

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

type itemSource []Item

func (s itemSource) String(i int) string {
	item := s[i]
	return strings.Join(append([]string{item.Title, item.Subtitle}, item.Tags...), " ")
}

func (s itemSource) Len() int { return len(s) }

// Search returns the items fuzzily matching query, in their original order.
//
// An empty query returns items unchanged.
func Search(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}

	matches := fuzzy.FindFrom(query, itemSource(items))
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)

	out := make([]Item, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}
