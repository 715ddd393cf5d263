// pkg/engine/removal.go
package engine

import (
	"slices"
	"sort"
)

// indexSet collects slice positions scheduled for removal.
type indexSet map[int]struct{}

func (s indexSet) add(i int) {
	s[i] = struct{}{}
}

// descending returns the indices from highest to lowest.
func (s indexSet) descending() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// removeIndices deletes the given positions from items. Deleting from the
// highest index down keeps the remaining indices valid.
func removeIndices[T any](items []T, indices indexSet) []T {
	for _, i := range indices.descending() {
		items = slices.Delete(items, i, i+1)
	}
	return items
}
