// Package ordering implements the admin-driven manual sort for catalog
// sections. Positions are dense zero-based integers scoped to one group
// (general vs extras); every mutation renumbers the whole group so gaps left
// by older sparse assignments heal on the next move.
package ordering

import (
	"sort"

	"github.com/google/uuid"
)

// Direction selects which neighbor an item swaps with.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionUp || d == DirectionDown
}

// Item is one orderable entry within a group. A nil Position means the item
// was never manually placed and sorts after everything that was.
type Item struct {
	ID       uuid.UUID
	Name     string
	Position *int
}

// unplaced sorts after any realistic assigned position.
const unplaced = 1 << 30

func rank(it Item) int {
	if it.Position == nil {
		return unplaced
	}
	return *it.Position
}

// Sorted returns a copy of items in display order: position ascending,
// unplaced items last, name ascending as the tie-break.
func Sorted(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// renumber assigns dense zero-based positions matching the slice order.
func renumber(items []Item) []Item {
	for i := range items {
		p := i
		items[i].Position = &p
	}
	return items
}

// MoveWithinGroup swaps the identified item with its display-order neighbor.
// Moving past either boundary, or naming an item not in the list, returns the
// sorted input unchanged (positions untouched). Any actual move renumbers the
// entire group.
func MoveWithinGroup(items []Item, id uuid.UUID, dir Direction) []Item {
	sorted := Sorted(items)

	idx := -1
	for i, it := range sorted {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return sorted
	}

	target := idx - 1
	if dir == DirectionDown {
		target = idx + 1
	}
	if target < 0 || target >= len(sorted) {
		return sorted
	}

	sorted[idx], sorted[target] = sorted[target], sorted[idx]
	return renumber(sorted)
}

// ReorderAfterDrag removes the item at from and reinserts it at to within the
// already-displayed sequence, then renumbers the whole group. Out-of-range
// indices return the sorted input unchanged.
func ReorderAfterDrag(items []Item, from, to int) []Item {
	sorted := Sorted(items)
	if from < 0 || from >= len(sorted) || to < 0 || to >= len(sorted) {
		return sorted
	}
	if from == to {
		return renumber(sorted)
	}

	moved := sorted[from]
	rest := append(sorted[:from:from], sorted[from+1:]...)
	out := make([]Item, 0, len(sorted))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return renumber(out)
}
