// Package loadorder holds the ordering arithmetic for a profile's mod load
// order. Later entries override earlier ones on content collision, so every
// reorder goes through here and nowhere else.
package loadorder

import "sort"

// Direction is where a reorder moves the target relative to its position.
type Direction int

const (
	Top Direction = iota
	Up
	Down
	Bottom
)

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Up:
		return "up"
	case Down:
		return "down"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Reorder returns a new order with target moved in the given direction. The
// relative order of all other entries is preserved. If target is not in
// order, the input is returned unchanged.
func Reorder(order []string, target string, direction Direction) []string {
	current := -1
	for i, id := range order {
		if id == target {
			current = i
			break
		}
	}
	if current == -1 {
		return order
	}

	rest := make([]string, 0, len(order)-1)
	rest = append(rest, order[:current]...)
	rest = append(rest, order[current+1:]...)

	// Insertion indices are computed against the list with target removed.
	var insert int
	switch direction {
	case Top:
		insert = 0
	case Up:
		insert = current - 1
		if insert < 0 {
			insert = 0
		}
	case Down:
		insert = current + 1
		if insert > len(rest) {
			insert = len(rest)
		}
	case Bottom:
		insert = len(rest)
	default:
		insert = current
	}

	result := make([]string, 0, len(order))
	result = append(result, rest[:insert]...)
	result = append(result, target)
	result = append(result, rest[insert:]...)
	return result
}

// Sort orders ids by their position in order. Ids absent from order sort
// last, stably, keeping the order they were supplied in.
func Sort(ids []string, order []string) []string {
	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	sorted := make([]string, len(ids))
	copy(sorted, ids)

	rank := func(id string) int {
		if p, ok := position[id]; ok {
			return p
		}
		return len(order) + 1
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})
	return sorted
}
