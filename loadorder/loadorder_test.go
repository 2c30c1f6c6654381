package loadorder

import (
	"reflect"
	"testing"
)

func TestReorder(t *testing.T) {
	tests := []struct {
		name      string
		order     []string
		target    string
		direction Direction
		expected  []string
	}{
		{"move middle to top", []string{"a", "b", "c"}, "b", Top, []string{"b", "a", "c"}},
		{"move last to top", []string{"a", "b", "c"}, "c", Top, []string{"c", "a", "b"}},
		{"move up", []string{"a", "b", "c"}, "b", Up, []string{"b", "a", "c"}},
		{"move up at top clamps", []string{"a", "b", "c"}, "a", Up, []string{"a", "b", "c"}},
		{"move down", []string{"a", "b", "c"}, "b", Down, []string{"a", "c", "b"}},
		{"move down at bottom clamps", []string{"a", "b", "c"}, "c", Down, []string{"a", "b", "c"}},
		{"move first to bottom", []string{"a", "b", "c"}, "a", Bottom, []string{"b", "c", "a"}},
		{"move middle to bottom", []string{"a", "b", "c", "d"}, "b", Bottom, []string{"a", "c", "d", "b"}},
		{"single element is a no-op", []string{"a"}, "a", Top, []string{"a"}},
		{"empty order", []string{}, "a", Top, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reorder(tt.order, tt.target, tt.direction)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Reorder(%v, %q, %v) = %v, want %v",
					tt.order, tt.target, tt.direction, result, tt.expected)
			}
		})
	}
}

func TestReorderUnknownTargetReturnsInputUnchanged(t *testing.T) {
	order := []string{"a", "b", "c"}
	result := Reorder(order, "x", Top)
	if !reflect.DeepEqual(result, order) {
		t.Errorf("Reorder with unknown target = %v, want %v", result, order)
	}
}

func TestReorderPreservesRelativeOrder(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e"}

	t.Run("top preserves others", func(t *testing.T) {
		result := Reorder(order, "d", Top)
		if result[0] != "d" {
			t.Fatalf("expected d at index 0, got %v", result)
		}
		rest := result[1:]
		expected := []string{"a", "b", "c", "e"}
		if !reflect.DeepEqual(rest, expected) {
			t.Errorf("relative order broken: %v, want %v", rest, expected)
		}
	})

	t.Run("bottom preserves others", func(t *testing.T) {
		result := Reorder(order, "b", Bottom)
		if result[len(result)-1] != "b" {
			t.Fatalf("expected b at last index, got %v", result)
		}
		rest := result[:len(result)-1]
		expected := []string{"a", "c", "d", "e"}
		if !reflect.DeepEqual(rest, expected) {
			t.Errorf("relative order broken: %v, want %v", rest, expected)
		}
	})
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	order := []string{"a", "b", "c"}
	Reorder(order, "c", Top)
	if !reflect.DeepEqual(order, []string{"a", "b", "c"}) {
		t.Errorf("input was mutated: %v", order)
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		order    []string
		expected []string
	}{
		{"full order", []string{"c", "a", "b"}, []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"absent ids sort last stably", []string{"x", "b", "y", "a"}, []string{"a", "b"}, []string{"a", "b", "x", "y"}},
		{"empty order keeps input", []string{"b", "a"}, nil, []string{"b", "a"}},
		{"empty ids", nil, []string{"a"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sort(tt.ids, tt.order)
			if len(result) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Sort(%v, %v) = %v, want %v", tt.ids, tt.order, result, tt.expected)
			}
		})
	}
}
