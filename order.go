package thicket

import "sort"

// Kind names a concrete component type. The scene buckets components by
// their exact kind when it builds the dispatch order.
type Kind string

// OrderEntry binds a component kind to its dispatch priority.
type OrderEntry struct {
	Kind     Kind
	Priority int
}

// OrderTable is the statically declared kind → priority table a scene
// dispatches with. Lower priorities start, update and draw first; kinds with
// equal priority keep their declaration order.
type OrderTable struct {
	entries []OrderEntry
	index   map[Kind]int
	sorted  []Kind
}

// NewOrderTable builds a table from entries in declaration order.
// A kind declared twice keeps its first position and takes the later priority.
func NewOrderTable(entries ...OrderEntry) *OrderTable {
	t := &OrderTable{index: make(map[Kind]int, len(entries))}
	for _, e := range entries {
		t.Register(e.Kind, e.Priority)
	}
	return t
}

// DefaultOrder declares the built-in component kinds, all at priority 0, in
// the order they were introduced to the engine.
func DefaultOrder() *OrderTable {
	return NewOrderTable(
		OrderEntry{KindTransform, 0},
		OrderEntry{KindSpriteRenderer, 0},
		OrderEntry{KindCamera, 0},
		OrderEntry{KindCollider, 0},
		OrderEntry{KindColliderVisualizer, 0},
		OrderEntry{KindRigidbody, 0},
		OrderEntry{KindTween, 0},
		OrderEntry{KindScript, 0},
	)
}

// Register declares kind with the given priority.
func (t *OrderTable) Register(kind Kind, priority int) {
	if i, ok := t.index[kind]; ok {
		t.entries[i].Priority = priority
	} else {
		t.index[kind] = len(t.entries)
		t.entries = append(t.entries, OrderEntry{Kind: kind, Priority: priority})
	}
	t.sorted = nil
}

// Priority returns the priority of kind and whether it is declared.
func (t *OrderTable) Priority(kind Kind) (int, bool) {
	i, ok := t.index[kind]
	if !ok {
		return 0, false
	}
	return t.entries[i].Priority, true
}

// Has reports whether kind is declared.
func (t *OrderTable) Has(kind Kind) bool {
	_, ok := t.index[kind]
	return ok
}

// Kinds returns the declared kinds in dispatch order. The returned slice
// MUST NOT be mutated.
func (t *OrderTable) Kinds() []Kind {
	if t.sorted != nil {
		return t.sorted
	}
	entries := make([]OrderEntry, len(t.entries))
	copy(entries, t.entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority < entries[j].Priority
	})
	t.sorted = make([]Kind, len(entries))
	for i, e := range entries {
		t.sorted[i] = e.Kind
	}
	return t.sorted
}

// Len returns the number of declared kinds.
func (t *OrderTable) Len() int {
	return len(t.entries)
}
