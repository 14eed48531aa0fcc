package store

import (
	"maps"
	"slices"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
)

// Lists is a secondary index from a parent id to an ordered list of values.
// A parent that was never initialised is unknown: reads of it fail with
// NotFound instead of yielding an empty list.
type Lists[V comparable] struct {
	parent string
	items  map[string][]V
}

func newLists[V comparable](parent string) *Lists[V] {
	return &Lists[V]{parent: parent, items: make(map[string][]V)}
}

func (l *Lists[V]) copy() *Lists[V] {
	return &Lists[V]{parent: l.parent, items: maps.Clone(l.items)}
}

// Get returns the list of parent.
func (l *Lists[V]) Get(parent string) ([]V, error) {
	vs, ok := l.items[parent]
	if !ok {
		return nil, common.NewNotFound(l.parent, parent)
	}
	return slices.Clone(vs), nil
}

func (l *Lists[V]) Has(parent string) bool {
	_, ok := l.items[parent]
	return ok
}

// Init registers parent with an empty list unless it is already known.
func (l *Lists[V]) Init(parent string) {
	if _, ok := l.items[parent]; !ok {
		l.items[parent] = []V{}
	}
}

// Set replaces the list of parent.
func (l *Lists[V]) Set(parent string, vs []V) {
	if vs == nil {
		vs = []V{}
	}
	l.items[parent] = slices.Clone(vs)
}

// Append adds v to the list of a known parent.
func (l *Lists[V]) Append(parent string, v V) error {
	vs, ok := l.items[parent]
	if !ok {
		return common.NewNotFound(l.parent, parent)
	}
	l.items[parent] = append(slices.Clone(vs), v)
	return nil
}

// Contains reports whether parent is known and lists v.
func (l *Lists[V]) Contains(parent string, v V) bool {
	return slices.Contains(l.items[parent], v)
}

// Remove deletes every element of parent's list accepted by match and
// reports whether anything was removed.
func (l *Lists[V]) Remove(parent string, match func(V) bool) bool {
	vs, ok := l.items[parent]
	if !ok {
		return false
	}
	kept := slices.DeleteFunc(slices.Clone(vs), match)
	if len(kept) == len(vs) {
		return false
	}
	l.items[parent] = kept
	return true
}

// RemoveAll deletes elements accepted by match from every list and returns
// the parents that changed, in natural order.
func (l *Lists[V]) RemoveAll(match func(V) bool) []string {
	var touched []string
	for _, parent := range l.Parents() {
		if l.Remove(parent, match) {
			touched = append(touched, parent)
		}
	}
	return touched
}

// ParentsOf returns the parents whose list holds an element accepted by match.
func (l *Lists[V]) ParentsOf(match func(V) bool) []string {
	var out []string
	for _, parent := range l.Parents() {
		if slices.ContainsFunc(l.items[parent], match) {
			out = append(out, parent)
		}
	}
	return out
}

// Drop forgets parent entirely.
func (l *Lists[V]) Drop(parent string) {
	delete(l.items, parent)
}

// Parents returns every known parent id in natural order.
func (l *Lists[V]) Parents() []string {
	keys := slices.Collect(maps.Keys(l.items))
	slices.SortFunc(keys, CompareIDs)
	return keys
}
