package store

import (
	"maps"
	"slices"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
)

// Collection is a keyed set of entities of one kind. Values are copied on the
// way in and out, so callers never share memory with the store.
type Collection[T any] struct {
	entity string
	items  map[string]T
	clone  func(T) T
}

func newCollection[T any](entity string, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{entity: entity, items: make(map[string]T), clone: clone}
}

func (c *Collection[T]) copy() *Collection[T] {
	return &Collection[T]{entity: c.entity, items: maps.Clone(c.items), clone: c.clone}
}

// Get returns the entity stored under id or a NotFoundError.
func (c *Collection[T]) Get(id string) (T, error) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, common.NewNotFound(c.entity, id)
	}
	return c.clone(v), nil
}

func (c *Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Put stores v under id, replacing any previous value.
func (c *Collection[T]) Put(id string, v T) {
	c.items[id] = c.clone(v)
}

// Delete removes id and reports whether it was present.
func (c *Collection[T]) Delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

func (c *Collection[T]) Len() int { return len(c.items) }

// Keys returns all ids in natural order ("2" before "10").
func (c *Collection[T]) Keys() []string {
	keys := slices.Collect(maps.Keys(c.items))
	slices.SortFunc(keys, CompareIDs)
	return keys
}

// List returns every entity ordered by id.
func (c *Collection[T]) List() []T {
	return c.Filter(nil)
}

// Filter returns the entities accepted by keep, ordered by id. A nil keep
// accepts everything.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0, len(c.items))
	for _, k := range c.Keys() {
		v := c.items[k]
		if keep == nil || keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

// Find returns the first entity, by id order, accepted by match.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	for _, k := range c.Keys() {
		if v := c.items[k]; match(v) {
			return c.clone(v), true
		}
	}
	var zero T
	return zero, false
}

// NextID allocates the smallest unused non-negative integer id.
func (c *Collection[T]) NextID() string {
	return SmallestUnused(func(id string) bool {
		_, ok := c.items[id]
		return ok
	}, "")
}
