package bounded

import (
	"fmt"
	"iter"

	"github.com/bsv-blockchain/utxomatch/errors"
)

// Set is a List that rejects elements equal to one it already holds.
// Membership is a linear scan; capacities are small by construction.
type Set[T comparable] struct {
	list List[T]
}

// NewSet returns an empty set with the given capacity.
func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{list: *NewList[T](capacity)}
}

// SetFromSlice returns a set of the given capacity holding items. It panics
// when len(items) > capacity or when items contains duplicates.
func SetFromSlice[T comparable](capacity int, items []T) *Set[T] {
	if len(items) > capacity {
		panic(fmt.Sprintf("bounded: %d items exceed set capacity %d", len(items), capacity))
	}

	s := NewSet[T](capacity)

	for _, item := range items {
		if err := s.Insert(item); err != nil {
			panic(fmt.Sprintf("bounded: %v", err))
		}
	}

	return s
}

// Insert adds item. Duplicates are reported before capacity, so inserting
// an existing element into a full set fails with ERR_COLLECTION_DUPLICATE.
func (s *Set[T]) Insert(item T) error {
	if s.Contains(item) {
		return errors.NewCollectionDuplicateError("element %v already present", item)
	}

	return s.list.Push(item)
}

// Contains reports whether an element equal to item is present.
func (s *Set[T]) Contains(item T) bool {
	return s.Index(item) >= 0
}

// Index returns the position of item, or -1.
func (s *Set[T]) Index(item T) int {
	for i, v := range s.list.items {
		if v == item {
			return i
		}
	}

	return -1
}

// Remove deletes item, preserving the order of the remaining elements.
func (s *Set[T]) Remove(item T) bool {
	i := s.Index(item)
	if i < 0 {
		return false
	}

	var zero T

	items := s.list.items
	copy(items[i:], items[i+1:])
	items[len(items)-1] = zero
	s.list.items = items[:len(items)-1]

	return true
}

func (s *Set[T]) Len() int      { return s.list.Len() }
func (s *Set[T]) Cap() int      { return s.list.Cap() }
func (s *Set[T]) IsEmpty() bool { return s.list.IsEmpty() }
func (s *Set[T]) IsFull() bool  { return s.list.IsFull() }
func (s *Set[T]) Clear()        { s.list.Clear() }

// AsSlice returns a view of the elements in insertion order.
func (s *Set[T]) AsSlice() []T { return s.list.AsSlice() }

// All iterates the elements in insertion order.
func (s *Set[T]) All() iter.Seq2[int, T] { return s.list.All() }

// Clone returns an independent copy with the same capacity.
func (s *Set[T]) Clone() *Set[T] {
	return &Set[T]{list: *s.list.Clone()}
}
