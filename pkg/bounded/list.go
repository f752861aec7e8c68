// Package bounded provides append-only collections whose capacity is fixed
// when they are created.
//
// A List or Set never grows past its capacity: the backing array is
// allocated once and an insert past capacity fails with ERR_COLLECTION_FULL.
// Set additionally rejects an element equal to one already present with
// ERR_COLLECTION_DUPLICATE. Callers translate these generic codes into their
// own domain codes.
//
// ListFromSlice and SetFromSlice panic on input that does not fit.
package bounded

import (
	"fmt"
	"iter"

	"github.com/bsv-blockchain/utxomatch/errors"
)

// List is an insertion-ordered list holding at most Cap() elements.
type List[T any] struct {
	items []T
}

// NewList returns an empty list with the given capacity.
func NewList[T any](capacity int) *List[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("bounded: negative capacity %d", capacity))
	}

	return &List[T]{items: make([]T, 0, capacity)}
}

// ListFromSlice returns a list of the given capacity holding a copy of items.
// It panics when len(items) > capacity.
func ListFromSlice[T any](capacity int, items []T) *List[T] {
	if len(items) > capacity {
		panic(fmt.Sprintf("bounded: %d items exceed list capacity %d", len(items), capacity))
	}

	l := NewList[T](capacity)
	l.items = append(l.items, items...)

	return l
}

// Push appends item, failing when the list is full.
func (l *List[T]) Push(item T) error {
	if len(l.items) == cap(l.items) {
		return errors.NewCollectionFullError("list capacity %d reached", cap(l.items))
	}

	l.items = append(l.items, item)

	return nil
}

// Get returns the element at i.
func (l *List[T]) Get(i int) (T, bool) {
	var zero T

	if i < 0 || i >= len(l.items) {
		return zero, false
	}

	return l.items[i], true
}

// Set replaces the element at i.
func (l *List[T]) Set(i int, item T) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}

	l.items[i] = item

	return true
}

func (l *List[T]) Len() int      { return len(l.items) }
func (l *List[T]) Cap() int      { return cap(l.items) }
func (l *List[T]) IsEmpty() bool { return len(l.items) == 0 }
func (l *List[T]) IsFull() bool  { return len(l.items) == cap(l.items) }

// Clear empties the list, keeping its capacity.
func (l *List[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// AsSlice returns a view of the elements. The view's capacity equals its
// length, so appending to it never writes into the list.
func (l *List[T]) AsSlice() []T {
	return l.items[:len(l.items):len(l.items)]
}

// All iterates the elements in insertion order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Clone returns an independent copy with the same capacity.
func (l *List[T]) Clone() *List[T] {
	c := NewList[T](cap(l.items))
	c.items = append(c.items, l.items...)

	return c
}
