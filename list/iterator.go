// SPDX-License-Identifier: Apache-2.0

package list

import (
	"iter"

	arena "github.com/wundergraph/go-fixedarena"
)

// Iterator is a forward position in a List. The end position is the zero handle,
// so End iterators stay valid while the list grows. Any other mutation
// invalidates outstanding iterators.
type Iterator[T any] struct {
	alloc arena.Allocator[Node[T]]
	at    arena.Handle
}

// Begin returns an iterator at the first element. It may be called any number of
// times to restart iteration.
func (l *List[T]) Begin() Iterator[T] {
	return Iterator[T]{alloc: l.alloc, at: l.head}
}

// End returns the position past the last element.
func (l *List[T]) End() Iterator[T] {
	return Iterator[T]{alloc: l.alloc}
}

// Done reports whether the iterator is at the end.
func (it Iterator[T]) Done() bool {
	return it.at.IsEmpty()
}

// Value returns the element at the iterator's position.
func (it Iterator[T]) Value() *T {
	return &it.alloc.At(it.at).value
}

// Next returns the iterator at the following position.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{alloc: it.alloc, at: it.alloc.At(it.at).next}
}

// Equal reports whether both iterators are at the same position.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.at == other.at
}

// All yields a pointer to every element in insertion order.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for it := l.Begin(); !it.Done(); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Values returns a copy of the elements in insertion order.
func (l *List[T]) Values() []T {
	var out []T
	for v := range l.All() {
		out = append(out, *v)
	}
	return out
}
