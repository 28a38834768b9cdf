// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"github.com/pkg/errors"
)

// Rebind returns a new allocator for values of type U configured like a.
//
// Rebinding a Fixed arena yields a fresh arena with its own block of the same
// element capacity, counted in elements of U. The two arenas do not share a byte
// budget. Rebinding a Heap yields a new Heap.
func Rebind[U, T any](a Allocator[T]) (Allocator[U], error) {
	switch a := a.(type) {
	case *Fixed[T]:
		return newFixed[U](a.cfg), nil
	case *Heap[T]:
		return NewHeap[U](), nil
	case nil:
		return nil, errors.Wrap(ErrNotRebindable, "nil allocator")
	default:
		return nil, errors.Wrapf(ErrNotRebindable, "%T", a)
	}
}
