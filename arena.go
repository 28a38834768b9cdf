// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"sync/atomic"
)

// Allocator is an interface that describes a typed allocator for values of type T.
// Storage is reserved and returned in regions identified by a Handle, and values are
// explicitly initialized and torn down inside already reserved regions.
type Allocator[T any] interface {
	// Allocate reserves storage for n contiguous elements and returns a handle to it.
	// Requesting zero elements returns the empty handle and has no side effects.
	Allocate(n int) (Handle, error)

	// Deallocate returns a previously issued n-element region to the allocator.
	Deallocate(h Handle, n int) error

	// CheckRelease returns the error Deallocate(h, n) would return, without
	// changing any state.
	CheckRelease(h Handle, n int) error

	// Construct initializes every slot of the region with v.
	// No allocation happens; the region must already be reserved.
	Construct(h Handle, v T) error

	// Destroy runs the teardown logic of the values held in the region without
	// releasing the region itself. It must be followed by Deallocate.
	Destroy(h Handle) error

	// At returns a pointer to the first slot of the region.
	At(h Handle) *T

	// Release releases the allocator's underlying memory back to the system.
	// After invoking this method, the allocator should not be used for further allocations.
	Release()

	// Len returns the number of elements currently considered in use.
	Len() int

	// Cap returns the number of elements the allocator can hold.
	Cap() int

	// Peak returns the highest number of elements that have been in use at once.
	Peak() int

	// Equal reports whether two allocators can release each other's regions.
	Equal(other any) bool
}

// Finalizer is implemented by values that need teardown when they are destroyed
// in place by an Allocator.
type Finalizer interface {
	Finalize()
}

// Handle identifies a region reserved from an Allocator.
// The zero Handle is the empty region.
type Handle struct {
	owner uint64
	off   int
	n     int
}

// IsEmpty reports whether h refers to no storage.
func (h Handle) IsEmpty() bool {
	return h.n == 0
}

// Offset returns the index of the first element of the region.
func (h Handle) Offset() int {
	return h.off
}

// Len returns the number of elements in the region.
func (h Handle) Len() int {
	return h.n
}

var allocatorIDs atomic.Uint64

// nextAllocatorID returns a process wide unique, non-zero allocator id.
func nextAllocatorID() uint64 {
	return allocatorIDs.Add(1)
}

// finalize runs Finalize on v when its pointer implements Finalizer and zeroes it.
func finalize[T any](v *T) {
	if f, ok := any(v).(Finalizer); ok {
		f.Finalize()
	}
	var zero T
	*v = zero
}
