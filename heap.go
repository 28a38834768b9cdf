// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"math"

	"github.com/pkg/errors"
)

// Heap is an unbounded Allocator that serves every region from the Go heap.
// It is used where no arena is configured. Regions may be released in any order
// and a region released twice is reported as foreign.
type Heap[T any] struct {
	id       uint64
	regions  map[int][]T
	next     int
	used     int
	peak     int
	released bool
}

// NewHeap creates a Heap allocator.
func NewHeap[T any]() *Heap[T] {
	return &Heap[T]{
		id:      nextAllocatorID(),
		regions: make(map[int][]T),
	}
}

// Allocate satisfies the Allocator interface.
func (h *Heap[T]) Allocate(n int) (Handle, error) {
	switch {
	case n < 0:
		return Handle{}, errors.Wrapf(ErrInvalidSize, "requested %d elements", n)
	case n == 0:
		return Handle{}, nil
	case h.released:
		return Handle{}, errors.WithStack(ErrReleased)
	}
	r := Handle{owner: h.id, off: h.next, n: n}
	h.regions[r.off] = make([]T, n)
	h.next += n
	h.used += n
	if h.used > h.peak {
		h.peak = h.used
	}
	return r, nil
}

// Deallocate satisfies the Allocator interface.
// The whole region is freed, so n must equal the region's length.
func (h *Heap[T]) Deallocate(r Handle, n int) error {
	if err := h.CheckRelease(r, n); err != nil {
		return err
	}
	if n == 0 || r.IsEmpty() || h.released {
		return nil
	}
	delete(h.regions, r.off)
	h.used -= r.n
	return nil
}

// CheckRelease satisfies the Allocator interface.
func (h *Heap[T]) CheckRelease(r Handle, n int) error {
	switch {
	case n < 0:
		return errors.Wrapf(ErrInvalidSize, "released %d elements", n)
	case n == 0 || r.IsEmpty() || h.released:
		return nil
	case n != r.n:
		return errors.Wrapf(ErrInvalidSize, "released %d elements of a %d element region", n, r.n)
	}
	_, err := h.region(r)
	return err
}

// Construct satisfies the Allocator interface.
func (h *Heap[T]) Construct(r Handle, v T) error {
	region, err := h.region(r)
	if err != nil {
		return err
	}
	for i := range region {
		region[i] = v
	}
	return nil
}

// Destroy satisfies the Allocator interface.
func (h *Heap[T]) Destroy(r Handle) error {
	region, err := h.region(r)
	if err != nil {
		return err
	}
	for i := range region {
		finalize(&region[i])
	}
	return nil
}

// At satisfies the Allocator interface.
func (h *Heap[T]) At(r Handle) *T {
	region, err := h.region(r)
	if err != nil {
		panic(err)
	}
	if len(region) == 0 {
		panic("arena: dereferencing the empty handle")
	}
	return &region[0]
}

func (h *Heap[T]) region(r Handle) ([]T, error) {
	switch {
	case r.IsEmpty():
		return nil, nil
	case h.released:
		return nil, errors.WithStack(ErrReleased)
	case r.owner != h.id:
		return nil, errors.WithStack(ErrForeignHandle)
	}
	region, ok := h.regions[r.off]
	if !ok || len(region) != r.n {
		return nil, errors.Wrapf(ErrForeignHandle, "region at offset %d is not live", r.off)
	}
	return region, nil
}

// Release satisfies the Allocator interface.
func (h *Heap[T]) Release() {
	h.released = true
	h.regions = nil
	h.used = 0
}

// Len satisfies the Allocator interface.
func (h *Heap[T]) Len() int {
	return h.used
}

// Cap satisfies the Allocator interface. A Heap has no capacity limit.
func (h *Heap[T]) Cap() int {
	return math.MaxInt
}

// Peak satisfies the Allocator interface.
func (h *Heap[T]) Peak() int {
	return h.peak
}

// Equal reports whether other is h itself.
func (h *Heap[T]) Equal(other any) bool {
	o, ok := other.(*Heap[T])
	return ok && o == h
}
