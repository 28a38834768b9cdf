// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAllocationFailure is matched by errors reporting that the backing block
	// could not be obtained at all.
	ErrAllocationFailure = errors.New("arena: allocation failure")
	// ErrCapacityExceeded is matched by errors reporting that a request does not fit
	// into the fixed capacity.
	ErrCapacityExceeded = errors.New("arena: capacity exceeded")

	// ErrInvalidSize is returned for negative element counts and for release sizes
	// that do not match the region.
	ErrInvalidSize = errors.New("arena: invalid allocation size")
	// ErrReleased is returned when an allocator is used after Release.
	ErrReleased = errors.New("arena: use after Release")
	// ErrForeignHandle is returned for handles issued by another allocator or
	// referring to a region that is no longer live.
	ErrForeignHandle = errors.New("arena: handle was not issued by this allocator")
	// ErrOutOfOrderRelease is returned by arenas using WithStrictRelease when a
	// region other than the most recently allocated one is released.
	ErrOutOfOrderRelease = errors.New("arena: region is not the most recently allocated one")
	// ErrNotRebindable is returned by Rebind for allocators it does not know how to copy.
	ErrNotRebindable = errors.New("arena: allocator cannot be rebound")
)

// CapacityExceededError is returned when a request would exceed the fixed
// element capacity of an arena.
type CapacityExceededError struct {
	Capacity  int
	Used      int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("arena: ran out of capacity: capacity %d, used %d, requested %d",
		e.Capacity, e.Used, e.Requested)
}

// Is makes errors.Is(err, ErrCapacityExceeded) hold.
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// AllocationError is returned when the backing block of an arena could not be
// acquired. Once returned, every later request to the same arena fails with it.
type AllocationError struct {
	Elements int
	Bytes    uintptr
	Err      error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("arena: failed to allocate block of %d elements (%d bytes): %v",
		e.Elements, e.Bytes, e.Err)
}

// Is makes errors.Is(err, ErrAllocationFailure) hold.
func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocationFailure
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}
