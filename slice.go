// SPDX-License-Identifier: Apache-2.0

package arena

// Slice returns a typed view of the region identified by h.
// The view aliases the arena's block and is only valid until the region is
// deallocated or the arena is released. It panics if h was not issued by a.
func (a *Fixed[T]) Slice(h Handle) []T {
	region, err := a.region(h)
	if err != nil {
		panic(err)
	}
	return region
}

// AllocateSlice reserves n elements from the arena and returns them zeroed,
// together with the handle needed to deallocate them.
// A request for zero elements returns a nil slice and the empty handle.
func AllocateSlice[T any](a *Fixed[T], n int) ([]T, Handle, error) {
	h, err := a.Allocate(n)
	if err != nil || h.IsEmpty() {
		return nil, h, err
	}
	var zero T
	if err := a.Construct(h, zero); err != nil {
		return nil, Handle{}, err
	}
	return a.Slice(h), h, nil
}
