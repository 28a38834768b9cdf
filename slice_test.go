// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocateSlice(t *testing.T) {
	a := newTestArena[int](t, 8)

	s, h, err := AllocateSlice(a, 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0}, s)
	require.Equal(t, 3, cap(s))
	s[1] = 42
	require.Equal(t, 42, a.Slice(h)[1])

	// Released slots come back zeroed
	require.NoError(t, a.Deallocate(h, 3))
	s, _, err = AllocateSlice(a, 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0}, s)
}

func TestAllocateSliceEmptyAndTooLarge(t *testing.T) {
	a := newTestArena[int](t, 2)

	s, h, err := AllocateSlice(a, 0)
	require.NoError(t, err)
	require.Nil(t, s)
	require.True(t, h.IsEmpty())

	_, _, err = AllocateSlice(a, 3)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestSliceForeignHandlePanics(t *testing.T) {
	a := newTestArena[int](t, 2)
	b := newTestArena[int](t, 2)
	h, err := b.Allocate(1)
	require.NoError(t, err)
	require.Panics(t, func() { a.Slice(h) })
}
