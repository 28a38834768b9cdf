// SPDX-License-Identifier: Apache-2.0

package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorRestartable(t *testing.T) {
	l := newArenaList[int](t, 5)
	pushAll(t, l, 3, 1, 4)

	for round := 0; round < 2; round++ {
		var got []int
		for it := l.Begin(); !it.Equal(l.End()); it = it.Next() {
			got = append(got, *it.Value())
		}
		require.Equal(t, []int{3, 1, 4}, got)
	}
}

func TestIteratorEmptyList(t *testing.T) {
	l := newArenaList[int](t, 1)
	require.True(t, l.Begin().Done())
	require.True(t, l.Begin().Equal(l.End()))
	require.Nil(t, l.Values())
}

func TestIteratorEndSurvivesGrowth(t *testing.T) {
	l := newArenaList[int](t, 5)
	end := l.End()
	pushAll(t, l, 1, 2)

	n := 0
	for it := l.Begin(); !it.Equal(end); it = it.Next() {
		n++
	}
	require.Equal(t, 2, n)
}

func TestAllYieldsReferences(t *testing.T) {
	l := newArenaList[int](t, 5)
	pushAll(t, l, 1, 2, 3)

	for v := range l.All() {
		*v *= 10
	}
	require.Equal(t, []int{10, 20, 30}, l.Values())

	// Early exit
	var first []int
	for v := range l.All() {
		first = append(first, *v)
		break
	}
	require.Equal(t, []int{10}, first)
}
