// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"unsafe"
)

// Stats contains statistical information about a Fixed arena.
type Stats struct {
	Capacity     int     // Elements the block holds, zero until it is allocated
	MaxCapacity  int     // Configured element capacity
	Used         int     // High-water mark in elements
	Peak         int     // Highest high-water mark observed
	ElementSize  uintptr // Size of one element in bytes
	Materialized bool    // Whether the block has been allocated
	Utilization  float64 // Ratio of Used to Capacity (0.0-1.0)
}

// Stats returns a snapshot of the arena's accounting.
func (a *Fixed[T]) Stats() Stats {
	var x T
	s := Stats{
		Capacity:     a.capacity,
		MaxCapacity:  a.cfg.capacity,
		Used:         a.used,
		Peak:         a.peak,
		ElementSize:  unsafe.Sizeof(x),
		Materialized: a.materialized && !a.released,
	}
	if s.Capacity > 0 {
		s.Utilization = float64(s.Used) / float64(s.Capacity)
	}
	return s
}

// BlockSize returns the size in bytes of the arena's block once allocated.
func (s Stats) BlockSize() uintptr {
	return uintptr(s.MaxCapacity) * s.ElementSize
}
