// SPDX-License-Identifier: Apache-2.0

package arena

import (
	"log"
	"os"
	"unsafe"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
)

// maxBlockBytes is the largest block the runtime is ever asked for.
const maxBlockBytes = ^uintptr(0) >> 1

// Fixed is a bump allocator for exactly Cap() elements of type T.
//
// The backing block is allocated lazily on the first non-empty request and is
// never grown. Regions are handed out by advancing a high-water mark; releasing a
// region only rewinds the mark, so regions must be deallocated in reverse
// allocation order for the accounting to stay meaningful.
//
// Fixed is not safe for concurrent use.
type Fixed[T any] struct {
	id  uint64
	cfg config

	block        []T
	materialized bool
	capacity     int // fixed once the block is materialized
	used         int // high-water mark
	peak         int
	failed       *AllocationError
	released     bool
}

type config struct {
	capacity      int
	memoryLimit   int
	strictRelease bool
	logger        logr.Logger
}

// Option represents a configuration option for an arena.
// Options do not depend on the element type, so they are carried over by Rebind.
type Option func(*config)

// WithMemoryLimit makes block acquisition fail with an AllocationError when the
// block would be larger than bytes. Zero means no limit.
func WithMemoryLimit(bytes int) Option {
	return func(c *config) {
		c.memoryLimit = bytes
	}
}

// WithStrictRelease rejects Deallocate calls that do not release the most
// recently allocated region with ErrOutOfOrderRelease instead of rewinding the
// high-water mark blindly.
func WithStrictRelease() Option {
	return func(c *config) {
		c.strictRelease = true
	}
}

// WithLogger sets the logger used to report allocation failures.
func WithLogger(logger logr.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func defaultLogger() logr.Logger {
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("arena")
}

// New creates an arena able to hold capacity elements of type T.
// No memory is allocated until the first non-empty Allocate call.
func New[T any](capacity int, opts ...Option) *Fixed[T] {
	if capacity < 0 {
		panic("arena: negative capacity")
	}
	cfg := config{
		capacity: capacity,
		logger:   defaultLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newFixed[T](cfg)
}

func newFixed[T any](cfg config) *Fixed[T] {
	return &Fixed[T]{
		id:  nextAllocatorID(),
		cfg: cfg,
	}
}

// Allocate satisfies the Allocator interface.
func (a *Fixed[T]) Allocate(n int) (Handle, error) {
	switch {
	case n < 0:
		return Handle{}, errors.Wrapf(ErrInvalidSize, "requested %d elements", n)
	case n == 0:
		return Handle{}, nil
	case a.released:
		return Handle{}, errors.WithStack(ErrReleased)
	case a.failed != nil:
		return Handle{}, a.failed
	}

	if !a.materialized {
		if err := a.materialize(); err != nil {
			return Handle{}, err
		}
	}

	if n > a.capacity-a.used {
		err := &CapacityExceededError{
			Capacity:  a.capacity,
			Used:      a.used,
			Requested: n,
		}
		a.cfg.logger.Error(err, "arena ran out of capacity",
			"capacity", a.capacity, "used", a.used, "requested", n)
		return Handle{}, err
	}

	h := Handle{owner: a.id, off: a.used, n: n}
	a.used += n
	if a.used > a.peak {
		a.peak = a.used
	}
	return h, nil
}

func (a *Fixed[T]) materialize() error {
	block, aerr := acquireBlock[T](a.cfg.capacity, a.cfg.memoryLimit)
	if aerr != nil {
		a.failed = aerr
		a.cfg.logger.Error(aerr.Err, "arena failed to allocate its block",
			"elements", aerr.Elements, "bytes", aerr.Bytes)
		return aerr
	}
	a.block = block
	a.capacity = a.cfg.capacity
	a.materialized = true
	a.cfg.logger.V(1).Info("arena block allocated", "elements", a.capacity)
	return nil
}

// acquireBlock allocates a block of elements values of T from the Go heap.
func acquireBlock[T any](elements, limit int) (block []T, aerr *AllocationError) {
	var x T
	size := unsafe.Sizeof(x)
	if size != 0 && uintptr(elements) > maxBlockBytes/size {
		return nil, &AllocationError{
			Elements: elements,
			Err:      errors.Errorf("%d elements of %d bytes overflow the address space", elements, size),
		}
	}
	bytes := size * uintptr(elements)
	if limit > 0 && bytes > uintptr(limit) {
		return nil, &AllocationError{
			Elements: elements,
			Bytes:    bytes,
			Err:      errors.Errorf("block exceeds memory limit of %d bytes", limit),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			block = nil
			aerr = &AllocationError{
				Elements: elements,
				Bytes:    bytes,
				Err:      errors.Errorf("runtime refused allocation: %v", r),
			}
		}
	}()
	return make([]T, elements), nil
}

// Deallocate satisfies the Allocator interface.
//
// By default the high-water mark is rewound by min(Len(), n) regardless of which
// region h refers to. Releasing an interior region therefore leaves the mark
// inconsistent with the regions still in use. WithStrictRelease turns such calls
// into ErrOutOfOrderRelease.
func (a *Fixed[T]) Deallocate(h Handle, n int) error {
	if err := a.CheckRelease(h, n); err != nil {
		return err
	}
	if n == 0 || h.IsEmpty() || a.released {
		return nil
	}
	a.used -= min(a.used, n)
	return nil
}

// CheckRelease satisfies the Allocator interface.
func (a *Fixed[T]) CheckRelease(h Handle, n int) error {
	switch {
	case n < 0:
		return errors.Wrapf(ErrInvalidSize, "released %d elements", n)
	case n == 0 || h.IsEmpty() || a.released:
		return nil
	case h.owner != a.id:
		return errors.WithStack(ErrForeignHandle)
	}
	if a.cfg.strictRelease && (h.off+h.n != a.used || n != h.n) {
		return errors.Wrapf(ErrOutOfOrderRelease,
			"releasing %d elements of region [%d,%d) with high-water mark %d", n, h.off, h.off+h.n, a.used)
	}
	return nil
}

// Construct satisfies the Allocator interface.
func (a *Fixed[T]) Construct(h Handle, v T) error {
	region, err := a.region(h)
	if err != nil {
		return err
	}
	for i := range region {
		region[i] = v
	}
	return nil
}

// Destroy satisfies the Allocator interface.
func (a *Fixed[T]) Destroy(h Handle) error {
	region, err := a.region(h)
	if err != nil {
		return err
	}
	for i := range region {
		finalize(&region[i])
	}
	return nil
}

// At satisfies the Allocator interface.
// It panics if h is empty or was not issued by a.
func (a *Fixed[T]) At(h Handle) *T {
	region, err := a.region(h)
	if err != nil {
		panic(err)
	}
	if len(region) == 0 {
		panic("arena: dereferencing the empty handle")
	}
	return &region[0]
}

func (a *Fixed[T]) region(h Handle) ([]T, error) {
	switch {
	case h.IsEmpty():
		return nil, nil
	case a.released:
		return nil, errors.WithStack(ErrReleased)
	case h.owner != a.id || h.off+h.n > len(a.block):
		return nil, errors.WithStack(ErrForeignHandle)
	}
	return a.block[h.off : h.off+h.n : h.off+h.n], nil
}

// Reset rewinds the high-water mark to zero without releasing the block.
// Values left in the block are not finalized. Peak is preserved.
func (a *Fixed[T]) Reset() {
	a.used = 0
}

// Release satisfies the Allocator interface.
// The block is dropped exactly once; values still stored in it are not finalized.
func (a *Fixed[T]) Release() {
	if a.released {
		return
	}
	a.released = true
	a.block = nil
	a.used = 0
	a.capacity = 0
	a.cfg.logger.V(1).Info("arena released")
}

// Len returns the high-water mark in elements.
func (a *Fixed[T]) Len() int {
	return a.used
}

// Cap returns the fixed capacity in elements. It is zero until the block is allocated.
func (a *Fixed[T]) Cap() int {
	return a.capacity
}

// Peak returns the highest high-water mark observed.
// This value is not reset when Reset or Release are called.
func (a *Fixed[T]) Peak() int {
	return a.peak
}

// Equal always reports false: every arena owns a distinct block, so no two
// arenas can release each other's regions.
func (a *Fixed[T]) Equal(any) bool {
	return false
}
