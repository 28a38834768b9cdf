// SPDX-License-Identifier: Apache-2.0

// Package list implements a singly linked list whose nodes live in an
// arena.Allocator.
//
// Every node is reserved, constructed, destroyed and released through the
// allocator. Appending is O(1); removing the last element walks the chain from
// the head to find its predecessor, since nodes carry no back links.
package list

import (
	"github.com/pkg/errors"

	arena "github.com/wundergraph/go-fixedarena"
)

// ErrEmptyContainer is returned by operations that need at least one element.
var ErrEmptyContainer = errors.New("list: container is empty")

// Node holds one element and the handle of its successor.
type Node[T any] struct {
	value T
	next  arena.Handle
}

// Finalize forwards teardown to the element when it implements arena.Finalizer.
func (n *Node[T]) Finalize() {
	if f, ok := any(&n.value).(arena.Finalizer); ok {
		f.Finalize()
	}
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// List is a forward-only singly linked list. The zero value is not usable;
// create lists with New or NewWithAllocator.
//
// A List must not be copied; use Clone for a deep copy.
// List is not safe for concurrent use.
type List[T any] struct {
	noCopy noCopy

	alloc arena.Allocator[Node[T]]
	owned bool
	head  arena.Handle
	tail  arena.Handle
}

// New creates a list that stores its nodes in an allocator rebound from a.
// The rebound allocator belongs to the list and is released by Release; a itself
// is left untouched. If a is nil, nodes are allocated from the Go heap.
func New[T any](a arena.Allocator[T]) (*List[T], error) {
	if a == nil {
		return &List[T]{alloc: arena.NewHeap[Node[T]](), owned: true}, nil
	}
	nodes, err := arena.Rebind[Node[T]](a)
	if err != nil {
		return nil, err
	}
	return &List[T]{alloc: nodes, owned: true}, nil
}

// NewWithAllocator creates a list that uses a without owning it.
// The caller must keep a alive for as long as the list is in use.
func NewWithAllocator[T any](a arena.Allocator[Node[T]]) *List[T] {
	return &List[T]{alloc: a}
}

// Allocator returns the allocator holding the list's nodes.
func (l *List[T]) Allocator() arena.Allocator[Node[T]] {
	return l.alloc
}

// PushBack appends v. If the allocator cannot provide a node, its error is
// returned unchanged and the list is left as it was.
func (l *List[T]) PushBack(v T) error {
	h, err := l.alloc.Allocate(1)
	if err != nil {
		return err
	}
	if err := l.alloc.Construct(h, Node[T]{value: v}); err != nil {
		_ = l.alloc.Deallocate(h, 1)
		return err
	}
	if l.head.IsEmpty() {
		l.head = h
	} else {
		l.alloc.At(l.tail).next = h
	}
	l.tail = h
	return nil
}

// PopBack removes the last element. It runs in O(n).
func (l *List[T]) PopBack() error {
	if l.Empty() {
		return errors.WithStack(ErrEmptyContainer)
	}
	var prev arena.Handle
	if last := l.tail; l.head != last {
		prev = l.head
		for {
			next := l.alloc.At(prev).next
			if next == last {
				break
			}
			prev = next
		}
	}

	return l.removeTail(prev)
}

// removeTail destroys and releases the tail node and makes prev the new tail.
// Nothing changes if the allocator refuses to release the node.
func (l *List[T]) removeTail(prev arena.Handle) error {
	last := l.tail
	if err := l.alloc.CheckRelease(last, 1); err != nil {
		return err
	}
	if err := l.alloc.Destroy(last); err != nil {
		return err
	}
	if err := l.alloc.Deallocate(last, 1); err != nil {
		return err
	}

	if prev.IsEmpty() {
		l.head = arena.Handle{}
		l.tail = arena.Handle{}
		return nil
	}
	l.alloc.At(prev).next = arena.Handle{}
	l.tail = prev
	return nil
}

// Front returns the first element.
func (l *List[T]) Front() (*T, error) {
	if l.Empty() {
		return nil, errors.WithStack(ErrEmptyContainer)
	}
	return &l.alloc.At(l.head).value, nil
}

// Back returns the last element.
func (l *List[T]) Back() (*T, error) {
	if l.Empty() {
		return nil, errors.WithStack(ErrEmptyContainer)
	}
	return &l.alloc.At(l.tail).value, nil
}

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool {
	return l.head.IsEmpty()
}

// Size counts the elements. It walks the whole chain on every call.
func (l *List[T]) Size() int {
	n := 0
	for it := l.Begin(); !it.Done(); it = it.Next() {
		n++
	}
	return n
}

// Clear destroys and releases every node and leaves the list empty.
// Nodes are released from the tail towards the head. If the allocator refuses
// to release a node, Clear stops and returns the error; that node and the ones
// before it stay in the list, so no slot is lost.
func (l *List[T]) Clear() error {
	var chain []arena.Handle
	for h := l.head; !h.IsEmpty(); h = l.alloc.At(h).next {
		chain = append(chain, h)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		var prev arena.Handle
		if i > 0 {
			prev = chain[i-1]
		}
		if err := l.removeTail(prev); err != nil {
			return err
		}
	}
	return nil
}

// Release clears the list and, when the list owns its allocator, releases it.
// The list must not be used afterwards.
func (l *List[T]) Release() error {
	err := l.Clear()
	if l.owned {
		l.alloc.Release()
	}
	return err
}

// Clone returns a deep copy of l backed by a fresh allocator rebound from l's.
// On failure no list is returned and the partial copy is released.
func (l *List[T]) Clone() (*List[T], error) {
	nodes, err := arena.Rebind[Node[T]](l.alloc)
	if err != nil {
		return nil, err
	}
	dst := &List[T]{alloc: nodes, owned: true}
	if err := dst.appendAll(l); err != nil {
		_ = dst.Release()
		return nil, err
	}
	return dst, nil
}

// CloneWith returns a deep copy of l whose nodes live in a.
// The caller keeps ownership of a. On failure the nodes already copied are released.
func (l *List[T]) CloneWith(a arena.Allocator[Node[T]]) (*List[T], error) {
	dst := NewWithAllocator(a)
	if err := dst.appendAll(l); err != nil {
		_ = dst.Clear()
		return nil, err
	}
	return dst, nil
}

func (l *List[T]) appendAll(src *List[T]) error {
	for it := src.Begin(); !it.Done(); it = it.Next() {
		if err := l.PushBack(*it.Value()); err != nil {
			return errors.Wrap(err, "list: copying elements")
		}
	}
	return nil
}
