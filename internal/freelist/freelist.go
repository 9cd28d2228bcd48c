// Package freelist recycles node handles released by the arena.
package freelist

import (
	"github.com/alexhholmes/bptree/internal/base"
)

// Freelist tracks node handles that are available for reuse. Handles are
// handed out most-recently-freed first so a split following a merge reuses
// the slot the merge just released.
type Freelist struct {
	stack []base.NodeID
	freed map[base.NodeID]struct{} // membership index for stack
}

// New creates a new Freelist with empty state
func New() *Freelist {
	return &Freelist{
		freed: make(map[base.NodeID]struct{}),
	}
}

// Allocate returns a free node handle, or base.InvalidNodeID if none is
// available.
func (f *Freelist) Allocate() base.NodeID {
	if len(f.stack) == 0 {
		return base.InvalidNodeID
	}

	id := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	delete(f.freed, id)
	return id
}

// Free adds a handle to the free list. Freeing InvalidNodeID or a handle
// that is already free is a no-op and reports false.
func (f *Freelist) Free(id base.NodeID) bool {
	if id == base.InvalidNodeID {
		return false
	}
	if _, dup := f.freed[id]; dup {
		return false
	}
	f.freed[id] = struct{}{}
	f.stack = append(f.stack, id)
	return true
}

// Contains reports whether id is currently free.
func (f *Freelist) Contains(id base.NodeID) bool {
	_, ok := f.freed[id]
	return ok
}

// Len returns the number of free handles.
func (f *Freelist) Len() int {
	return len(f.stack)
}
