// Package arena owns the lifetime of b+ tree nodes. Nodes are addressed by
// stable integer handles; parent, sibling and child links elsewhere are plain
// handles that never keep a node alive.
package arena

import (
	"github.com/cockroachdb/errors"

	"github.com/alexhholmes/bptree/internal/base"
	"github.com/alexhholmes/bptree/internal/freelist"
)

// Arena stores the nodes of one tree.
type Arena struct {
	order int
	nodes []*base.Node // indexed by NodeID; slot 0 is never used
	free  *freelist.Freelist
	live  int
}

// New creates an empty arena for a tree of the given order.
func New(order int) *Arena {
	return &Arena{
		order: order,
		nodes: make([]*base.Node, 1, 16),
		free:  freelist.New(),
	}
}

// NewLeaf allocates an empty leaf.
func (a *Arena) NewLeaf() *base.Node {
	return a.alloc(base.Leaf)
}

// NewInternal allocates an internal node with no separators and no children.
func (a *Arena) NewInternal() *base.Node {
	return a.alloc(base.Internal)
}

func (a *Arena) alloc(kind base.Kind) *base.Node {
	id := a.free.Allocate()
	if id == base.InvalidNodeID {
		id = base.NodeID(len(a.nodes))
		a.nodes = append(a.nodes, &base.Node{})
	}

	n := a.nodes[id]
	n.Init(id, kind, a.order)
	a.live++
	return n
}

// Get returns the node for id, or nil when id is InvalidNodeID or refers to
// a released slot.
func (a *Arena) Get(id base.NodeID) *base.Node {
	if id == base.InvalidNodeID || int(id) >= len(a.nodes) {
		return nil
	}
	n := a.nodes[id]
	if n.Kind == base.Free {
		return nil
	}
	return n
}

// Release returns the node's slot to the free list. The caller must already
// have removed every link to it.
func (a *Arena) Release(id base.NodeID) error {
	n := a.Get(id)
	if n == nil {
		return errors.Wrapf(base.ErrInvalidNode, "release of node %s", id)
	}
	n.Reset()
	a.free.Free(id)
	a.live--
	return nil
}

// Live returns the number of allocated nodes.
func (a *Arena) Live() int {
	return a.live
}

// Free returns the number of released slots waiting for reuse.
func (a *Arena) Free() int {
	return a.free.Len()
}
