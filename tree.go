// Package bptree implements a sequential in-memory B+ tree over integer keys.
//
// Keys and values are ints. Leaves hold the key/value pairs and are chained
// left to right; every level of internal nodes is chained the same way.
// Inserting into a full leaf splits it and may split ancestors up to a new
// root. Removing from a leaf that drops below half occupancy borrows from or
// merges with a sibling, which may cascade up to a root collapse.
//
// A Tree is not safe for concurrent use. Callers that share a tree between
// goroutines must serialize access themselves.
package bptree

import (
	"github.com/cockroachdb/errors"

	"github.com/alexhholmes/bptree/internal/algo"
	"github.com/alexhholmes/bptree/internal/arena"
	"github.com/alexhholmes/bptree/internal/base"
)

// PutResult tells whether Insert added a key or replaced its value.
type PutResult int

const (
	// Inserted means the key was not present and has been added.
	Inserted PutResult = iota
	// Updated means the key was present and its value was overwritten.
	Updated
)

func (r PutResult) String() string {
	if r == Updated {
		return "updated"
	}
	return "inserted"
}

// Tree is a B+ tree mapping int keys to int values.
type Tree struct {
	order int
	log   Logger

	nodes *arena.Arena
	root  base.NodeID
	depth int // Number of internal levels above the leaves.
	count int // Number of key/value pairs.
}

// New creates an empty tree: a single empty leaf as root, depth 0.
func New(options ...Option) (*Tree, error) {
	opts := DefaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if opts.order < MinOrder {
		return nil, errors.Wrapf(ErrInvalidOrder, "order %d", opts.order)
	}

	t := &Tree{
		order: opts.order,
		log:   opts.logger,
		nodes: arena.New(opts.order),
	}
	t.root = t.nodes.NewLeaf().ID
	return t, nil
}

// Order returns the branching factor.
func (t *Tree) Order() int {
	return t.order
}

// Depth returns the number of internal levels; a tree whose root is a leaf
// has depth 0.
func (t *Tree) Depth() int {
	return t.depth
}

// Len returns the number of keys stored.
func (t *Tree) Len() int {
	return t.count
}

// NodeCount returns the number of live nodes, leaves included.
func (t *Tree) NodeCount() int {
	return t.nodes.Live()
}

// Search returns the value stored under key.
func (t *Tree) Search(key int) (int, bool) {
	leaf := t.findLeaf(key)
	if pos, found := algo.FindKey(leaf.Keys, key); found {
		return leaf.Values[pos], true
	}
	return 0, false
}

func (t *Tree) node(id base.NodeID) *base.Node {
	return t.nodes.Get(id)
}

// findLeaf descends from the root to the leaf whose range contains key.
func (t *Tree) findLeaf(key int) *base.Node {
	n := t.node(t.root)
	for !n.IsLeaf() {
		n = t.node(n.Children[algo.FindChildIndex(n.Keys, key)])
	}
	return n
}

// subtreeMin returns the smallest key stored under n, which must not be an
// empty leaf.
func (t *Tree) subtreeMin(n *base.Node) int {
	for !n.IsLeaf() {
		n = t.node(n.Children[0])
	}
	return n.Keys[0]
}

// firstLeaf returns the leftmost leaf, the head of the leaf chain.
func (t *Tree) firstLeaf() *base.Node {
	n := t.node(t.root)
	for !n.IsLeaf() {
		n = t.node(n.Children[0])
	}
	return n
}

// abort logs an error that stopped an operation part way and returns it.
func (t *Tree) abort(op string, err error) error {
	t.log.Error("tree operation aborted", "op", op, "error", err)
	return err
}
