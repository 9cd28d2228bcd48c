package bptree

import (
	"github.com/cockroachdb/errors"

	"github.com/alexhholmes/bptree/internal/algo"
	"github.com/alexhholmes/bptree/internal/base"
)

// Insert stores value under key. An existing key has its value replaced in
// place and the tree shape is left untouched.
//
// The returned error is only non-nil when an internal consistency check
// failed while splitting; it satisfies errors.HasAssertionFailure.
func (t *Tree) Insert(key, value int) (PutResult, error) {
	leaf := t.findLeaf(key)
	pos, found := algo.FindKey(leaf.Keys, key)
	if found {
		leaf.Values[pos] = value
		return Updated, nil
	}

	// The leaf buffer has a spare slot, so the entry goes in first and the
	// split happens afterwards.
	leaf.InsertEntry(pos, key, value)
	t.count++

	if leaf.IsOverflow(t.order) {
		if err := t.splitLeaf(leaf); err != nil {
			return Inserted, t.abort("insert", err)
		}
	}
	return Inserted, nil
}

// splitLeaf moves the upper half of an overflowing leaf into a new right
// sibling and promotes the new leaf's first key into the parent.
func (t *Tree) splitLeaf(n *base.Node) error {
	if !n.IsLeaf() || !n.IsOverflow(t.order) {
		return errors.AssertionFailedf("split leaf: node %s is a %s of size %d, not an overflowing leaf",
			n.ID, n.Kind, n.Size())
	}

	mid := n.Size() / 2
	right := t.nodes.NewLeaf()
	right.Keys = append(right.Keys, n.Keys[mid:]...)
	right.Values = append(right.Values, n.Values[mid:]...)
	n.Keys = n.Keys[:mid]
	n.Values = n.Values[:mid]

	t.linkRight(n, right)

	separator := right.Keys[0]
	t.log.Debug("split leaf", "node", n.ID, "right", right.ID, "separator", separator)
	return t.parentInsert(n, separator, right)
}

// splitInternal moves the separators above the middle one, and the children
// they bound, into a new right sibling. The middle separator moves up to the
// parent; the new node inherits the sentinel child.
func (t *Tree) splitInternal(n *base.Node) error {
	if n.IsLeaf() || !n.IsOverflow(t.order) {
		return errors.AssertionFailedf("split internal: node %s is a %s of size %d, not an overflowing internal node",
			n.ID, n.Kind, n.Size())
	}

	mid := n.Size() / 2
	separator := n.Keys[mid]

	right := t.nodes.NewInternal()
	right.Keys = append(right.Keys, n.Keys[mid+1:]...)
	right.Children = append(right.Children, n.Children[mid+1:]...)
	n.Keys = n.Keys[:mid]
	n.Children = n.Children[:mid+1]

	for _, id := range right.Children {
		t.node(id).Parent = right.ID
	}

	t.linkRight(n, right)

	t.log.Debug("split internal", "node", n.ID, "right", right.ID, "separator", separator)
	return t.parentInsert(n, separator, right)
}

// parentInsert hooks right, the new upper half of n, into n's parent under
// separator. A root being split gets a new root above it first, which adds a
// level to the tree. The parent is split in turn if it overflows.
func (t *Tree) parentInsert(n *base.Node, separator int, right *base.Node) error {
	var parent *base.Node
	if n.IsRoot() {
		parent = t.nodes.NewInternal()
		parent.Children = append(parent.Children, n.ID)
		t.root = parent.ID
		t.depth++
		t.log.Debug("grow root", "root", parent.ID, "depth", t.depth)
	} else {
		parent = t.node(n.Parent)
	}

	idx := parent.ChildIndex(n.ID)
	if idx < 0 {
		return errors.AssertionFailedf("parent insert: node %s is not a child of %s", n.ID, parent.ID)
	}

	// n keeps the slot bounded by separator; the slot that used to cover
	// keys from separator upward now points at right.
	parent.InsertSeparator(idx, separator, right.ID)
	n.Parent = parent.ID
	right.Parent = parent.ID

	if parent.IsOverflow(t.order) {
		return t.splitInternal(parent)
	}
	return nil
}

// linkRight splices right into n's level immediately after n.
func (t *Tree) linkRight(n, right *base.Node) {
	if next := t.node(n.Right); next != nil {
		next.Left = right.ID
	}
	right.Right = n.Right
	right.Left = n.ID
	n.Right = right.ID
}
