package bptree

import (
	"github.com/cockroachdb/errors"

	"github.com/alexhholmes/bptree/internal/algo"
	"github.com/alexhholmes/bptree/internal/base"
)

// Remove deletes key from the tree. It returns ErrKeyNotFound when the key is
// absent and ErrEmptyTree, which also matches ErrKeyNotFound, when the tree
// holds no keys at all.
//
// Any other error means an internal consistency check failed while
// rebalancing; it satisfies errors.HasAssertionFailure.
func (t *Tree) Remove(key int) error {
	leaf := t.findLeaf(key)
	if leaf.Size() == 0 {
		t.log.Warn("remove from an empty tree", "key", key)
		return ErrEmptyTree
	}

	pos, found := algo.FindKey(leaf.Keys, key)
	if !found {
		return ErrKeyNotFound
	}

	leaf.RemoveEntry(pos)
	t.count--

	// A root leaf has no lower bound.
	if !leaf.IsDeficient(t.order) {
		return nil
	}
	if err := t.rebalance(leaf); err != nil {
		return t.abort("remove", err)
	}
	return nil
}

// rebalance restores the occupancy of a deficient node, then of each
// ancestor a merge leaves deficient, bottom-up.
func (t *Tree) rebalance(n *base.Node) error {
	for n != nil {
		next, err := t.borrowOrMerge(n)
		if err != nil {
			return err
		}
		n = next
	}
	return nil
}

// borrowOrMerge fixes a deficient non-root node. The left sibling is
// preferred: borrow its largest entry if it can spare one, else merge into
// it. A node without a left sibling is the leftmost of its level and turns to
// its right sibling instead.
//
// It returns the parent when a merge left the parent deficient.
func (t *Tree) borrowOrMerge(n *base.Node) (*base.Node, error) {
	if left := t.node(n.Left); left != nil {
		if left.HasSlack(t.order) {
			return nil, t.borrowFromLeft(n, left)
		}
		return t.mergeIntoLeft(n, left)
	}

	right := t.node(n.Right)
	if right == nil {
		return nil, errors.AssertionFailedf("rebalance: deficient node %s has no siblings", n.ID)
	}
	if right.HasSlack(t.order) {
		return nil, t.borrowFromRight(n, right)
	}
	return t.mergeIntoRight(n, right)
}

// borrowFromLeft moves the largest entry (or the sentinel child) of left to
// the front of n and corrects the separator that divides their subtrees.
func (t *Tree) borrowFromLeft(n, left *base.Node) error {
	var boundary int
	if n.IsLeaf() {
		key, value := left.RemoveEntry(left.Size() - 1)
		n.InsertEntry(0, key, value)
		boundary = key
	} else {
		child := t.node(left.PopBack())
		n.PushFront(child.ID, t.subtreeMin(t.node(n.Children[0])))
		child.Parent = n.ID
		boundary = t.subtreeMin(child)
	}

	ancestor, idx, err := t.boundarySeparator(left, n)
	if err != nil {
		return err
	}
	ancestor.Keys[idx] = boundary

	t.log.Debug("borrow from left", "node", n.ID, "sibling", left.ID,
		"ancestor", ancestor.ID, "separator", boundary)
	return nil
}

// borrowFromRight moves the smallest entry (or first child) of right to the
// end of n. n is the leftmost node of its level, so it shares its parent with
// right and only that parent's separator changes.
func (t *Tree) borrowFromRight(n, right *base.Node) error {
	parent, idx, err := t.sharedParent(n, right)
	if err != nil {
		return err
	}

	if n.IsLeaf() {
		key, value := right.RemoveEntry(0)
		n.InsertEntry(n.Size(), key, value)
	} else {
		child := t.node(right.PopFront())
		n.PushBack(t.subtreeMin(child), child.ID)
		child.Parent = n.ID
	}

	parent.Keys[idx] = t.subtreeMin(right)

	t.log.Debug("borrow from right", "node", n.ID, "sibling", right.ID,
		"parent", parent.ID, "separator", parent.Keys[idx])
	return nil
}

// mergeIntoLeft appends n's contents onto left and discards n.
//
// The separator bounding left's subtree in the first common ancestor is then
// repaired: when n was the last child of its parent, removing n's slot makes
// left the sentinel child and there is nothing to update; otherwise the
// separator becomes the smallest key of n's former right sibling.
func (t *Tree) mergeIntoLeft(n, left *base.Node) (*base.Node, error) {
	parent := t.node(n.Parent)
	idx := parent.ChildIndex(n.ID)
	if idx < 0 {
		return nil, errors.AssertionFailedf("merge: node %s is not a child of %s", n.ID, parent.ID)
	}

	// Locate the separator while n is still linked into the tree.
	ancestor, sepIdx, err := t.boundarySeparator(left, n)
	if err != nil {
		return nil, err
	}
	hasRight := idx < parent.Size()
	var rightMin int
	if hasRight {
		rightMin = t.subtreeMin(t.node(parent.Children[idx+1]))
	}

	if n.IsLeaf() {
		left.Keys = append(left.Keys, n.Keys...)
		left.Values = append(left.Values, n.Values...)
	} else {
		left.PushBack(t.subtreeMin(t.node(n.Children[0])), n.Children[0])
		for i, key := range n.Keys {
			left.PushBack(key, n.Children[i+1])
		}
		t.adopt(left, n.Children)
	}

	parent.RemoveSlot(idx)
	if hasRight {
		ancestor.Keys[sepIdx] = rightMin
	}

	t.log.Debug("merge into left", "node", n.ID, "sibling", left.ID, "parent", parent.ID)
	if err := t.discard(n); err != nil {
		return nil, err
	}
	return t.afterMerge(parent), nil
}

// mergeIntoRight prepends n's contents onto right and discards n. n is the
// leftmost node of its level and shares its parent with right; right simply
// takes over n's slot, so no ancestor separator changes.
func (t *Tree) mergeIntoRight(n, right *base.Node) (*base.Node, error) {
	parent, idx, err := t.sharedParent(n, right)
	if err != nil {
		return nil, err
	}

	if n.IsLeaf() {
		right.Keys = algo.Prepend(right.Keys, n.Keys...)
		right.Values = algo.Prepend(right.Values, n.Values...)
	} else {
		keys := append(n.Keys, t.subtreeMin(t.node(right.Children[0])))
		right.Keys = algo.Prepend(right.Keys, keys...)
		right.Children = algo.Prepend(right.Children, n.Children...)
		t.adopt(right, n.Children)
	}

	parent.RemoveSlot(idx)

	t.log.Debug("merge into right", "node", n.ID, "sibling", right.ID, "parent", parent.ID)
	if err := t.discard(n); err != nil {
		return nil, err
	}
	return t.afterMerge(parent), nil
}

// afterMerge decides what a merge that removed one of parent's slots leaves
// to do: collapse a root reduced to a single child, or continue rebalancing
// at a deficient parent.
func (t *Tree) afterMerge(parent *base.Node) *base.Node {
	if parent.IsRoot() {
		if parent.Size() < 1 {
			t.collapseRoot(parent)
		}
		return nil
	}
	if parent.IsDeficient(t.order) {
		return parent
	}
	return nil
}

// collapseRoot replaces an internal root that has a single child with that
// child, removing one level from the tree.
func (t *Tree) collapseRoot(root *base.Node) {
	child := t.node(root.Children[0])
	child.Parent = base.InvalidNodeID
	t.root = child.ID
	t.depth--

	// The old root has no siblings and its only child no longer refers to it.
	_ = t.nodes.Release(root.ID)
	t.log.Debug("collapse root", "root", child.ID, "depth", t.depth)
}

// boundarySeparator walks up from two adjacent nodes of one level in
// lockstep until their parents coincide. That first common ancestor holds the
// separator dividing left's subtree from right's; it returns the ancestor and
// the separator's index.
func (t *Tree) boundarySeparator(left, right *base.Node) (*base.Node, int, error) {
	l, r := left, right
	for l.Parent != r.Parent {
		l, r = t.node(l.Parent), t.node(r.Parent)
		if l == nil || r == nil {
			return nil, 0, errors.AssertionFailedf("separator: nodes %s and %s share no ancestor",
				left.ID, right.ID)
		}
	}

	ancestor := t.node(l.Parent)
	if ancestor == nil {
		return nil, 0, errors.AssertionFailedf("separator: nodes %s and %s are both roots", left.ID, right.ID)
	}
	idx := ancestor.ChildIndex(l.ID)
	if idx < 0 || idx >= ancestor.Size() {
		return nil, 0, errors.AssertionFailedf("separator: node %s has no separator after slot %d in %s",
			l.ID, idx, ancestor.ID)
	}
	return ancestor, idx, nil
}

// sharedParent returns the parent of n and n's slot in it, asserting that
// right is the very next child of the same parent. Borrowing from or merging
// into a right sibling relies on this.
func (t *Tree) sharedParent(n, right *base.Node) (*base.Node, int, error) {
	parent := t.node(n.Parent)
	if parent == nil || right.Parent != n.Parent {
		return nil, 0, errors.AssertionFailedf("node %s and its right sibling %s do not share a parent",
			n.ID, right.ID)
	}
	idx := parent.ChildIndex(n.ID)
	if idx < 0 || idx+1 >= len(parent.Children) || parent.Children[idx+1] != right.ID {
		return nil, 0, errors.AssertionFailedf("node %s is not followed by %s in parent %s",
			n.ID, right.ID, parent.ID)
	}
	return parent, idx, nil
}

// adopt points the parent handle of every child at n.
func (t *Tree) adopt(n *base.Node, children []base.NodeID) {
	for _, id := range children {
		t.node(id).Parent = n.ID
	}
}

// discard unlinks n from its level and releases it.
func (t *Tree) discard(n *base.Node) error {
	if prev := t.node(n.Left); prev != nil {
		prev.Right = n.Right
	}
	if next := t.node(n.Right); next != nil {
		next.Left = n.Left
	}
	return t.nodes.Release(n.ID)
}
