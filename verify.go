package bptree

import (
	"github.com/cockroachdb/errors"

	"github.com/alexhholmes/bptree/internal/base"
)

// Verify walks the whole tree and checks its structural invariants: key
// order within and across nodes, occupancy bounds, parent handles, the
// per-level sibling chains and the size bookkeeping. It returns an error
// wrapping ErrInvariant describing the first violation found.
func (t *Tree) Verify() error {
	root := t.node(t.root)
	if root == nil {
		return errors.Wrapf(ErrInvariant, "root %s is not a live node", t.root)
	}
	if !root.IsRoot() || root.Left != base.InvalidNodeID || root.Right != base.InvalidNodeID {
		return errors.Wrapf(ErrInvariant, "root %s has parent %s and siblings %s/%s",
			root.ID, root.Parent, root.Left, root.Right)
	}

	v := verifier{t: t}
	if err := v.visit(root, 0, nil, nil); err != nil {
		return err
	}
	if err := v.checkChains(); err != nil {
		return err
	}

	if v.entries != t.count {
		return errors.Wrapf(ErrInvariant, "tree counts %d keys, leaves hold %d", t.count, v.entries)
	}
	if v.nodes != t.nodes.Live() {
		return errors.Wrapf(ErrInvariant, "%d nodes reachable, %d allocated", v.nodes, t.nodes.Live())
	}
	return nil
}

type verifier struct {
	t       *Tree
	levels  [][]*base.Node
	entries int
	nodes   int
}

// visit checks n and its subtree. Every key under n must lie in [lo, hi); a
// nil bound is unbounded.
func (v *verifier) visit(n *base.Node, level int, lo, hi *int) error {
	v.nodes++
	if level == len(v.levels) {
		v.levels = append(v.levels, nil)
	}
	v.levels[level] = append(v.levels[level], n)

	for i, key := range n.Keys {
		if i > 0 && n.Keys[i-1] >= key {
			return errors.Wrapf(ErrInvariant, "node %s: keys %v not strictly ascending", n.ID, n.Keys)
		}
		if (lo != nil && key < *lo) || (hi != nil && key >= *hi) {
			return errors.Wrapf(ErrInvariant, "node %s: key %d outside its range", n.ID, key)
		}
	}
	if n.IsOverflow(v.t.order) {
		return errors.Wrapf(ErrInvariant, "node %s: size %d above %d", n.ID, n.Size(), v.t.order-1)
	}
	if n.IsDeficient(v.t.order) {
		return errors.Wrapf(ErrInvariant, "node %s: %s of size %d is deficient", n.ID, n.Kind, n.Size())
	}

	switch n.Kind {
	case base.Leaf:
		if level != v.t.depth {
			return errors.Wrapf(ErrInvariant, "leaf %s at level %d, depth is %d", n.ID, level, v.t.depth)
		}
		if len(n.Values) != n.Size() {
			return errors.Wrapf(ErrInvariant, "leaf %s: %d keys, %d values", n.ID, n.Size(), len(n.Values))
		}
		v.entries += n.Size()
		return nil

	case base.Internal:
		if len(n.Children) != n.Size()+1 {
			return errors.Wrapf(ErrInvariant, "node %s: %d separators, %d children",
				n.ID, n.Size(), len(n.Children))
		}
		for i, id := range n.Children {
			child := v.t.node(id)
			if child == nil {
				return errors.Wrapf(ErrInvariant, "node %s: child %s is not live", n.ID, id)
			}
			if child.Parent != n.ID {
				return errors.Wrapf(ErrInvariant, "node %s: child %s names %s as parent",
					n.ID, id, child.Parent)
			}
			childLo, childHi := lo, hi
			if i > 0 {
				childLo = &n.Keys[i-1]
			}
			if i < n.Size() {
				childHi = &n.Keys[i]
			}
			if err := v.visit(child, level+1, childLo, childHi); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.Wrapf(ErrInvariant, "node %s has kind %s", n.ID, n.Kind)
}

// checkChains compares each level's sibling chain against the left-to-right
// order the depth-first walk found.
func (v *verifier) checkChains() error {
	for level, nodes := range v.levels {
		for i, n := range nodes {
			want := base.InvalidNodeID
			if i > 0 {
				want = nodes[i-1].ID
			}
			if n.Left != want {
				return errors.Wrapf(ErrInvariant, "level %d: node %s has left sibling %s, want %s",
					level, n.ID, n.Left, want)
			}
			want = base.InvalidNodeID
			if i+1 < len(nodes) {
				want = nodes[i+1].ID
			}
			if n.Right != want {
				return errors.Wrapf(ErrInvariant, "level %d: node %s has right sibling %s, want %s",
					level, n.ID, n.Right, want)
			}
		}
	}
	return nil
}
