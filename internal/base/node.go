package base

import (
	"fmt"

	"github.com/alexhholmes/bptree/internal/algo"
)

// NodeID is a stable handle into the node arena. The zero value refers to no
// node and is used for absent parent and sibling links.
type NodeID uint32

// InvalidNodeID is the handle of no node.
const InvalidNodeID NodeID = 0

func (id NodeID) String() string {
	if id == InvalidNodeID {
		return "-"
	}
	return fmt.Sprintf("#%d", uint32(id))
}

// Kind tags the two node variants.
type Kind uint8

const (
	// Free marks an arena slot that currently holds no node.
	Free Kind = iota
	Leaf
	Internal
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Internal:
		return "internal"
	default:
		return "free"
	}
}

// Node represents a b+ tree node.
//
// Leaves keep Keys[i] -> Values[i]. Internal nodes keep separators in Keys
// and len(Keys)+1 references in Children; Children[i] covers keys k with
// Keys[i-1] <= k < Keys[i]. The last child is the sentinel reference whose
// separator is +inf and is never stored, so Size counts real separators only.
//
// Buffers are allocated with one slot more than a balanced node may hold so a
// node can overflow by one entry before it is split.
type Node struct {
	ID     NodeID
	Kind   Kind
	Parent NodeID
	Left   NodeID // left sibling on the same level
	Right  NodeID // right sibling on the same level

	Keys     []int
	Values   []int    // Leaf only
	Children []NodeID // Internal only
}

// Init prepares n to hold a fresh node of the given kind for a tree of the
// given order, keeping previously allocated buffers where possible.
func (n *Node) Init(id NodeID, kind Kind, order int) {
	n.ID = id
	n.Kind = kind
	n.Parent = InvalidNodeID
	n.Left = InvalidNodeID
	n.Right = InvalidNodeID

	n.Keys = reuse(n.Keys, order)
	switch kind {
	case Leaf:
		n.Values = reuse(n.Values, order)
		n.Children = n.Children[:0]
	case Internal:
		n.Values = n.Values[:0]
		n.Children = reuse(n.Children, order+1)
	}
}

// Reset clears n so its arena slot can be recycled.
func (n *Node) Reset() {
	n.Kind = Free
	n.Parent = InvalidNodeID
	n.Left = InvalidNodeID
	n.Right = InvalidNodeID
	n.Keys = n.Keys[:0]
	n.Values = n.Values[:0]
	n.Children = n.Children[:0]
}

func reuse[T any](s []T, capacity int) []T {
	if cap(s) >= capacity {
		return s[:0]
	}
	return make([]T, 0, capacity)
}

// Size is the number of entries of a leaf or the number of real separators
// of an internal node.
func (n *Node) Size() int {
	return len(n.Keys)
}

func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

func (n *Node) IsRoot() bool {
	return n.Parent == InvalidNodeID
}

// IsFull reports whether n holds the maximum number of entries a balanced
// node may hold.
func (n *Node) IsFull(order int) bool {
	return n.Size() >= order-1
}

// IsOverflow reports whether n holds more entries than a balanced node may
// hold and must be split.
func (n *Node) IsOverflow(order int) bool {
	return n.Size() > order-1
}

// IsDeficient reports whether n holds fewer entries than the balance
// invariant requires. Leaves need order/2 entries and internal nodes order/2
// children; the root leaf has no lower bound and the root internal node needs
// one separator.
func (n *Node) IsDeficient(order int) bool {
	switch n.Kind {
	case Leaf:
		return !n.IsRoot() && n.Size() < order/2
	case Internal:
		if n.IsRoot() {
			return n.Size() < 1
		}
		return n.Size()+1 < order/2
	}
	return false
}

// IsNearDeficient reports whether n sits exactly at its minimum occupancy
// and therefore cannot give an entry to a sibling.
func (n *Node) IsNearDeficient(order int) bool {
	switch n.Kind {
	case Leaf:
		return n.Size() == order/2
	case Internal:
		if n.IsRoot() {
			return n.Size() == 1
		}
		return n.Size()+1 == order/2
	}
	return false
}

// HasSlack reports whether n can lend an entry to a sibling.
func (n *Node) HasSlack(order int) bool {
	return !n.IsDeficient(order) && !n.IsNearDeficient(order)
}

// ChildIndex returns the position of child in n.Children, or -1.
func (n *Node) ChildIndex(child NodeID) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertEntry places key/value at pos of a leaf.
func (n *Node) InsertEntry(pos, key, value int) {
	n.Keys = algo.InsertAt(n.Keys, pos, key)
	n.Values = algo.InsertAt(n.Values, pos, value)
}

// RemoveEntry removes and returns the entry at pos of a leaf.
func (n *Node) RemoveEntry(pos int) (key, value int) {
	key, value = n.Keys[pos], n.Values[pos]
	n.Keys = algo.RemoveAt(n.Keys, pos)
	n.Values = algo.RemoveAt(n.Values, pos)
	return key, value
}

// InsertSeparator records that the child at idx was split at key: the child
// keeps keys below key and right takes over the range it used to cover from
// key upward.
func (n *Node) InsertSeparator(idx, key int, right NodeID) {
	n.Keys = algo.InsertAt(n.Keys, idx, key)
	n.Children = algo.InsertAt(n.Children, idx+1, right)
}

// RemoveSlot removes the (separator, child) pair at idx. When idx addresses
// the sentinel child the preceding child becomes the new sentinel child.
func (n *Node) RemoveSlot(idx int) {
	switch {
	case idx < n.Size():
		n.Keys = algo.RemoveAt(n.Keys, idx)
	case n.Size() > 0:
		n.Keys = algo.RemoveAt(n.Keys, idx-1)
	}
	n.Children = algo.RemoveAt(n.Children, idx)
}

// PushFront makes child the first child; sep separates it from the former
// first child.
func (n *Node) PushFront(child NodeID, sep int) {
	n.Keys = algo.InsertAt(n.Keys, 0, sep)
	n.Children = algo.InsertAt(n.Children, 0, child)
}

// PushBack makes child the sentinel child; sep separates it from the former
// sentinel child.
func (n *Node) PushBack(sep int, child NodeID) {
	n.Keys = append(n.Keys, sep)
	n.Children = append(n.Children, child)
}

// PopFront detaches and returns the first child.
func (n *Node) PopFront() NodeID {
	child := n.Children[0]
	n.RemoveSlot(0)
	return child
}

// PopBack detaches and returns the sentinel child.
func (n *Node) PopBack() NodeID {
	child := n.Children[n.Size()]
	n.RemoveSlot(n.Size())
	return child
}
