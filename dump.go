package bptree

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alexhholmes/bptree/internal/base"
)

// Dump renders the tree level by level, root first. See DumpTo.
func (t *Tree) Dump() string {
	var sb strings.Builder
	_ = t.DumpTo(&sb)
	return sb.String()
}

// DumpTo writes one line per node, level by level from the root down,
// following each level's sibling chain. Lines for internal nodes start with
// "internal" and list separators and children; lines for leaves start with
// "leaf" and list key:value entries. Every line carries the node's handle,
// size, parent and siblings, with "-" for none.
func (t *Tree) DumpTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	level := 0
	for head := t.node(t.root); head != nil; level++ {
		fmt.Fprintf(bw, "level %d\n", level)
		for n := head; n != nil; n = t.node(n.Right) {
			writeNode(bw, n)
		}
		if head.IsLeaf() {
			break
		}
		head = t.node(head.Children[0])
	}
	return bw.Flush()
}

func writeNode(w io.Writer, n *base.Node) {
	fmt.Fprintf(w, "%s %s size=%d parent=%s left=%s right=%s", n.Kind, n.ID, n.Size(),
		n.Parent, n.Left, n.Right)
	if n.IsLeaf() {
		io.WriteString(w, " entries=[")
		for i, key := range n.Keys {
			if i > 0 {
				io.WriteString(w, " ")
			}
			fmt.Fprintf(w, "%d:%d", key, n.Values[i])
		}
		io.WriteString(w, "]\n")
		return
	}
	fmt.Fprintf(w, " keys=%v children=%v\n", n.Keys, n.Children)
}
