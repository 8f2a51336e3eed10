package x_huff

import (
	"fmt"
	"io"
	"strings"
)

//---------------------
// Tree Dump (Debug)
//---------------------

// Dump writes an indented view of the tree rooted at n, left child first.
func Dump(w io.Writer, n *Node) {
	dump(w, n, 0)
}

func dump(w io.Writer, n *Node, depth int) {
	if n == nil {
		fmt.Fprintln(w, dumpPre(depth)+"EMPTY")
		return
	}
	if n.IsLeaf() {
		fmt.Fprintf(w, "%sLEAF %q Weight: %d Seq: %d\n", dumpPre(depth), string([]byte{n.Symbol}), n.Weight, n.Seq)
		return
	}

	fmt.Fprintf(w, "%sNODE Weight: %d Seq: %d\n", dumpPre(depth), n.Weight, n.Seq)
	depth++
	for _, c := range []*Node{n.Left, n.Right} {
		if c != nil {
			dump(w, c, depth)
		}
	}
}

//---------------------
// Indentation Helper
//---------------------

func dumpPre(depth int) string {
	if depth == 0 {
		return "-- "
	}
	return strings.Repeat("  ", depth) + "|__ "
}
