package x_huff

// GenerateCodes walks the tree and records the root-to-leaf path of every
// leaf: '0' for a left edge, '1' for a right edge.
func GenerateCodes(root *Node) CodeTable {
	table := make(CodeTable)
	if root == nil {
		return table
	}

	type frame struct {
		node *Node
		path string
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.IsLeaf() {
			table[f.node.Symbol] = Code(f.path)
			continue
		}
		// right first so the left subtree is visited first
		if f.node.Right != nil {
			stack = append(stack, frame{node: f.node.Right, path: f.path + "1"})
		}
		if f.node.Left != nil {
			stack = append(stack, frame{node: f.node.Left, path: f.path + "0"})
		}
	}
	return table
}
