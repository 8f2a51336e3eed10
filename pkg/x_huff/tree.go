package x_huff

import "container/heap"

//---------------------
// Tree nodes
//---------------------

// Node is either a leaf {Symbol, Weight} or an internal node
// {Weight, Left, Right}. Seq is the creation order and breaks weight ties.
type Node struct {
	Symbol Symbol
	Weight uint64
	Seq    uint32
	Left   *Node
	Right  *Node
}

// IsLeaf reports whether n carries a symbol.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Depth returns the length of the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

// Leaves returns the number of leaves under n.
func (n *Node) Leaves() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

//---------------------
// Priority queue
//---------------------

// nodeQueue is a min-heap ordered by (Weight, Seq).
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].Weight != q[j].Weight {
		return q[i].Weight < q[j].Weight
	}
	return q[i].Seq < q[j].Seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*Node)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

//---------------------
// Builder
//---------------------

// BuildTree builds the Huffman tree for freq. Leaves are numbered in ascending
// symbol order; every merge takes the two smallest nodes, the first becoming
// the left child. A single-symbol map yields an internal root whose only
// child is the leaf on the left, so the symbol gets a one-bit code.
func BuildTree(freq FrequencyMap) (*Node, error) {
	if len(freq) == 0 {
		return nil, ErrEmptyInput
	}

	var seq uint32
	q := make(nodeQueue, 0, len(freq))
	for _, s := range freq.Symbols() {
		q = append(q, &Node{Symbol: s, Weight: freq[s], Seq: seq})
		seq++
	}
	heap.Init(&q)

	if q.Len() == 1 {
		leaf := heap.Pop(&q).(*Node)
		return &Node{Weight: leaf.Weight, Seq: seq, Left: leaf}, nil
	}

	for q.Len() > 1 {
		left := heap.Pop(&q).(*Node)
		right := heap.Pop(&q).(*Node)
		heap.Push(&q, &Node{
			Weight: left.Weight + right.Weight,
			Seq:    seq,
			Left:   left,
			Right:  right,
		})
		seq++
	}
	return heap.Pop(&q).(*Node), nil
}
