package x_huff_test

import (
	"testing"

	"github.com/rskv-p/huff/pkg/x_huff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkWeights verifies that every internal node weighs the sum of its children.
func checkWeights(t *testing.T, n *x_huff.Node) {
	t.Helper()
	if n == nil || n.IsLeaf() {
		return
	}
	var sum uint64
	if n.Left != nil {
		sum += n.Left.Weight
	}
	if n.Right != nil {
		sum += n.Right.Weight
	}
	assert.Equal(t, sum, n.Weight)
	checkWeights(t, n.Left)
	checkWeights(t, n.Right)
}

func TestBuildTreeEmpty(t *testing.T) {
	root, err := x_huff.BuildTree(x_huff.FrequencyMap{})
	assert.ErrorIs(t, err, x_huff.ErrEmptyInput)
	assert.Nil(t, root)
}

func TestBuildTreeTwoSymbols(t *testing.T) {
	root, err := x_huff.BuildTree(x_huff.FrequencyMap{'a': 3, 'b': 1})
	require.NoError(t, err)

	assert.Equal(t, uint64(4), root.Weight)
	assert.Equal(t, uint32(2), root.Seq)
	require.True(t, root.Left.IsLeaf())
	require.True(t, root.Right.IsLeaf())
	assert.Equal(t, x_huff.Symbol('b'), root.Left.Symbol)
	assert.Equal(t, x_huff.Symbol('a'), root.Right.Symbol)
}

func TestBuildTreeTieBreakBySeq(t *testing.T) {
	// all weights equal: leaves pop in ascending symbol order
	root, err := x_huff.BuildTree(x_huff.FrequencyMap{'c': 1, 'a': 1, 'b': 1})
	require.NoError(t, err)

	// merge #1: a(0) + b(1) -> n3(w2); merge #2: c(2, w1) + n3 -> root
	require.True(t, root.Left.IsLeaf())
	assert.Equal(t, x_huff.Symbol('c'), root.Left.Symbol)
	assert.Equal(t, uint32(3), root.Right.Seq)
	assert.Equal(t, x_huff.Symbol('a'), root.Right.Left.Symbol)
	assert.Equal(t, x_huff.Symbol('b'), root.Right.Right.Symbol)
	assert.Equal(t, uint32(4), root.Seq)
}

func TestBuildTreeInternalTieLosesToOlderLeaf(t *testing.T) {
	// a,b (w1) merge into w2 with seq 4; c,d (w2, seq 2,3) must be taken first
	root, err := x_huff.BuildTree(x_huff.FrequencyMap{'a': 1, 'b': 1, 'c': 2, 'd': 2})
	require.NoError(t, err)

	assert.Equal(t, uint64(6), root.Weight)
	// merge #2 takes c and d, producing w4 seq 5; merge #3 takes ab(w2) then cd(w4)
	assert.Equal(t, uint32(4), root.Left.Seq)
	assert.Equal(t, uint32(5), root.Right.Seq)
	assert.Equal(t, x_huff.Symbol('c'), root.Right.Left.Symbol)
	assert.Equal(t, x_huff.Symbol('d'), root.Right.Right.Symbol)
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	root, err := x_huff.BuildTree(x_huff.FrequencyMap{'z': 4})
	require.NoError(t, err)

	assert.False(t, root.IsLeaf())
	assert.Nil(t, root.Right)
	require.NotNil(t, root.Left)
	assert.Equal(t, x_huff.Symbol('z'), root.Left.Symbol)
	assert.Equal(t, uint64(4), root.Weight)
	assert.Equal(t, 1, root.Depth())
	assert.Equal(t, 1, root.Leaves())
}

func TestBuildTreeWeightConservation(t *testing.T) {
	data := []byte("Once there were brook trouts in the streams in the mountains.")
	freq := x_huff.Count(data)
	root, err := x_huff.BuildTree(freq)
	require.NoError(t, err)

	assert.Equal(t, uint64(len(data)), root.Weight)
	assert.Equal(t, len(freq), root.Leaves())
	checkWeights(t, root)
}

func TestBuildTreeFullAlphabetDepth(t *testing.T) {
	freq := x_huff.FrequencyMap{}
	for i := 0; i < 256; i++ {
		freq[byte(i)] = 1
	}
	root, err := x_huff.BuildTree(freq)
	require.NoError(t, err)
	assert.Equal(t, 8, root.Depth())
	assert.Equal(t, 256, root.Leaves())
}
