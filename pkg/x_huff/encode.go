package x_huff

// Result carries every stage of one encoding run. It is never mutated after
// Encode returns.
type Result struct {
	Frequencies FrequencyMap
	Root        *Node
	Codes       CodeTable
	Packed      PackedBuffer
}

// Encode counts, builds, generates codes and packs data in one pass over the
// same bytes.
func Encode(data []byte) (*Result, error) {
	freq := Count(data)
	root, err := BuildTree(freq)
	if err != nil {
		return nil, err
	}
	codes := GenerateCodes(root)
	packed, err := Pack(data, codes)
	if err != nil {
		return nil, err
	}
	return &Result{
		Frequencies: freq,
		Root:        root,
		Codes:       codes,
		Packed:      packed,
	}, nil
}
