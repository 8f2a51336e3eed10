package x_report

import (
	"github.com/klauspost/compress"
	"github.com/klauspost/compress/huff0"
	"github.com/rskv-p/huff/pkg/x_huff"
)

// Stats holds the size figures of one run.
type Stats struct {
	OriginalBytes int     `json:"original_bytes"`
	OriginalBits  uint64  `json:"original_bits"`
	EncodedBits   uint64  `json:"encoded_bits"`
	EncodedBytes  int     `json:"encoded_bytes"`
	Distinct      int     `json:"distinct"`
	MaxCodeLen    int     `json:"max_code_len"`
	Ratio         float64 `json:"ratio"`
	EntropyBits   int     `json:"entropy_bits"` // order-0 Shannon bound
	Huff0Bytes    int     `json:"huff0_bytes"`  // -1 when huff0 declines the input
}

// NewStats computes the statistics for data and its encoding.
func NewStats(data []byte, res *x_huff.Result) Stats {
	st := Stats{
		OriginalBytes: len(data),
		OriginalBits:  uint64(len(data)) * 8,
		EncodedBits:   res.Packed.Bits,
		EncodedBytes:  res.Packed.ByteLen(),
		Distinct:      len(res.Codes),
		MaxCodeLen:    res.Root.Depth(),
		Ratio:         Ratio(res.Packed.Bits, len(data)),
		EntropyBits:   compress.ShannonEntropyBits(data),
		Huff0Bytes:    huff0Size(data),
	}
	return st
}

// Ratio returns encodedBits / (originalBytes * 8), or 0 for empty input.
func Ratio(encodedBits uint64, originalBytes int) float64 {
	if originalBytes == 0 {
		return 0
	}
	return float64(encodedBits) / float64(uint64(originalBytes)*8)
}

// huff0Size reports the size of a single-stream huff0 block for data,
// table included.
func huff0Size(data []byte) int {
	var s huff0.Scratch
	s.Reuse = huff0.ReusePolicyNone
	out, _, err := huff0.Compress1X(data, &s)
	if err != nil {
		return -1
	}
	return len(out)
}
