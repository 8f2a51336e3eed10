// Package x_huff builds deterministic Huffman codes for byte streams and packs
// the encoded stream into a dense bit buffer.
package x_huff

import "sort"

//---------------------
// Symbols & frequencies
//---------------------

// Symbol is a single byte value.
type Symbol = byte

// FrequencyMap maps every symbol present in the input to its occurrence count.
// Symbols absent from the input are absent from the map.
type FrequencyMap map[Symbol]uint64

// Symbols returns the present symbols in ascending byte order.
func (f FrequencyMap) Symbols() []Symbol {
	out := make([]Symbol, 0, len(f))
	for s := range f {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total returns the sum of all counts.
func (f FrequencyMap) Total() uint64 {
	var n uint64
	for _, c := range f {
		n += c
	}
	return n
}

//---------------------
// Codes
//---------------------

// Code is a bit string made of '0' and '1' characters.
type Code string

// Len returns the number of bits in the code.
func (c Code) Len() int { return len(c) }

// CodeTable maps each present symbol to its code.
type CodeTable map[Symbol]Code

//---------------------
// Packed output
//---------------------

// PackedBuffer holds the packed bit stream. Bits is the exact number of
// logical bits; the low-order bits of the last byte beyond Bits are zero.
type PackedBuffer struct {
	Bytes []byte `json:"bytes"`
	Bits  uint64 `json:"bits"`
}

// ByteLen returns the number of bytes in the buffer.
func (p PackedBuffer) ByteLen() int { return len(p.Bytes) }
