package x_huff

// Pack encodes data with table. Bits are written most significant first; a
// trailing partial byte is shifted so its valid bits occupy the high-order
// positions. Every byte of data must have a non-empty code in table.
func Pack(data []byte, table CodeTable) (PackedBuffer, error) {
	var (
		out  = make([]byte, 0, len(data)/2+1)
		acc  byte
		fill uint8
		bits uint64
	)

	for i, b := range data {
		code, ok := table[b]
		if !ok || code.Len() == 0 {
			return PackedBuffer{}, &PackingError{Symbol: b, Offset: i}
		}
		for j := 0; j < len(code); j++ {
			acc <<= 1
			if code[j] == '1' {
				acc |= 1
			}
			fill++
			bits++
			if fill == 8 {
				out = append(out, acc)
				acc, fill = 0, 0
			}
		}
	}

	if fill > 0 {
		acc <<= 8 - fill
		out = append(out, acc)
	}
	return PackedBuffer{Bytes: out, Bits: bits}, nil
}
