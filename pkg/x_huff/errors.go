package x_huff

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput = errors.New("huff: empty input")
	ErrPacking    = errors.New("huff: symbol missing from code table")
)

// PackingError reports the first input byte that has no usable code.
type PackingError struct {
	Symbol Symbol // offending byte
	Offset int    // position in the packed input
}

func (e *PackingError) Error() string {
	return fmt.Sprintf("%s: 0x%02x at offset %d", ErrPacking, e.Symbol, e.Offset)
}

// Is makes errors.Is(err, ErrPacking) match.
func (e *PackingError) Is(target error) bool {
	return target == ErrPacking
}
