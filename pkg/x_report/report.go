// Package x_report turns an encoding result into a sorted code listing,
// size statistics and a human-readable or JSON report.
package x_report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/icza/bitio"
	"github.com/rskv-p/huff/pkg/x_huff"
)

// DefaultDumpBytes is how many packed bytes the binary dump shows by default.
const DefaultDumpBytes = 8

// Entry is one line of the code listing.
type Entry struct {
	Symbol x_huff.Symbol `json:"symbol"`
	Label  string        `json:"label"`
	Code   string        `json:"code"`
	Count  uint64        `json:"count"`
}

// Report is the peripheral view of one encoding run. It never contains the
// tree, only the listing and the numbers.
type Report struct {
	Codes []Entry `json:"codes"`
	Stats Stats   `json:"stats"`
	Dump  string  `json:"dump"`
}

// Build assembles the report for data and its encoding result.
func Build(data []byte, res *x_huff.Result, dumpBytes int) Report {
	entries := SortCodes(res.Codes)
	for i := range entries {
		entries[i].Count = res.Frequencies[entries[i].Symbol]
	}
	return Report{
		Codes: entries,
		Stats: NewStats(data, res),
		Dump:  BinaryDump(res.Packed, dumpBytes),
	}
}

// SortCodes lists the table ordered by code length, then by symbol.
func SortCodes(table x_huff.CodeTable) []Entry {
	out := make([]Entry, 0, len(table))
	for s, c := range table {
		out = append(out, Entry{Symbol: s, Label: SymbolLabel(s), Code: string(c)})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Code) != len(out[j].Code) {
			return len(out[i].Code) < len(out[j].Code)
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// SymbolLabel renders a symbol for display.
func SymbolLabel(s x_huff.Symbol) string {
	switch {
	case s == ' ':
		return "[Space]"
	case s > ' ' && s < 0x7f:
		return string(rune(s))
	default:
		return fmt.Sprintf("0x%02X", s)
	}
}

// BinaryDump renders the first n bytes of the packed buffer as groups of
// eight binary digits separated by spaces.
func BinaryDump(buf x_huff.PackedBuffer, n int) string {
	if n <= 0 || len(buf.Bytes) == 0 {
		return ""
	}
	if n > len(buf.Bytes) {
		n = len(buf.Bytes)
	}

	r := bitio.NewReader(bytes.NewReader(buf.Bytes[:n]))
	groups := make([]string, 0, n)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.Reset()
		for j := 0; j < 8; j++ {
			bit, err := r.ReadBool()
			if err != nil {
				return strings.Join(groups, " ")
			}
			if bit {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		groups = append(groups, sb.String())
	}
	return strings.Join(groups, " ")
}
