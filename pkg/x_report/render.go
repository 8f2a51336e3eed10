package x_report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rskv-p/huff/pkg/x_log"
)

// Options controls text rendering.
type Options struct {
	Color     bool // style output with lipgloss
	Baselines bool // print entropy and huff0 reference lines
}

// ColorEnabled reports whether w is a terminal.
func ColorEnabled(w io.Writer) bool {
	return x_log.IsTerminal(w)
}

//---------------------
// Styles
//---------------------

// palette styles report fragments; a plain palette passes text through.
type palette struct {
	plain  bool
	title  lipgloss.Style
	label  lipgloss.Style
	code   lipgloss.Style
	number lipgloss.Style
}

func newPalette(w io.Writer, color bool) *palette {
	if !color {
		return &palette{plain: true}
	}
	r := lipgloss.NewRenderer(w)
	return &palette{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#4589ff")),
		label:  r.NewStyle().Foreground(lipgloss.Color("#78a9ff")),
		code:   r.NewStyle().Foreground(lipgloss.Color("#3ddbd9")),
		number: r.NewStyle().Bold(true),
	}
}

func (p *palette) paint(s lipgloss.Style, v any) string {
	text := fmt.Sprint(v)
	if p.plain {
		return text
	}
	return s.Render(text)
}

//---------------------
// Rendering
//---------------------

// Render writes the text report.
func Render(w io.Writer, rep Report, opts Options) error {
	p := newPalette(w, opts.Color)
	st := rep.Stats

	lines := []string{"", p.paint(p.title, "Character Codes:")}
	for _, e := range rep.Codes {
		label := " " + e.Label
		if e.Label == "[Space]" {
			label = e.Label
		}
		lines = append(lines, p.paint(p.label, label)+": "+p.paint(p.code, e.Code))
	}

	lines = append(lines,
		"",
		p.paint(p.title, fmt.Sprintf("First %d bytes of encoded text in binary: ", dumpGroups(rep.Dump))),
		rep.Dump,
		"",
		fmt.Sprintf("Encoded size: %s bits (%s bytes)", p.paint(p.number, st.EncodedBits), p.paint(p.number, st.EncodedBytes)),
		fmt.Sprintf("Original size: %s bits (%s bytes)", p.paint(p.number, st.OriginalBits), p.paint(p.number, st.OriginalBytes)),
		fmt.Sprintf("Compression ratio: %s", p.paint(p.number, FormatRatio(st.Ratio))),
	)

	if opts.Baselines {
		huff0 := "n/a"
		if st.Huff0Bytes >= 0 {
			huff0 = strconv.Itoa(st.Huff0Bytes) + " bytes"
		}
		lines = append(lines,
			fmt.Sprintf("Entropy bound: %s bits", p.paint(p.number, st.EntropyBits)),
			fmt.Sprintf("huff0 reference: %s", p.paint(p.number, huff0)),
		)
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// FormatRatio prints the ratio with six significant digits.
func FormatRatio(r float64) string {
	return strconv.FormatFloat(r, 'g', 6, 64)
}

func dumpGroups(dump string) int {
	if dump == "" {
		return 0
	}
	return strings.Count(dump, " ") + 1
}
