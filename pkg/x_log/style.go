package x_log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

//
// ---------- IBM Carbon Colors ----------

const (
	ColorTeal40    = "#3ddbd9"
	ColorBlue60    = "#4589ff"
	ColorBlue40    = "#78a9ff"
	ColorBlue70    = "#0043ce"
	ColorBlueBase  = "#0f62fe"
	ColorRed60     = "#da1e28"
	ColorRedStrong = "#ff0000"
	ColorOrange40  = "#ff832b"
	ColorGray60    = "#8d8d8d"
	ColorGray10    = "#f4f4f4"
)

//
// ---------- Styles Definition ----------

// Styles defines the console formatting of log entries.
type Styles struct {
	Out             io.Writer                        // output target, stdout when nil
	NoColor         bool                             // never style
	ForceColor      bool                             // style even when Out is not a terminal
	Timestamp       lipgloss.Style                   // timestamps
	Levels          map[zerolog.Level]lipgloss.Style // level badges
	Keys            map[string]lipgloss.Style        // known field keys
	DefaultKeyStyle lipgloss.Style                   // fallback for unknown keys
}

// DefaultStylesByName returns a theme by name ("dark", "light").
func DefaultStylesByName(name string) *Styles {
	switch strings.ToLower(name) {
	case "light":
		return DefaultStylesLight()
	default:
		return DefaultStylesDark()
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

//
// ---------- Console Formatter ----------

// ConsoleWriterWithStyles builds a zerolog.ConsoleWriter rendering levels,
// keys and values with styles.
func ConsoleWriterWithStyles(styles *Styles) zerolog.ConsoleWriter {
	out := styles.Out
	if out == nil {
		out = os.Stdout
	}
	plain := styles.NoColor || (!styles.ForceColor && !IsTerminal(out))
	render := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    plain,
		TimeFormat: "01-02 15:04:05",

		FormatLevel: func(i any) string {
			name := strings.ToLower(fmt.Sprint(i))
			badge := strings.ToUpper(name)
			if len(badge) > 3 {
				badge = badge[:3]
			}
			lvl, err := zerolog.ParseLevel(name)
			style, ok := styles.Levels[lvl]
			if err != nil || !ok {
				return badge
			}
			return render(style, badge)
		},

		FormatTimestamp: func(i any) string {
			return render(styles.Timestamp, fmt.Sprintf("[%s]", i))
		},

		FormatFieldName: func(i any) string {
			key := fmt.Sprint(i)
			style, ok := styles.Keys[key]
			if !ok {
				style = styles.DefaultKeyStyle
			}
			return render(style, key) + "="
		},

		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return fmt.Sprint(i)
		},
	}
}

//
// ---------- Themes ----------

func levelStyles(info string) map[zerolog.Level]lipgloss.Style {
	badge := func(bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(bg)).
			Padding(0, 1)
	}
	return map[zerolog.Level]lipgloss.Style{
		zerolog.TraceLevel: badge(ColorGray60),
		zerolog.DebugLevel: badge(ColorTeal40),
		zerolog.InfoLevel:  badge(info),
		zerolog.WarnLevel:  badge(ColorOrange40),
		zerolog.ErrorLevel: badge(ColorRed60),
		zerolog.FatalLevel: badge(ColorRedStrong),
		zerolog.PanicLevel: badge(ColorRedStrong),
	}
}

func keyStyles(color string) map[string]lipgloss.Style {
	k := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return map[string]lipgloss.Style{
		"module":  k,
		"run":     k,
		"digest":  k,
		"subject": k,
		"addr":    k,
		"file":    k,
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
	}
}

// DefaultStylesDark is the theme for dark terminals.
func DefaultStylesDark() *Styles {
	return &Styles{
		Timestamp:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60)),
		DefaultKeyStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray10)),
		Levels:          levelStyles(ColorBlue60),
		Keys:            keyStyles(ColorBlue40),
	}
}

// DefaultStylesLight is the theme for light terminals.
func DefaultStylesLight() *Styles {
	return &Styles{
		Timestamp:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60)),
		DefaultKeyStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60)),
		Levels:          levelStyles(ColorBlue70),
		Keys:            keyStyles(ColorBlueBase),
	}
}
