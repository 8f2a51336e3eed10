package cmd_huff

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/pkg/x_huff"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/pkg/x_report"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
	"github.com/spf13/cobra"
)

type encodeOptions struct {
	text      string
	textSet   bool
	file      string
	sample    bool
	format    string
	dumpBytes int
	baselines bool
	store     bool
	tree      bool
	color     string
}

// EncodeCmd builds a fresh encode command. Batch scripts run one per line.
func EncodeCmd() *cobra.Command {
	var o encodeOptions

	c := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode text and print the code table and statistics",
		Long: "Encode the input given by --text, --file, a file argument or stdin.\n" +
			"Without input on an interactive terminal the built-in sample passage is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				o.file = args[0]
			}
			o.textSet = cmd.Flags().Changed("text")
			return runEncode(cmd, o)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.text, "text", "t", "", "text to encode")
	f.StringVarP(&o.file, "file", "f", "", "file to encode")
	f.BoolVar(&o.sample, "sample", false, "encode the built-in sample passage")
	f.StringVarP(&o.format, "format", "o", "text", "output format: text or json")
	f.IntVarP(&o.dumpBytes, "bytes", "n", 0, "number of packed bytes to dump (default from config)")
	f.BoolVar(&o.baselines, "baselines", false, "print entropy and huff0 reference sizes")
	f.BoolVar(&o.store, "store", false, "record the run in the run store")
	f.BoolVar(&o.tree, "tree", false, "print the code tree after the report")
	f.StringVar(&o.color, "color", "auto", "color output: auto, always or never")
	return c
}

func runEncode(cmd *cobra.Command, o encodeOptions) error {
	if o.format != "text" && o.format != "json" {
		return fmt.Errorf("unknown format %q", o.format)
	}

	input, source, err := readInput(cmd.InOrStdin(), o)
	if err != nil {
		return err
	}

	store := o.store || cmd_app.Config().Store
	svc, closeFn, err := cmd_app.OpenService(store)
	if err != nil {
		return err
	}
	defer closeFn()

	resp, err := svc.Encode(cmd.Context(), huff_api.EncodeRequest{
		Data:      input,
		DumpBytes: o.dumpBytes,
		Store:     store,
		Source:    source,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.format == "json" {
		return x_report.RenderJSON(out, *resp.Report)
	}

	if err := x_report.Render(out, *resp.Report, x_report.Options{
		Color:     colorFor(out, o.color),
		Baselines: o.baselines,
	}); err != nil {
		return err
	}
	if o.tree {
		root, err := x_huff.BuildTree(x_huff.Count(input))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "\nTree:")
		x_huff.Dump(out, root)
	}
	if resp.Stored {
		_, err = fmt.Fprintf(out, "Run: %s\n", resp.ID)
	}
	return err
}

// readInput resolves the input bytes and a short label naming their origin.
// An explicit --text is passed through even when empty.
func readInput(stdin io.Reader, o encodeOptions) ([]byte, string, error) {
	switch {
	case o.textSet || o.text != "":
		return []byte(o.text), "cli:text", nil
	case o.file != "":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return nil, "", fmt.Errorf("read input: %w", err)
		}
		return data, "cli:file", nil
	case o.sample || isTerminal(stdin):
		return []byte(SampleText), "cli:sample", nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, "", errors.New("no input: use --text, --file, --sample or pipe data on stdin")
	}
	return data, "cli:stdin", nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && x_log.IsTerminal(f)
}

func colorFor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return x_report.ColorEnabled(w)
	}
}
