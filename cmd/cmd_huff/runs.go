package cmd_huff

import (
	"fmt"
	"io"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/pkg/x_report"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
	"github.com/spf13/cobra"
)

var runsLimit int

// RunsCmd lists stored runs, or shows one when an ID is given.
var RunsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "Show recorded encoding runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := cmd_app.OpenService(true)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			run, err := svc.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRun(out, *run)
			return nil
		}

		runs, err := svc.Runs(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "no runs recorded")
			return nil
		}
		fmt.Fprintf(out, "%-22s  %-20s  %8s  %8s  %s\n", "ID", "CREATED", "BYTES", "BITS", "RATIO")
		for _, r := range runs {
			fmt.Fprintf(out, "%-22s  %-20s  %8d  %8d  %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Bytes, r.Bits, x_report.FormatRatio(r.Ratio))
		}
		return nil
	},
}

func init() {
	RunsCmd.Flags().IntVarP(&runsLimit, "limit", "l", 0, "maximum runs to list (default from config)")
}

func printRun(w io.Writer, r huff_api.RunInfo) {
	fmt.Fprintf(w, "ID:         %s\n", r.ID)
	fmt.Fprintf(w, "Created:    %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Source:     %s\n", r.Source)
	fmt.Fprintf(w, "Digest:     %s\n", r.Digest)
	fmt.Fprintf(w, "Bytes:      %d\n", r.Bytes)
	fmt.Fprintf(w, "Bits:       %d\n", r.Bits)
	fmt.Fprintf(w, "Symbols:    %d\n", r.Distinct)
	fmt.Fprintf(w, "Longest:    %d\n", r.MaxCodeLen)
	fmt.Fprintf(w, "Ratio:      %s\n", x_report.FormatRatio(r.Ratio))
}
