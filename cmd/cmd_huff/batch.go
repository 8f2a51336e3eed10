package cmd_huff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/recover"
	"github.com/spf13/cobra"
)

var keepGoing bool

// BatchCmd runs an encode per line of a script. Each line holds encode
// arguments in shell syntax; blank lines and # comments are skipped.
var BatchCmd = &cobra.Command{
	Use:   "batch <script|->",
	Short: "Run encode commands from a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			r = f
		}
		return runBatch(cmd, r, keepGoing)
	},
}

func init() {
	BatchCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue after a failing line")
}

func runBatch(cmd *cobra.Command, r io.Reader, keepGoing bool) error {
	out := cmd.OutOrStdout()
	failed := 0

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := shlex.Split(line)
		if err == nil && len(args) > 0 && args[0] == "encode" {
			args = args[1:]
		}
		if err == nil {
			fmt.Fprintf(out, "==> %s\n", line)
			err = runLine(cmd, args)
		}
		if err != nil {
			failed++
			x_log.Error().Err(err).Int("line", lineNo).Msg("batch line failed")
			if !keepGoing {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d batch line(s) failed", failed)
	}
	return nil
}

// lineCmd builds the command run for each script line.
var lineCmd = EncodeCmd

// runLine executes one line; a panic fails the line instead of the batch.
func runLine(parent *cobra.Command, args []string) error {
	c := lineCmd()
	c.SetArgs(args)
	c.SetIn(strings.NewReader(""))
	c.SetOut(parent.OutOrStdout())
	c.SetErr(parent.ErrOrStderr())
	c.SilenceUsage = true
	c.SilenceErrors = true
	return recover.RecoverFunc("batch", func() error {
		return c.ExecuteContext(parent.Context())
	})
}
