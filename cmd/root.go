package cmd

import (
	"os"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/cmd/cmd_huff"
	"github.com/rskv-p/huff/cmd/cmd_nats"
	"github.com/rskv-p/huff/pkg/x_log"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "huff",
	Short:        "Deterministic Huffman coder",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cmd_app.Load(configPath, logLevel); err != nil {
			l := x_log.Stderr()
			l.Error().Err(err).Str("config", configPath).Msg("load config")
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		x_log.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $HUFF_CONFIG or HUFF_* env)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level")

	rootCmd.AddCommand(cmd_huff.EncodeCmd())
	rootCmd.AddCommand(cmd_huff.BatchCmd)
	rootCmd.AddCommand(cmd_huff.ServeCmd)
	rootCmd.AddCommand(cmd_huff.RunsCmd)
	rootCmd.AddCommand(cmd_huff.TokenCmd)
	rootCmd.AddCommand(cmd_nats.Cmd)
}
