package cmd_nats

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/pkg/x_report"
	"github.com/rskv-p/huff/servs/s_huff/huff_client"
	"github.com/rskv-p/huff/servs/s_huff/huff_nats"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var (
	natsURL   string
	natsStore bool
	natsJSON  bool
)

var Cmd = &cobra.Command{
	Use:   "nats",
	Short: "Encode over NATS",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer encode requests on the bus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cmd_app.Config()

		svc, closeFn, err := cmd_app.OpenService(natsStore)
		if err != nil {
			return err
		}
		defer closeFn()

		bus := huff_nats.New(cfg.NATS, svc)
		if err := bus.Start(); err != nil {
			return err
		}
		defer bus.Stop()
		svc.OnRun(bus.PublishRun)
		svc.RegisterHealthProbe(bus.Probe)

		x_log.Info().Str("url", bus.ClientURL()).Msg("waiting for requests")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Send text to the bus encode service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cmd_app.Config()
		url := natsURL
		if url == "" {
			url = cfg.NATS.ClientURL()
		}

		nc, err := nats.Connect(url, nats.Name(cfg.NATS.Name+"-cli"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Close()

		client := huff_client.New(nc, cfg.NATS.Subject, cfg.NATS.RequestTimeout)
		resp, err := client.EncodeText(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("encode failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if natsJSON {
			return x_report.RenderJSON(out, *resp.Report)
		}
		return x_report.Render(out, *resp.Report, x_report.Options{Color: x_report.ColorEnabled(out)})
	},
}

func init() {
	serveCmd.Flags().BoolVar(&natsStore, "store", false, "open the run store so requests may record runs")
	encodeCmd.Flags().StringVar(&natsURL, "url", "", "server URL (default from config)")
	encodeCmd.Flags().BoolVar(&natsJSON, "json", false, "print the report as JSON")

	Cmd.AddCommand(serveCmd)
	Cmd.AddCommand(encodeCmd)
}
