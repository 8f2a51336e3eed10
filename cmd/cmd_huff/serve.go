package cmd_huff

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rskv-p/huff/cmd/cmd_app"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/recover"
	"github.com/rskv-p/huff/servs/s_huff/huff_nats"
	"github.com/rskv-p/huff/servs/s_huff/huff_rest"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveNoStore bool
	serveBus     bool
)

// ServeCmd runs the REST API, optionally with the bus service.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the encode API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cmd_app.Config()
		if serveAddr == "" {
			serveAddr = cfg.HTTPAddr
		}

		svc, closeFn, err := cmd_app.OpenService(!serveNoStore)
		if err != nil {
			return err
		}
		defer closeFn()

		if serveBus {
			bus := huff_nats.New(cfg.NATS, svc)
			if err := bus.Start(); err != nil {
				return err
			}
			defer bus.Stop()
			svc.OnRun(bus.PublishRun)
			svc.RegisterHealthProbe(bus.Probe)
		}

		if cfg.JWTSecret == "" {
			x_log.Warn().Msg("jwt_secret is empty, API is unauthenticated")
		}

		srv := huff_rest.New(svc, cfg.JWTSecret)
		serve := recover.WrapRecover("huff_rest", "ListenAndServe", func(ctx context.Context) error {
			return srv.ListenAndServe(ctx, serveAddr)
		})

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return serve(ctx)
	},
}

func init() {
	ServeCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
	ServeCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "disable the run store")
	ServeCmd.Flags().BoolVar(&serveBus, "nats", false, "also answer encode requests on NATS")
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
