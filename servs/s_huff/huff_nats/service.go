// servs/s_huff/huff_nats/service.go
package huff_nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rskv-p/huff/config"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/recover"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
	"github.com/rskv-p/huff/servs/s_huff/huff_serv"
)

// Transport counters, recorded under the "nats." prefix.
const (
	MetricRequests = "requests"
	MetricErrors   = "errors"
)

// Service answers encode requests on the bus, optionally hosting an
// embedded nats-server.
type Service struct {
	cfg     config.NATSSettings
	svc     huff_api.IHuff
	log     zerolog.Logger
	metrics *huff_serv.MetricRecorder

	ns  *server.Server
	nc  *nats.Conn
	sub *nats.Subscription
}

// New creates the bus service for svc. Request counters are recorded when
// svc keeps metrics.
func New(cfg config.NATSSettings, svc huff_api.IHuff) *Service {
	s := &Service{
		cfg: cfg,
		svc: svc,
		log: x_log.New("huff_nats"),
	}
	if m, ok := svc.(interface {
		WithMetricPrefix(string) *huff_serv.MetricRecorder
	}); ok {
		s.metrics = m.WithMetricPrefix("nats")
	}
	return s
}

// Start boots the embedded server when configured, connects and subscribes.
func (s *Service) Start() error {
	url := s.cfg.ClientURL()

	if s.cfg.Embedded {
		opts := &server.Options{
			ServerName: s.cfg.Name,
			Host:       s.cfg.Host,
			Port:       s.cfg.Port,
			NoSigs:     true,
			NoLog:      true,
		}
		ns, err := server.NewServer(opts)
		if err != nil {
			return fmt.Errorf("nats-server init: %w", err)
		}
		s.ns = ns
		go ns.Start()

		if !ns.ReadyForConnections(5 * time.Second) {
			ns.Shutdown()
			return fmt.Errorf("nats-server not ready")
		}
		url = ns.ClientURL()
	}

	nc, err := nats.Connect(url, nats.Name(s.cfg.Name))
	if err != nil {
		s.shutdownServer()
		return fmt.Errorf("nats client connect: %w", err)
	}
	s.nc = nc

	sub, err := nc.QueueSubscribe(s.cfg.Subject, s.cfg.QueueGroup, s.handle)
	if err != nil {
		s.Stop()
		return fmt.Errorf("subscribe %s: %w", s.cfg.Subject, err)
	}
	s.sub = sub

	s.log.Info().
		Str("url", url).
		Str("subject", s.cfg.Subject).
		Str("queue", s.cfg.QueueGroup).
		Bool("embedded", s.cfg.Embedded).
		Msg("bus service started")
	return nil
}

// ClientURL returns the URL clients should dial.
func (s *Service) ClientURL() string {
	if s.ns != nil {
		return s.ns.ClientURL()
	}
	return s.cfg.ClientURL()
}

// Probe reports the bus connection state under the "nats" key. It has the
// shape of huff_serv.HealthProbe.
func (s *Service) Probe(context.Context) (string, int, any) {
	nc := s.nc
	if nc == nil {
		return "nats", constant.StatusCritical, "not connected"
	}
	if !nc.IsConnected() {
		return "nats", constant.StatusCritical, nc.Status().String()
	}
	return "nats", constant.StatusOK, "ok"
}

// PublishRun publishes a run event on SubjectRunEvent.
func (s *Service) PublishRun(info huff_api.RunInfo) {
	if s.nc == nil {
		return
	}
	data, err := json.Marshal(huff_api.Event{Type: constant.EventRun, Run: &info})
	if err != nil {
		return
	}
	if err := s.nc.Publish(huff_api.SubjectRunEvent, data); err != nil {
		s.log.Warn().Err(err).Msg("publish run event")
	}
}

// Stop drains the subscription and shuts the embedded server down.
func (s *Service) Stop() {
	if s.sub != nil {
		_ = s.sub.Unsubscribe()
		s.sub = nil
	}
	if s.nc != nil {
		s.nc.Close()
		s.nc = nil
	}
	s.shutdownServer()
}

func (s *Service) shutdownServer() {
	if s.ns != nil {
		s.ns.Shutdown()
		s.ns.WaitForShutdown()
		s.ns = nil
	}
}

func (s *Service) handle(msg *nats.Msg) {
	defer recover.RecoverWithContext("huff_nats", "handle", msg.Subject)
	s.count(MetricRequests)

	var req huff_api.EncodeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.count(MetricErrors)
		s.reply(msg, &huff_api.EncodeResponse{
			Error: fmt.Sprintf("%v: invalid JSON", constant.ErrBadRequest),
		})
		return
	}
	if req.Source == "" {
		req.Source = "nats"
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout())
	defer cancel()

	resp, err := s.svc.Encode(ctx, req)
	if err != nil {
		s.count(MetricErrors)
		resp = &huff_api.EncodeResponse{Error: err.Error()}
	}
	s.reply(msg, resp)
}

func (s *Service) count(name string) {
	if s.metrics != nil {
		s.metrics.Inc(name)
	}
}

func (s *Service) reply(msg *nats.Msg, resp *huff_api.EncodeResponse) {
	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal response")
		return
	}
	if err := msg.Respond(data); err != nil {
		s.log.Warn().Err(err).Msg("respond")
	}
}

func (s *Service) timeout() time.Duration {
	if s.cfg.RequestTimeout > 0 {
		return s.cfg.RequestTimeout
	}
	return 5 * time.Second
}
