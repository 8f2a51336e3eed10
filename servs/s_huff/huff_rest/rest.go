// Package huff_rest exposes the encode service over HTTP and websocket.
package huff_rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/recover"
	"github.com/rskv-p/huff/servs/s_huff/huff_serv"
)

// Transport counters, recorded under the "rest." prefix.
const (
	MetricRequests = "requests"
	MetricErrors   = "errors"
)

// Server wires the service, the websocket hub and the router together.
type Server struct {
	svc     *huff_serv.Service
	hub     *Hub
	secret  []byte
	log     zerolog.Logger
	metrics *huff_serv.MetricRecorder
	router  chi.Router
}

// New builds the router. An empty secret leaves the API open.
func New(svc *huff_serv.Service, secret string) *Server {
	s := &Server{
		svc:     svc,
		secret:  []byte(secret),
		log:     x_log.New("huff_rest"),
		metrics: svc.WithMetricPrefix("rest"),
	}
	s.hub = NewHub(s.log)
	svc.OnRun(s.hub.Broadcast)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log, s.metrics))
	r.Use(recover.Middleware("huff_rest"))

	// Public endpoints
	r.Get("/healthz", handleHealth(s.svc))

	// Protected endpoints
	r.Group(func(r chi.Router) {
		if len(s.secret) > 0 {
			r.Use(JWTMiddleware(s.secret))
		}
		r.Route("/api", func(r chi.Router) {
			r.Post("/encode", handleEncode(s.svc))
			r.Get("/runs", handleRuns(s.svc))
			r.Get("/runs/{id}", handleRun(s.svc))
			r.Get("/metrics", handleMetrics(s.svc))
			r.Delete("/metrics", handleResetMetrics(s.svc))
		})
		r.Get("/ws", s.hub.HandleWS)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("REST API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger stores a request-scoped logger in the context, counts the
// request and logs one line when it completes.
func requestLogger(log zerolog.Logger, metrics *huff_serv.MetricRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With().Str("req_id", middleware.GetReqID(r.Context())).Logger()
			r = r.WithContext(x_log.WithLogger(r.Context(), &reqLog))

			metrics.Inc(MetricRequests)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			if ww.Status() >= http.StatusBadRequest {
				metrics.Inc(MetricErrors)
			}
			reqLog.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
