package huff_rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
	"github.com/rskv-p/huff/servs/s_huff/huff_serv"
)

// handleEncode encodes the JSON request body.
func handleEncode(svc huff_api.IHuff) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req huff_api.EncodeRequest
		body := http.MaxBytesReader(w, r.Body, 2*constant.MaxInputSize)
		if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if req.Source == "" {
			req.Source = "rest"
		}

		resp, err := svc.Encode(r.Context(), req)
		if err != nil {
			x_log.From(r.Context()).Warn().Err(err).Str("source", req.Source).Msg("encode failed")
			writeError(w, constant.StatusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleRuns lists recent runs; ?limit=N bounds the result.
func handleRuns(svc huff_api.IHuff) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
				return
			}
			limit = n
		}

		runs, err := svc.Runs(r.Context(), limit)
		if err != nil {
			writeError(w, constant.StatusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, huff_api.RunsResponse{Runs: runs})
	}
}

// handleRun returns the run with the given ID.
func handleRun(svc huff_api.IHuff) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := svc.Run(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, constant.StatusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

// handleHealth answers 503 only when a check is critical.
func handleHealth(svc *huff_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, checks := svc.Health(r.Context())

		code, label := http.StatusOK, "ok"
		switch status {
		case constant.StatusWarning:
			label = "warning"
		case constant.StatusCritical:
			code, label = http.StatusServiceUnavailable, "critical"
		}
		writeJSON(w, code, map[string]any{"status": label, "checks": checks})
	}
}

// handleMetrics returns the service counters.
func handleMetrics(svc *huff_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Metrics())
	}
}

// handleResetMetrics drops every counter.
func handleResetMetrics(svc *huff_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.ResetMetrics()
		x_log.From(r.Context()).Info().Msg("metrics reset")
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{constant.BodyKeyError: msg})
}
