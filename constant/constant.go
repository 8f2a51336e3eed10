package constant

import (
	"errors"
	"net/http"
)

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrBadRequest   = errors.New("invalid request")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoStore      = errors.New("run store is not configured")
)

// ----------------------------------------------------
// Config paths & keys
// ----------------------------------------------------

const (
	DefaultConfigFile = "huff.json"
	EnvConfigPath     = "HUFF_CONFIG"
	EnvPrefix         = "HUFF_"
	MaxInputSize      = 4 * 1024 * 1024 // 4MB
)

// ----------------------------------------------------
// Bus subjects
// ----------------------------------------------------

const (
	SubjectEncode    = "huff.encode"
	SubjectRunEvent  = "huff.run"
	DefaultQueueName = "huff"
)

// BodyKeyError names the message field of REST error bodies.
const BodyKeyError = "error"

// ----------------------------------------------------
// Event types
// ----------------------------------------------------

const (
	EventRun   = "run"
	EventHello = "hello"
)

// ----------------------------------------------------
// Health status
// ----------------------------------------------------

const (
	StatusOK       = 0
	StatusWarning  = 1
	StatusCritical = 2
)

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNoStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
