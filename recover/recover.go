package recover

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/rskv-p/huff/pkg/x_log"
)

const (
	tagService  = "service"
	tagFunction = "function"
	tagContext  = "context"
	tagLabel    = "label"
)

// ----------------------------------------------------
// Global panic hook (optional)
// ----------------------------------------------------

var OnPanic func(service, function string, recovered any)

var custom *zerolog.Logger

// SetLogger replaces the logger used for panic reports.
func SetLogger(l zerolog.Logger) {
	custom = &l
}

func logger() zerolog.Logger {
	if custom != nil {
		return *custom
	}
	return x_log.New("recover")
}

// ----------------------------------------------------
// Panic recovery functions
// ----------------------------------------------------

// RecoverWithContext captures and logs a panic with metadata and optional data.
// It must be called directly by defer.
func RecoverWithContext(service, function string, data any) {
	if r := recover(); r != nil {
		report(service, function, r, data)
	}
}

// RecoverExplicit logs a known recovered panic with metadata and context.
func RecoverExplicit(service, function string, recovered any, data any) {
	if recovered == nil {
		return
	}
	report(service, function, recovered, data)
}

func report(service, function string, recovered any, data any) {
	l := logger()
	ev := l.Error().
		Str(tagService, service).
		Str(tagFunction, function).
		Str("stack", string(debug.Stack()))
	if data != nil {
		ev = ev.Str(tagContext, fmt.Sprintf("%+v", data))
	}
	ev.Msgf("panic: %v", recovered)

	if OnPanic != nil {
		OnPanic(service, function, recovered)
	}
}

// Safe runs fn, recovering and logging any panic with label.
func Safe(label string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l := logger()
			l.Error().
				Str(tagLabel, label).
				Str("stack", string(debug.Stack())).
				Msgf("panic: %v", r)
			if OnPanic != nil {
				OnPanic("Safe", label, r)
			}
		}
	}()
	fn()
}

// RecoverFunc runs fn and turns a panic into an error.
func RecoverFunc(label string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			RecoverExplicit("RecoverFunc", label, r, nil)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// ----------------------------------------------------
// Handler wrappers
// ----------------------------------------------------

// RecoverableFunc is a context-aware function that may panic.
type RecoverableFunc func(ctx context.Context) error

// WrapRecover wraps a context-aware function with panic protection.
func WrapRecover(service, function string, f RecoverableFunc) RecoverableFunc {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				RecoverExplicit(service, function, r, nil)
				err = fmt.Errorf("panic recovered in %s.%s: %v", service, function, r)
			}
		}()
		return f(ctx)
	}
}

// Middleware recovers panics in HTTP handlers and answers 500.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					RecoverExplicit(service, r.Method+" "+r.URL.Path, rec, nil)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
