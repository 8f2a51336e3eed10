package huff_serv

import (
	"context"
	"fmt"
	"time"

	"github.com/rskv-p/huff/constant"
)

// HealthProbe returns a key, a status and free-form detail.
type HealthProbe func(ctx context.Context) (key string, status int, info any)

// RegisterHealthProbe adds a custom health check.
func (s *Service) RegisterHealthProbe(probe HealthProbe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes = append(s.probes, probe)
}

// Health evaluates the run store, the cache and registered probes. The
// result is the worst status seen.
func (s *Service) Health(ctx context.Context) (int, map[string]any) {
	status := constant.StatusOK
	feedback := make(map[string]any)

	worst := func(st int) {
		if st > status {
			status = st
		}
	}

	// --- Run store ---
	if s.dao == nil {
		feedback["store"] = "disabled"
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.dao.Ping(pingCtx)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Msg("health: store unreachable")
			feedback["store"] = fmt.Sprintf("unreachable: %v", err)
			worst(constant.StatusCritical)
		} else {
			feedback["store"] = "ok"
		}
	}

	// --- Cache ---
	if s.cache == nil {
		feedback["cache"] = "disabled"
	} else {
		feedback["cache"] = fmt.Sprintf("%d/%d", s.cache.Len(), s.opts.CacheSize)
	}

	// --- Custom probes ---
	s.mu.RLock()
	probes := append([]HealthProbe{}, s.probes...)
	s.mu.RUnlock()

	for _, probe := range probes {
		key, st, info := probe(ctx)
		if key == "" {
			continue
		}
		worst(st)
		feedback[key] = info
	}
	return status, feedback
}
