// servs/s_huff/huff_serv/service.go
package huff_serv

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nats-io/nuid"
	"github.com/rs/zerolog"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_db"
	"github.com/rskv-p/huff/pkg/x_huff"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/pkg/x_report"
	"github.com/rskv-p/huff/recover"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

var _ huff_api.IHuff = (*Service)(nil)

// Options configures a Service. A nil DAO disables run history.
type Options struct {
	CacheSize int
	DumpBytes int
	History   int
	DAO       *x_db.DAO
}

// Service encodes inputs, caches results by digest and records runs.
type Service struct {
	opts  Options
	cache *lru.Cache[string, *x_huff.Result]
	dao   *x_db.DAO
	log   zerolog.Logger

	mu     sync.RWMutex
	hooks  []func(huff_api.RunInfo)
	probes []HealthProbe

	metricsMu sync.Mutex
	metrics   map[string]int64
}

// New creates the service and migrates the run table when a DAO is given.
func New(opts Options) (*Service, error) {
	if opts.DumpBytes <= 0 {
		opts.DumpBytes = x_report.DefaultDumpBytes
	}
	if opts.History <= 0 {
		opts.History = 20
	}

	s := &Service{
		opts:    opts,
		dao:     opts.DAO,
		log:     x_log.New("huff_serv"),
		metrics: make(map[string]int64),
	}

	if opts.CacheSize > 0 {
		c, err := lru.New[string, *x_huff.Result](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("result cache: %w", err)
		}
		s.cache = c
	}

	if s.dao != nil {
		if err := s.dao.Migrate(&Run{}); err != nil {
			return nil, fmt.Errorf("migrate runs: %w", err)
		}
	}
	return s, nil
}

// OnRun registers fn to be called after every successful encode.
func (s *Service) OnRun(fn func(huff_api.RunInfo)) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// Digest returns the hex blake2b-256 of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Encode runs the coder over the request input and builds its report.
func (s *Service) Encode(ctx context.Context, req huff_api.EncodeRequest) (*huff_api.EncodeResponse, error) {
	resp, err := s.encode(ctx, req)
	if err != nil {
		s.IncMetric(MetricFailed)
		return nil, err
	}

	s.IncMetric(MetricEncodes)
	s.AddMetric(MetricBytesIn, int64(resp.Report.Stats.OriginalBytes))
	s.AddMetric(MetricBitsOut, int64(resp.Report.Stats.EncodedBits))
	if resp.Cached {
		s.IncMetric(MetricCached)
	}
	if resp.Stored {
		s.IncMetric(MetricStored)
	}
	return resp, nil
}

func (s *Service) encode(ctx context.Context, req huff_api.EncodeRequest) (*huff_api.EncodeResponse, error) {
	input := req.Input()
	switch {
	case len(input) == 0:
		return nil, fmt.Errorf("%w: %w", constant.ErrBadRequest, x_huff.ErrEmptyInput)
	case len(input) > constant.MaxInputSize:
		return nil, fmt.Errorf("%w: input exceeds %d bytes", constant.ErrBadRequest, constant.MaxInputSize)
	}
	if req.Store && s.dao == nil {
		return nil, constant.ErrNoStore
	}

	digest := Digest(input)
	res, cached := s.lookup(digest)
	if !cached {
		var err error
		if res, err = x_huff.Encode(input); err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Add(digest, res)
		}
	}

	dump := req.DumpBytes
	if dump <= 0 {
		dump = s.opts.DumpBytes
	}
	rep := x_report.Build(input, res, dump)

	run := Run{
		ID:         nuid.Next(),
		Digest:     digest,
		Source:     req.Source,
		Bytes:      rep.Stats.OriginalBytes,
		Bits:       rep.Stats.EncodedBits,
		Distinct:   rep.Stats.Distinct,
		MaxCodeLen: rep.Stats.MaxCodeLen,
		Ratio:      rep.Stats.Ratio,
		CreatedAt:  time.Now().UTC(),
	}

	if req.Store {
		if err := s.dao.Create(ctx, &run); err != nil {
			return nil, fmt.Errorf("store run: %w", err)
		}
	}

	s.log.Debug().
		Str("id", run.ID).
		Str("source", req.Source).
		Int("bytes", run.Bytes).
		Uint64("bits", run.Bits).
		Bool("cached", cached).
		Msg("encoded")

	info := run.Info()
	info.Cached = cached
	s.emit(info)

	return &huff_api.EncodeResponse{
		ID:     run.ID,
		Digest: digest,
		Cached: cached,
		Stored: req.Store,
		Report: &rep,
	}, nil
}

// Runs returns up to limit stored runs, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]huff_api.RunInfo, error) {
	if s.dao == nil {
		return nil, constant.ErrNoStore
	}
	if limit <= 0 {
		limit = s.opts.History
	}
	s.IncMetric(MetricRunsRead)

	var runs []Run
	if err := s.dao.Recent(ctx, &runs, "created_at", limit); err != nil {
		return nil, err
	}

	out := make([]huff_api.RunInfo, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.Info())
	}
	return out, nil
}

// Run loads one stored run.
func (s *Service) Run(ctx context.Context, id string) (*huff_api.RunInfo, error) {
	if s.dao == nil {
		return nil, constant.ErrNoStore
	}

	var r Run
	if err := s.dao.First(ctx, &r, "id = ?", id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: run %s", constant.ErrNotFound, id)
		}
		return nil, err
	}
	info := r.Info()
	return &info, nil
}

func (s *Service) lookup(digest string) (*x_huff.Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(digest)
}

func (s *Service) emit(info huff_api.RunInfo) {
	s.mu.RLock()
	hooks := append([]func(huff_api.RunInfo){}, s.hooks...)
	s.mu.RUnlock()

	for _, fn := range hooks {
		recover.Safe("huff_serv.OnRun", func() { fn(info) })
	}
}
