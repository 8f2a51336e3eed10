package huff_serv_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_db"
	"github.com/rskv-p/huff/pkg/x_huff"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
	"github.com/rskv-p/huff/servs/s_huff/huff_serv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *x_db.DAO {
	t.Helper()
	dao, err := x_db.New(x_db.Config{Type: x_db.DbSqlite, DSN: "file::memory:", LogLevel: "silent", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dao.Close() })
	return dao
}

func newService(t *testing.T, dao *x_db.DAO) *huff_serv.Service {
	t.Helper()
	svc, err := huff_serv.New(huff_serv.Options{CacheSize: 8, DAO: dao})
	require.NoError(t, err)
	return svc
}

func TestEncode(t *testing.T) {
	svc := newService(t, nil)

	resp, err := svc.Encode(context.Background(), huff_api.EncodeRequest{Text: "aaab"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.Digest, 64)
	assert.False(t, resp.Cached)
	require.NotNil(t, resp.Report)
	assert.Equal(t, uint64(4), resp.Report.Stats.EncodedBits)
	assert.Equal(t, "11100000", resp.Report.Dump)
}

func TestEncodeUsesCache(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	first, err := svc.Encode(ctx, huff_api.EncodeRequest{Text: "hello world"})
	require.NoError(t, err)
	second, err := svc.Encode(ctx, huff_api.EncodeRequest{Data: []byte("hello world")})
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Digest, second.Digest)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Report.Codes, second.Report.Codes)
}

func TestEncodeWithoutCache(t *testing.T) {
	svc, err := huff_serv.New(huff_serv.Options{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := svc.Encode(context.Background(), huff_api.EncodeRequest{Text: "abc"})
		require.NoError(t, err)
		assert.False(t, resp.Cached)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Encode(ctx, huff_api.EncodeRequest{})
	assert.ErrorIs(t, err, constant.ErrBadRequest)
	assert.ErrorIs(t, err, x_huff.ErrEmptyInput)

	_, err = svc.Encode(ctx, huff_api.EncodeRequest{Text: strings.Repeat("x", constant.MaxInputSize+1)})
	assert.ErrorIs(t, err, constant.ErrBadRequest)

	_, err = svc.Encode(ctx, huff_api.EncodeRequest{Text: "abc", Store: true})
	assert.ErrorIs(t, err, constant.ErrNoStore)
}

func TestDumpBytes(t *testing.T) {
	svc := newService(t, nil)

	resp, err := svc.Encode(context.Background(), huff_api.EncodeRequest{Text: "the quick brown fox", DumpBytes: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Report.Dump, 8)
}

func TestRunHistory(t *testing.T) {
	svc := newService(t, newStore(t))
	ctx := context.Background()

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		resp, err := svc.Encode(ctx, huff_api.EncodeRequest{Text: text, Store: true, Source: "test"})
		require.NoError(t, err)
		assert.True(t, resp.Stored)
		ids = append(ids, resp.ID)
	}
	_, err := svc.Encode(ctx, huff_api.EncodeRequest{Text: "not stored"})
	require.NoError(t, err)

	runs, err := svc.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	run, err := svc.Run(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "test", run.Source)
	assert.Equal(t, 3, run.Bytes)
	assert.Equal(t, huff_serv.Digest([]byte("two")), run.Digest)

	_, err = svc.Run(ctx, "missing")
	assert.ErrorIs(t, err, constant.ErrNotFound)
}

func TestRunsWithoutStore(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Runs(context.Background(), 5)
	assert.ErrorIs(t, err, constant.ErrNoStore)
	_, err = svc.Run(context.Background(), "x")
	assert.ErrorIs(t, err, constant.ErrNoStore)
}

func TestOnRun(t *testing.T) {
	svc := newService(t, nil)

	var mu sync.Mutex
	var got []huff_api.RunInfo
	svc.OnRun(func(info huff_api.RunInfo) {
		mu.Lock()
		got = append(got, info)
		mu.Unlock()
	})
	svc.OnRun(func(huff_api.RunInfo) { panic("listener") })

	resp, err := svc.Encode(context.Background(), huff_api.EncodeRequest{Text: "zzzz"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, resp.ID, got[0].ID)
	assert.Equal(t, uint64(4), got[0].Bits)
	assert.Equal(t, 1, got[0].Distinct)
}

func TestMetrics(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Encode(ctx, huff_api.EncodeRequest{Text: "aaab"})
	require.NoError(t, err)
	_, err = svc.Encode(ctx, huff_api.EncodeRequest{Text: "aaab"})
	require.NoError(t, err)
	_, err = svc.Encode(ctx, huff_api.EncodeRequest{})
	require.Error(t, err)

	m := svc.Metrics()
	assert.Equal(t, int64(2), m[huff_serv.MetricEncodes])
	assert.Equal(t, int64(1), m[huff_serv.MetricCached])
	assert.Equal(t, int64(1), m[huff_serv.MetricFailed])
	assert.Equal(t, int64(8), m[huff_serv.MetricBytesIn])
	assert.Equal(t, int64(8), m[huff_serv.MetricBitsOut])

	rec := svc.WithMetricPrefix("custom.")
	rec.Inc("hits")
	rec.Add("hits", 2)
	assert.Equal(t, int64(3), svc.Metrics()["custom.hits"])

	svc.ResetMetrics()
	assert.Empty(t, svc.Metrics())
}

func TestHealth(t *testing.T) {
	svc := newService(t, newStore(t))

	status, checks := svc.Health(context.Background())
	assert.Equal(t, constant.StatusOK, status)
	assert.Equal(t, "ok", checks["store"])
	assert.Equal(t, "0/8", checks["cache"])

	svc.RegisterHealthProbe(func(context.Context) (string, int, any) {
		return "disk", constant.StatusWarning, "low"
	})
	svc.RegisterHealthProbe(func(context.Context) (string, int, any) {
		return "", constant.StatusCritical, nil
	})

	status, checks = svc.Health(context.Background())
	assert.Equal(t, constant.StatusWarning, status)
	assert.Equal(t, "low", checks["disk"])
}

func TestHealthWithoutStore(t *testing.T) {
	svc, err := huff_serv.New(huff_serv.Options{})
	require.NoError(t, err)

	status, checks := svc.Health(context.Background())
	assert.Equal(t, constant.StatusOK, status)
	assert.Equal(t, "disabled", checks["store"])
	assert.Equal(t, "disabled", checks["cache"])
}
