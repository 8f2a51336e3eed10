// Package cmd_app holds the configuration and service wiring shared by
// the CLI commands.
package cmd_app

import (
	"fmt"
	"sync"

	"github.com/rskv-p/huff/config"
	"github.com/rskv-p/huff/pkg/x_db"
	"github.com/rskv-p/huff/pkg/x_log"
	"github.com/rskv-p/huff/servs/s_huff/huff_serv"
)

var (
	mu  sync.Mutex
	cfg *config.Config
)

// Load reads the config from path, or from HUFF_CONFIG / HUFF_* env when
// path is empty, and initializes logging. HUFF_LOG_* variables override the
// logger section; a non-empty level overrides both.
func Load(path, level string) error {
	var (
		c   *config.Config
		err error
	)
	if path != "" {
		if c, err = config.Load(path); err != nil {
			return err
		}
	} else {
		c = config.LoadWithFallback()
	}

	if c.LogLevel != "" {
		c.Logger.Level = c.LogLevel
	}
	x_log.ApplyEnv(&c.Logger)
	if level != "" {
		c.LogLevel = level
		c.Logger.Level = level
	}
	if err := c.Validate(); err != nil {
		return err
	}

	x_log.InitWithConfig(&c.Logger, c.ServiceName)
	Set(c)
	return nil
}

// Set replaces the active config.
func Set(c *config.Config) {
	mu.Lock()
	cfg = c
	mu.Unlock()
}

// Config returns the active config, defaults when none was loaded.
func Config() *config.Config {
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}

// OpenService builds the encode service. With store set the run database
// is opened and the returned close func releases it.
func OpenService(store bool) (*huff_serv.Service, func(), error) {
	c := Config()
	opts := huff_serv.Options{
		CacheSize: c.CacheSize,
		DumpBytes: c.DumpBytes,
		History:   c.History,
	}

	closeFn := func() {}
	if store {
		dao, err := x_db.New(c.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("open run store: %w", err)
		}
		opts.DAO = dao
		closeFn = func() { _ = dao.Close() }
	}

	svc, err := huff_serv.New(opts)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}
