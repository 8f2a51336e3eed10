// Package x_db opens the gorm connection used to record encoding runs.
package x_db

import (
	"context"
	"fmt"

	"github.com/rskv-p/huff/pkg/x_log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//---------------------
// DAO
//---------------------

// DAO wraps a gorm connection.
type DAO struct {
	db  *gorm.DB
	cfg Config
}

// New opens the database described by cfg.
func New(cfg Config) (*DAO, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case DbPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		dialector = sqlite.Open(cfg.DSN)
	}

	zl := x_log.New("db")
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogAdapter(&zl, parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Type, err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	x_log.Info().
		Str("driver", string(cfg.Type)).
		Msg("database opened")

	return &DAO{db: db, cfg: cfg}, nil
}

// DB returns the gorm handle bound to ctx.
func (d *DAO) DB(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

// Migrate creates or updates tables for models.
func (d *DAO) Migrate(models ...any) error {
	return d.db.AutoMigrate(models...)
}

// Create inserts model.
func (d *DAO) Create(ctx context.Context, model any) error {
	return d.DB(ctx).Create(model).Error
}

// First loads the first record matching conds into dest.
func (d *DAO) First(ctx context.Context, dest any, conds ...any) error {
	return d.DB(ctx).First(dest, conds...).Error
}

// Recent loads up to limit records into dest, newest first by order column.
func (d *DAO) Recent(ctx context.Context, dest any, order string, limit int) error {
	q := d.DB(ctx).Order(order + " desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(dest).Error
}

// Close closes the underlying pool.
func (d *DAO) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection.
func (d *DAO) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
