package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Handles is the process-wide store state: one pgx pool, and a gorm handle
// that borrows its connections from the same pool.
type Handles struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB
}

func Open(ctx context.Context, dsn string) (*Handles, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	gdb, err := OpenGorm(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}))
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := gdb.Use(tracing.NewPlugin()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("gorm tracing: %w", err)
	}
	return &Handles{Pool: pool, Gorm: gdb}, nil
}

// OpenGorm applies the settings every gorm handle in this module uses.
func OpenGorm(d gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(d, &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return gdb, nil
}

func (h *Handles) Close() {
	if sqlDB, err := h.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	h.Pool.Close()
}
