package database

import (
	"context"
	"fmt"

	pgxzerolog "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/multitracer"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	"github.com/logcentral/logcentral/internal/config"
)

// NewPool opens a pgx pool with query tracing wired in: zerolog for local
// visibility and, when observability is enabled, the New Relic pgx tracer.
func NewPool(ctx context.Context, databaseURL string, obs *config.ObservabilityConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	queryLog := &tracelog.TraceLog{
		Logger:   pgxzerolog.NewLogger(logger),
		LogLevel: tracelog.LogLevelWarn,
	}
	if obs != nil && obs.Enabled {
		poolCfg.ConnConfig.Tracer = multitracer.New(queryLog, nrpgx5.NewTracer())
	} else {
		poolCfg.ConnConfig.Tracer = queryLog
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
