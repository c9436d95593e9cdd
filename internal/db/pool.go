// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sapcc/go-bits/logg"
	"github.com/sethvargo/go-retry"

	"github.com/sapcc/jobly/internal/config"
)

// PgxIface is the subset of *pgxpool.Pool used by the controllers, it is
// implemented by pgxmock as well.
type PgxIface interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// Connect opens the connection pool, waiting with exponential backoff until
// the database answers or config.Global.Database.Timeout passed.
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(config.Global.Database.Connection)
	if err != nil {
		return nil, err
	}
	connConfig.ConnConfig.Tracer = GetTracer()

	pool, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxDuration(config.Global.Database.Timeout, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			logg.Info("Waiting for database: %s", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	// install postgres status exporter
	dbConfig := pool.Config()
	collector := pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": dbConfig.ConnConfig.Database})
	if err := prometheus.Register(collector); err != nil {
		logg.Error("Registering pgxpool collector: %s", err.Error())
	}
	logg.Info("Connected to PostgreSQL host=%s, max_conns=%d, health_check_period=%s",
		dbConfig.ConnConfig.Host, dbConfig.MaxConns, dbConfig.HealthCheckPeriod)

	return pool, nil
}
