package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgMaxConns          = 10
	pgMaxConnIdleTime   = 5 * time.Minute
	pgHealthCheckPeriod = time.Minute
	pgConnectTimeout    = 10 * time.Second
)

// NewPgxPool opens a connection pool against databaseURL and pings it.
func NewPgxPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if poolCfg.MaxConns < pgMaxConns {
		poolCfg.MaxConns = pgMaxConns
	}
	poolCfg.MaxConnIdleTime = pgMaxConnIdleTime
	poolCfg.HealthCheckPeriod = pgHealthCheckPeriod
	poolCfg.ConnConfig.ConnectTimeout = pgConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pgConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to PostgreSQL (max %d connections).\n", poolCfg.MaxConns)
	return pool, nil
}

// ClosePgxPool closes the pool if it was opened.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool == nil {
		return
	}
	pool.Close()
	log.Println("PostgreSQL connection pool closed.")
}
