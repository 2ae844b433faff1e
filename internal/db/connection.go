package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sebuszqo/PaymentAPI/internal/config"
	"go.uber.org/zap"
)

// Gateway owns the connection pool and runs single parameterized statements
// against it with a per-statement timeout and a bounded retry on transient
// failures.
type Gateway struct {
	DB           *sql.DB
	log          *zap.Logger
	queryTimeout time.Duration
	maxRetries   int
	newBackOff   func() backoff.BackOff
}

type Option func(*Gateway)

// WithBackOff replaces the wait policy used between retries.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(g *Gateway) {
		g.newBackOff = newBackOff
	}
}

// NewGateway opens the pool described by cfg and pings the database.
func NewGateway(cfg config.DatabaseConfig, log *zap.Logger, opts ...Option) (*Gateway, error) {
	db, err := sql.Open("pgx", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to the database: %w", err)
	}

	return NewGatewayWithDB(db, cfg.QueryTimeout, cfg.MaxRetries, log, opts...), nil
}

// NewGatewayWithDB wraps an already opened pool.
func NewGatewayWithDB(db *sql.DB, queryTimeout time.Duration, maxRetries int, log *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		DB:           db,
		log:          log,
		queryTimeout: queryTimeout,
		maxRetries:   maxRetries,
		newBackOff:   defaultBackOff,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	return b
}

// Health pings the database and reports the result as status fields.
func (g *Gateway) Health(ctx context.Context) map[string]string {
	stats := make(map[string]string)

	ctx, cancel := context.WithTimeout(ctx, g.queryTimeout)
	defer cancel()

	if err := g.DB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close closes the pool.
func (g *Gateway) Close() error {
	g.log.Info("Closing database connection")
	return g.DB.Close()
}
