package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// RowScanner is satisfied by *sql.Rows and *sql.Row.
type RowScanner interface {
	Scan(dest ...any) error
}

// Query runs statement with positional args and maps every returned row
// through scan. Rows are always closed before Query returns. On a transient
// failure the whole statement is re-run, so scan must not keep state between
// calls.
func Query[T any](ctx context.Context, g *Gateway, scan func(RowScanner) (T, error), statement string, args ...any) ([]T, error) {
	var result []T
	err := g.retry(ctx, func(ctx context.Context) error {
		result = nil

		rows, err := g.DB.QueryContext(ctx, statement, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			result = append(result, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Exec runs a statement that returns no rows.
func (g *Gateway) Exec(ctx context.Context, statement string, args ...any) error {
	return g.retry(ctx, func(ctx context.Context) error {
		_, err := g.DB.ExecContext(ctx, statement, args...)
		return err
	})
}

func (g *Gateway) retry(ctx context.Context, op func(ctx context.Context) error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), uint64(g.maxRetries)), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, g.queryTimeout)
		defer cancel()

		err := op(attemptCtx)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		g.log.Warn("Transient database error, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
		)
	})
}

// IsTransient reports whether err is worth one more attempt: connection
// exceptions, serialization failures, deadlocks, server shutdown, and
// failures pgconn knows happened before anything reached the server.
// Timeouts and cancellations are final.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "57P01", "57P02", "57P03":
			return true
		}
		return strings.HasPrefix(pgErr.Code, "08")
	}

	return pgconn.SafeToRetry(err)
}
