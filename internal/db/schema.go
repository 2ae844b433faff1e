package database

import "context"

const paymentsSchema = `CREATE TABLE IF NOT EXISTS payments (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL,
	amount NUMERIC NOT NULL,
	currency VARCHAR(10) NOT NULL,
	payment_date TIMESTAMPTZ NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

// EnsureSchema creates the payments table when it does not exist yet.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	return g.Exec(ctx, paymentsSchema)
}
