package domain

import (
	"context"
	"time"
)

// Payment is a row of the payments table. IsActive is the soft-delete flag
// and never leaves the service.
type Payment struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	PaymentDate time.Time `json:"payment_date"`
	IsActive    bool      `json:"-"`
}

// PaymentInput carries the mutable fields of a payment. Fields missing from
// the request stay nil and reach the store as NULL.
type PaymentInput struct {
	UserID      *int64     `json:"user_id"`
	Amount      *float64   `json:"amount"`
	Currency    *string    `json:"currency"`
	PaymentDate *time.Time `json:"payment_date"`
}

type PaymentRepository interface {
	FindAll(ctx context.Context) ([]Payment, error)
	FindActiveByID(ctx context.Context, id int64) (*Payment, error)
	Create(ctx context.Context, input PaymentInput) (*Payment, error)
	UpdateActive(ctx context.Context, id int64, input PaymentInput) (*Payment, error)
	Deactivate(ctx context.Context, id int64) error
}
