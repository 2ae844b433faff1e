package infrastructure

import (
	"context"
	"fmt"

	database "github.com/sebuszqo/PaymentAPI/internal/db"
	"github.com/sebuszqo/PaymentAPI/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentAPI/internal/payment/errors"
)

const (
	selectAllPayments = `SELECT id, user_id, amount, currency, payment_date, is_active
        FROM payments
        ORDER BY id`

	selectActivePayment = `SELECT id, user_id, amount, currency, payment_date, is_active
        FROM payments
        WHERE id = $1 AND is_active = true`

	insertPayment = `INSERT INTO payments (user_id, amount, currency, payment_date, is_active)
        VALUES ($1, $2, $3, $4, true)
        RETURNING id, user_id, amount, currency, payment_date, is_active`

	updateActivePayment = `UPDATE payments
        SET user_id = $1, amount = $2, currency = $3, payment_date = $4
        WHERE id = $5 AND is_active = true
        RETURNING id, user_id, amount, currency, payment_date, is_active`

	// No is_active guard: deleting an already deleted row still matches it.
	deactivatePayment = `UPDATE payments
        SET is_active = false
        WHERE id = $1
        RETURNING id`
)

type PaymentRepository struct {
	gateway *database.Gateway
}

func NewPaymentRepository(gateway *database.Gateway) *PaymentRepository {
	return &PaymentRepository{gateway: gateway}
}

func scanPayment(row database.RowScanner) (domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.PaymentDate, &p.IsActive); err != nil {
		return domain.Payment{}, err
	}
	p.PaymentDate = p.PaymentDate.UTC()
	return p, nil
}

func scanID(row database.RowScanner) (int64, error) {
	var id int64
	err := row.Scan(&id)
	return id, err
}

// FindAll returns every stored payment, soft-deleted ones included.
func (r *PaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	payments, err := database.Query(ctx, r.gateway, scanPayment, selectAllPayments)
	if err != nil {
		return nil, fmt.Errorf("could not list payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) FindActiveByID(ctx context.Context, id int64) (*domain.Payment, error) {
	payments, err := database.Query(ctx, r.gateway, scanPayment, selectActivePayment, id)
	if err != nil {
		return nil, fmt.Errorf("could not get payment %d: %w", id, err)
	}
	return first(payments)
}

func (r *PaymentRepository) Create(ctx context.Context, input domain.PaymentInput) (*domain.Payment, error) {
	payments, err := database.Query(ctx, r.gateway, scanPayment, insertPayment,
		input.UserID, input.Amount, input.Currency, input.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("could not create payment: %w", err)
	}
	return first(payments)
}

func (r *PaymentRepository) UpdateActive(ctx context.Context, id int64, input domain.PaymentInput) (*domain.Payment, error) {
	payments, err := database.Query(ctx, r.gateway, scanPayment, updateActivePayment,
		input.UserID, input.Amount, input.Currency, input.PaymentDate, id)
	if err != nil {
		return nil, fmt.Errorf("could not update payment %d: %w", id, err)
	}
	return first(payments)
}

func (r *PaymentRepository) Deactivate(ctx context.Context, id int64) error {
	ids, err := database.Query(ctx, r.gateway, scanID, deactivatePayment, id)
	if err != nil {
		return fmt.Errorf("could not delete payment %d: %w", id, err)
	}
	if len(ids) == 0 {
		return paymentErrors.ErrPaymentNotFound
	}
	return nil
}

func first(payments []domain.Payment) (*domain.Payment, error) {
	if len(payments) == 0 {
		return nil, paymentErrors.ErrPaymentNotFound
	}
	return &payments[0], nil
}
