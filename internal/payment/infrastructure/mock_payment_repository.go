package infrastructure

import (
	"context"
	"errors"
	"sort"

	"github.com/sebuszqo/PaymentAPI/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentAPI/internal/payment/errors"
)

// ErrNullField is what the mock returns where the payments table's NOT NULL
// constraints would reject a write.
var ErrNullField = errors.New("null value violates not-null constraint")

// MockPaymentRepository keeps payments in memory and mirrors the filters of
// the SQL statements in PaymentRepository. Err, when set, is returned by
// every method.
type MockPaymentRepository struct {
	Payments map[int64]domain.Payment
	Err      error
	nextID   int64
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{Payments: make(map[int64]domain.Payment)}
}

func (m *MockPaymentRepository) FindAll(_ context.Context) ([]domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var payments []domain.Payment
	for _, p := range m.Payments {
		payments = append(payments, p)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

func (m *MockPaymentRepository) FindActiveByID(_ context.Context, id int64) (*domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Payments[id]
	if !ok || !p.IsActive {
		return nil, paymentErrors.ErrPaymentNotFound
	}
	return &p, nil
}

func (m *MockPaymentRepository) Create(_ context.Context, input domain.PaymentInput) (*domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, err := overwrite(domain.Payment{IsActive: true}, input)
	if err != nil {
		return nil, err
	}
	m.nextID++
	p.ID = m.nextID
	m.Payments[p.ID] = p
	return &p, nil
}

func (m *MockPaymentRepository) UpdateActive(_ context.Context, id int64, input domain.PaymentInput) (*domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Payments[id]
	if !ok || !p.IsActive {
		return nil, paymentErrors.ErrPaymentNotFound
	}
	p, err := overwrite(p, input)
	if err != nil {
		return nil, err
	}
	m.Payments[id] = p
	return &p, nil
}

func (m *MockPaymentRepository) Deactivate(_ context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.Payments[id]
	if !ok {
		return paymentErrors.ErrPaymentNotFound
	}
	p.IsActive = false
	m.Payments[id] = p
	return nil
}

// overwrite sets all four mutable fields, as the INSERT and UPDATE
// statements do.
func overwrite(p domain.Payment, input domain.PaymentInput) (domain.Payment, error) {
	if input.UserID == nil || input.Amount == nil || input.Currency == nil || input.PaymentDate == nil {
		return domain.Payment{}, ErrNullField
	}
	p.UserID = *input.UserID
	p.Amount = *input.Amount
	p.Currency = *input.Currency
	p.PaymentDate = input.PaymentDate.UTC()
	return p, nil
}
