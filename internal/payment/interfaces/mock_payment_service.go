package interfaces

import (
	"context"

	"github.com/sebuszqo/PaymentAPI/internal/payment/domain"
)

type MockPaymentService struct {
	Payments []domain.Payment
	Payment  *domain.Payment
	Err      error

	LastID    int64
	LastInput domain.PaymentInput
}

func NewMockPaymentService(payment *domain.Payment, err error) *MockPaymentService {
	return &MockPaymentService{Payment: payment, Err: err}
}

func (m *MockPaymentService) ListPayments(_ context.Context) ([]domain.Payment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payments, nil
}

func (m *MockPaymentService) GetPayment(_ context.Context, id int64) (*domain.Payment, error) {
	m.LastID = id
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}

func (m *MockPaymentService) CreatePayment(_ context.Context, input domain.PaymentInput) (*domain.Payment, error) {
	m.LastInput = input
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}

func (m *MockPaymentService) UpdatePayment(_ context.Context, id int64, input domain.PaymentInput) (*domain.Payment, error) {
	m.LastID = id
	m.LastInput = input
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}

func (m *MockPaymentService) DeletePayment(_ context.Context, id int64) error {
	m.LastID = id
	return m.Err
}
