package application

import (
	"context"

	"github.com/sebuszqo/PaymentAPI/internal/payment/domain"
)

type PaymentService struct {
	repo domain.PaymentRepository
}

func NewPaymentService(repo domain.PaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

// ListPayments never returns a nil slice on success.
func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if payments == nil {
		return []domain.Payment{}, nil
	}

	return payments, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repo.FindActiveByID(ctx, id)
}

func (s *PaymentService) CreatePayment(ctx context.Context, input domain.PaymentInput) (*domain.Payment, error) {
	return s.repo.Create(ctx, input)
}

func (s *PaymentService) UpdatePayment(ctx context.Context, id int64, input domain.PaymentInput) (*domain.Payment, error) {
	return s.repo.UpdateActive(ctx, id, input)
}

func (s *PaymentService) DeletePayment(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}
