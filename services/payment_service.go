package services

import (
	"context"
	"log/slog"

	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/repositories"
)

type PaymentService struct {
	repo   repositories.PaymentRepository
	logger *slog.Logger
}

func NewPaymentService(repo repositories.PaymentRepository, logger *slog.Logger) *PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{repo: repo, logger: logger}
}

// ListPayments возвращает журнал, новые платежи первыми.
// При недоступном хранилище - пустой список.
func (s *PaymentService) ListPayments(ctx context.Context) []models.Payment {
	payments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load payments, returning empty list", slog.Any("error", err))
		return []models.Payment{}
	}
	return payments
}
