package repositories

import (
	"context"
	"sync"

	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/storage"
)

// PaymentRepository - журнал платежей только на добавление.
type PaymentRepository interface {
	List(ctx context.Context) ([]models.Payment, error)
	Append(ctx context.Context, payment models.Payment) error
	Initialized(ctx context.Context) (bool, error)
	ReplaceAll(ctx context.Context, payments []models.Payment) error
}

type kvPaymentRepository struct {
	store storage.KVStore
	mu    sync.Mutex
}

func NewKVPaymentRepository(store storage.KVStore) PaymentRepository {
	return &kvPaymentRepository{store: store}
}

func (r *kvPaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	payments, _, err := loadCollection[models.Payment](ctx, r.store, storage.KeyPayments)
	return payments, err
}

// Append добавляет платёж в начало журнала.
func (r *kvPaymentRepository) Append(ctx context.Context, p models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payments, _, err := loadCollection[models.Payment](ctx, r.store, storage.KeyPayments)
	if err != nil {
		return err
	}
	payments = append([]models.Payment{p}, payments...)
	return saveCollection(ctx, r.store, storage.KeyPayments, payments)
}

func (r *kvPaymentRepository) Initialized(ctx context.Context) (bool, error) {
	_, ok, err := r.store.Get(ctx, storage.KeyPayments)
	return ok, err
}

func (r *kvPaymentRepository) ReplaceAll(ctx context.Context, payments []models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return saveCollection(ctx, r.store, storage.KeyPayments, payments)
}
