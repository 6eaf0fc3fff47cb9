package storage

import (
	"context"
	"errors"
)

// Ключи коллекций в хранилище.
const (
	KeyTournaments = "tournaments"
	KeyPayments    = "payments"
)

// ErrUnavailable оборачивает любые сбои чтения/записи бэкенда.
var ErrUnavailable = errors.New("persistence unavailable")

// KVStore - узкий порт хранения: коллекции сериализуются в строку под фиксированным ключом.
type KVStore interface {
	// Get returns ok == false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
