package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grindzone/grindzone-api/storage"
)

// ErrCorruptCollection - значение под ключом не является JSON-массивом записей.
var ErrCorruptCollection = errors.New("stored collection is corrupt")

// loadCollection читает и декодирует коллекцию. exists == false, если ключ ещё не записывался.
func loadCollection[T any](ctx context.Context, store storage.KVStore, key string) (items []T, exists bool, err error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, ok, nil
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, true, fmt.Errorf("%w: key %q: %v", ErrCorruptCollection, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

func saveCollection[T any](ctx context.Context, store storage.KVStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
