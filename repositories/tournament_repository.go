package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/storage"
)

var (
	ErrTournamentNotFound        = errors.New("tournament not found")
	ErrTournamentIDConflict      = errors.New("tournament id already exists")
	ErrTournamentVersionConflict = errors.New("tournament was modified concurrently")
)

// MutateFunc изменяет турнир на месте. changed == false - запись не сохраняется.
type MutateFunc func(t *models.Tournament) (changed bool, err error)

type TournamentRepository interface {
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	Create(ctx context.Context, tournament *models.Tournament) error
	Mutate(ctx context.Context, id string, fn MutateFunc) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
	Initialized(ctx context.Context) (bool, error)
	ReplaceAll(ctx context.Context, tournaments []models.Tournament) error
}

type kvTournamentRepository struct {
	store storage.KVStore
	// mu сериализует read-modify-write всей коллекции (один писатель на процесс).
	mu  sync.Mutex
	now func() time.Time
}

func NewKVTournamentRepository(store storage.KVStore) TournamentRepository {
	return &kvTournamentRepository{store: store, now: time.Now}
}

func (r *kvTournamentRepository) load(ctx context.Context) ([]models.Tournament, bool, error) {
	return loadCollection[models.Tournament](ctx, r.store, storage.KeyTournaments)
}

func (r *kvTournamentRepository) save(ctx context.Context, tournaments []models.Tournament) error {
	return saveCollection(ctx, r.store, storage.KeyTournaments, tournaments)
}

func indexOf(tournaments []models.Tournament, id string) int {
	for i := range tournaments {
		if tournaments[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *kvTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, _, err := r.load(ctx)
	return tournaments, err
}

func (r *kvTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournaments, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(tournaments, id)
	if i < 0 {
		return nil, ErrTournamentNotFound
	}
	t := tournaments[i]
	return &t, nil
}

// Create добавляет турнир в начало списка (сначала новые).
func (r *kvTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(tournaments, t.ID) >= 0 {
		return ErrTournamentIDConflict
	}

	now := r.now().UTC()
	t.Version = 1
	t.CreatedAt = &now
	t.UpdatedAt = &now

	tournaments = append([]models.Tournament{*t}, tournaments...)
	return r.save(ctx, tournaments)
}

// Mutate выполняет read-modify-write одной записи под блокировкой репозитория.
// Version увеличивается при каждом сохранении.
func (r *kvTournamentRepository) Mutate(ctx context.Context, id string, fn MutateFunc) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(tournaments, id)
	if i < 0 {
		return nil, ErrTournamentNotFound
	}

	t := tournaments[i]
	changed, err := fn(&t)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &t, nil
	}

	now := r.now().UTC()
	t.Version++
	t.UpdatedAt = &now
	tournaments[i] = t

	if err := r.save(ctx, tournaments); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *kvTournamentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tournaments, _, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(tournaments, id)
	if i < 0 {
		return ErrTournamentNotFound
	}

	tournaments = append(tournaments[:i], tournaments[i+1:]...)
	return r.save(ctx, tournaments)
}

func (r *kvTournamentRepository) Initialized(ctx context.Context) (bool, error) {
	_, ok, err := r.store.Get(ctx, storage.KeyTournaments)
	return ok, err
}

func (r *kvTournamentRepository) ReplaceAll(ctx context.Context, tournaments []models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, tournaments)
}
