package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/grindzone/grindzone-api/lifecycle"
	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/realtime"
	"github.com/grindzone/grindzone-api/repositories"
	"github.com/grindzone/grindzone-api/storage"
)

const (
	DefaultMaxTeams = 32
	filterAll       = "All"
	bannerKeyPrefix = "tournament_banners"
)

// Категории списка турниров.
const (
	CategoryUpcoming = "upcoming"
	CategoryOngoing  = "ongoing"
	CategoryPast     = "past"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Filter - фильтры списка. Пустое значение или "All" пропускает всё.
type Filter struct {
	Game     string
	Tier     string
	FullOnly bool
}

type ListFilter struct {
	Filter
	Category string
}

type CreateTournamentInput struct {
	Name        string       `json:"name"`
	Game        string       `json:"game"`
	Tier        string       `json:"tier"`
	Date        string       `json:"date"`
	MaxTeams    int          `json:"maxTeams"`
	PrizePool   string       `json:"prizePool"`
	EntryFee    string       `json:"entryFee"`
	Description string       `json:"description"`
	Rules       models.Rules `json:"rules"`
	Image       string       `json:"image"`
}

// UpdateTournamentInput - тело PUT. Повторяет ответ GET, поэтому клиент может
// отправить полученную запись обратно с правками.
// status, isFull и rules, совпадающие с показанными в GET, считаются неизменёнными:
// вычисленные значения не превращаются в сохранённые.
// statusOverride задаёт (или, пустой строкой, снимает) фазу явно.
type UpdateTournamentInput struct {
	ID             string                   `json:"id"`
	Slug           string                   `json:"slug"`
	Name           string                   `json:"name"`
	Game           string                   `json:"game"`
	Tier           string                   `json:"tier"`
	Date           string                   `json:"date"`
	Participants   string                   `json:"participants"`
	Image          string                   `json:"image"`
	ImageKey       string                   `json:"imageKey"`
	PrizePool      string                   `json:"prizePool"`
	EntryFee       string                   `json:"entryFee"`
	Status         models.TournamentStatus  `json:"status"`
	StatusOverride *models.TournamentStatus `json:"statusOverride,omitempty"`
	Description    string                   `json:"description"`
	Rules          models.Rules             `json:"rules"`
	IsFull         bool                     `json:"isFull"`
	Version        int                      `json:"version"`
	CreatedAt      *time.Time               `json:"createdAt"`
	UpdatedAt      *time.Time               `json:"updatedAt"`
}

type TournamentService struct {
	repo     repositories.TournamentRepository
	uploader storage.FileUploader
	hub      realtime.Broadcaster
	logger   *slog.Logger
	now      func() time.Time
}

// NewTournamentService. uploader и hub могут быть nil.
func NewTournamentService(
	repo repositories.TournamentRepository,
	uploader storage.FileUploader,
	hub realtime.Broadcaster,
	logger *slog.Logger,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{
		repo:     repo,
		uploader: uploader,
		hub:      hub,
		logger:   logger,
		now:      time.Now,
	}
}

// List возвращает все турниры с вычисленными статусом и заполненностью.
// Недоступное или повреждённое хранилище даёт пустой список.
func (s *TournamentService) List(ctx context.Context, now time.Time) []models.Tournament {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load tournaments, returning empty list", slog.Any("error", err))
		return []models.Tournament{}
	}

	out := make([]models.Tournament, len(tournaments))
	for i := range tournaments {
		out[i] = lifecycle.Annotate(tournaments[i], now)
	}
	return out
}

// Partition раскладывает уже аннотированные турниры по категориям.
func Partition(tournaments []models.Tournament) models.TournamentCategories {
	cats := models.TournamentCategories{
		Upcoming: []models.Tournament{},
		Ongoing:  []models.Tournament{},
		Past:     []models.Tournament{},
	}
	for _, t := range tournaments {
		switch t.Status {
		case models.StatusUpcoming, models.StatusRegistration:
			cats.Upcoming = append(cats.Upcoming, t)
		case models.StatusOngoing:
			cats.Ongoing = append(cats.Ongoing, t)
		default:
			cats.Past = append(cats.Past, t)
		}
	}
	return cats
}

func matches(value, want string) bool {
	return want == "" || want == filterAll || value == want
}

// FilterTournaments keeps the tournaments satisfying every criterion of f.
func FilterTournaments(tournaments []models.Tournament, f Filter) []models.Tournament {
	out := make([]models.Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if !matches(t.Game, f.Game) || !matches(t.Tier, f.Tier) {
			continue
		}
		if f.FullOnly && !t.IsFull {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *TournamentService) ListTournaments(ctx context.Context, f ListFilter) ([]models.Tournament, error) {
	tournaments := FilterTournaments(s.List(ctx, s.now()), f.Filter)

	switch strings.ToLower(strings.TrimSpace(f.Category)) {
	case "", strings.ToLower(filterAll):
		return tournaments, nil
	case CategoryUpcoming:
		return Partition(tournaments).Upcoming, nil
	case CategoryOngoing:
		return Partition(tournaments).Ongoing, nil
	case CategoryPast:
		return Partition(tournaments).Past, nil
	default:
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, f.Category)
	}
}

func (s *TournamentService) Categorize(ctx context.Context) models.TournamentCategories {
	return Partition(s.List(ctx, s.now()))
}

func (s *TournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	annotated := lifecycle.Annotate(*t, s.now())
	return &annotated, nil
}

// GetTournamentDetails - как GetTournament, но подставляет правила по умолчанию.
func (s *TournamentService) GetTournamentDetails(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(t.Rules) == 0 {
		t.Rules = append(models.Rules(nil), models.DefaultRules...)
	}
	return t, nil
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	game := strings.TrimSpace(input.Game)
	date := strings.TrimSpace(input.Date)
	if name == "" || game == "" || date == "" {
		return nil, fmt.Errorf("%w: name, game and date are required", ErrValidationFailed)
	}
	if _, ok := lifecycle.ParseDate(date, time.Local); !ok {
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidDate, date)
	}

	maxTeams := input.MaxTeams
	if maxTeams == 0 {
		maxTeams = DefaultMaxTeams
	}
	if maxTeams < 0 {
		return nil, ErrTournamentInvalidCapacity
	}

	t := &models.Tournament{
		ID:           uuid.NewString(),
		Slug:         slug.Make(name),
		Name:         name,
		Game:         game,
		Tier:         strings.TrimSpace(input.Tier),
		Date:         date,
		Participants: lifecycle.FormatParticipants(0, maxTeams),
		Image:        strings.TrimSpace(input.Image),
		PrizePool:    withDollarPrefix(input.PrizePool),
		EntryFee:     withDollarPrefix(input.EntryFee),
		Status:       models.StatusRegistration,
		Description:  strings.TrimSpace(input.Description),
		Rules:        input.Rules,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, handleRepositoryError(err, "create tournament")
	}

	s.logger.Info("tournament created", slog.String("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

// UpdateTournament заменяет редактируемые поля записи. Ненулевой Version проверяется.
// id, imageKey и createdAt клиентом не меняются.
func (s *TournamentService) UpdateTournament(ctx context.Context, id string, in UpdateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	participants := strings.TrimSpace(in.Participants)
	if participants == "" {
		return nil, fmt.Errorf("%w: participants is required", ErrValidationFailed)
	}
	if in.StatusOverride != nil && *in.StatusOverride != "" && !in.StatusOverride.Known() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, *in.StatusOverride)
	}

	now := s.now()
	updated, err := s.repo.Mutate(ctx, id, func(t *models.Tournament) (bool, error) {
		if in.Version != 0 && in.Version != t.Version {
			return false, repositories.ErrTournamentVersionConflict
		}
		shown := lifecycle.Annotate(*t, now)

		next := *t
		next.Name = name
		next.Game = strings.TrimSpace(in.Game)
		next.Tier = strings.TrimSpace(in.Tier)
		next.Date = strings.TrimSpace(in.Date)
		next.Participants = participants
		next.Image = strings.TrimSpace(in.Image)
		next.PrizePool = withDollarPrefix(in.PrizePool)
		next.EntryFee = withDollarPrefix(in.EntryFee)
		next.Description = strings.TrimSpace(in.Description)
		next.Slug = strings.TrimSpace(in.Slug)
		if next.Slug == "" {
			next.Slug = slug.Make(name)
		}

		switch {
		case in.StatusOverride != nil:
			next.Status = *in.StatusOverride
		case in.Status != shown.Status:
			if in.Status != "" && !in.Status.Known() {
				return false, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, in.Status)
			}
			next.Status = in.Status
		}

		// хранимый isFull - только ручное закрытие регистрации
		if in.IsFull != shown.IsFull {
			next.IsFull = in.IsFull
		}

		next.Rules = in.Rules
		if len(t.Rules) == 0 && rulesEqual(in.Rules, models.DefaultRules) {
			next.Rules = nil
		}

		*t = next
		return true, nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, "update tournament")
	}

	annotated := lifecycle.Annotate(*updated, now)
	s.broadcast(id, realtime.MessageTournamentUpdated, &annotated)
	return &annotated, nil
}

func rulesEqual(a, b models.Rules) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return handleRepositoryError(err, "delete tournament")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, "delete tournament")
	}

	s.deleteBanner(ctx, existing.ImageKey)
	s.logger.Info("tournament deleted", slog.String("tournament_id", id))
	s.broadcast(id, realtime.MessageTournamentDeleted, map[string]string{"id": id})
	return nil
}

// UploadImage сохраняет баннер турнира и записывает его публичный URL.
func (s *TournamentService) UploadImage(ctx context.Context, id, contentType string, reader io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", ErrValidationFailed, contentType)
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, handleRepositoryError(err, "upload image")
	}

	key := fmt.Sprintf("%s/%s/%s%s", bannerKeyPrefix, id, uuid.NewString(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	var oldKey string
	updated, err := s.repo.Mutate(ctx, id, func(t *models.Tournament) (bool, error) {
		oldKey = t.ImageKey
		t.ImageKey = result.Key
		t.Image = s.uploader.GetPublicURL(result.Key)
		return true, nil
	})
	if err != nil {
		s.deleteBanner(ctx, result.Key)
		return nil, handleRepositoryError(err, "upload image")
	}
	s.deleteBanner(ctx, oldKey)

	annotated := lifecycle.Annotate(*updated, s.now())
	s.broadcast(id, realtime.MessageTournamentUpdated, &annotated)
	return &annotated, nil
}

func (s *TournamentService) deleteBanner(ctx context.Context, key string) {
	if key == "" || s.uploader == nil {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete tournament banner", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *TournamentService) broadcast(id, msgType string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(realtime.RoomForTournament(id), realtime.Message{Type: msgType, Payload: payload})
}
