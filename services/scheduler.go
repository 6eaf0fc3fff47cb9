package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/grindzone/grindzone-api/lifecycle"
	"github.com/grindzone/grindzone-api/metrics"
	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/realtime"
	"github.com/grindzone/grindzone-api/repositories"
)

const DefaultSweepInterval = 30 * time.Second

// StatusChange - фаза турнира сменилась между двумя проходами.
type StatusChange struct {
	TournamentID string                  `json:"id"`
	From         models.TournamentStatus `json:"from"`
	To           models.TournamentStatus `json:"to"`
}

// StatusSweeper периодически пересчитывает фазы турниров и рассылает изменения.
// Первый проход только запоминает состояние.
type StatusSweeper struct {
	repo     repositories.TournamentRepository
	hub      realtime.Broadcaster
	metrics  metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
	mu       sync.Mutex
	previous map[string]models.TournamentStatus
	primed   bool
}

func NewStatusSweeper(repo repositories.TournamentRepository, hub realtime.Broadcaster, m metrics.Metrics, logger *slog.Logger) *StatusSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusSweeper{
		repo:     repo,
		hub:      hub,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		previous: make(map[string]models.TournamentStatus),
	}
}

// Sweep выполняет один проход и возвращает обнаруженные изменения.
func (s *StatusSweeper) Sweep(ctx context.Context) ([]StatusChange, error) {
	tournaments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("status sweep: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	current := make(map[string]models.TournamentStatus, len(tournaments))
	var changes []StatusChange
	for _, t := range tournaments {
		status := lifecycle.ResolveStatus(t.Status, t.Date, now)
		current[t.ID] = status

		prev, seen := s.previous[t.ID]
		if !s.primed || !seen || prev == status {
			continue
		}
		changes = append(changes, StatusChange{TournamentID: t.ID, From: prev, To: status})
	}
	s.previous = current
	s.primed = true

	for _, c := range changes {
		s.logger.Info("tournament status changed",
			slog.String("tournament_id", c.TournamentID),
			slog.String("from", string(c.From)),
			slog.String("to", string(c.To)))
		if s.metrics != nil {
			s.metrics.IncStatusChanges()
		}
		if s.hub != nil {
			s.hub.BroadcastToRoom(realtime.RoomForTournament(c.TournamentID), realtime.Message{
				Type:    realtime.MessageStatusChanged,
				Payload: c,
			})
		}
	}
	return changes, nil
}

// Start регистрирует проход как задачу gocron и запускает планировщик.
// Остановка - через Shutdown у возвращённого планировщика.
func (s *StatusSweeper) Start(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("status sweep failed", slog.Any("error", err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule status sweep: %w", err)
	}

	sched.Start()
	s.logger.Info("tournament status sweeper started", slog.Duration("interval", interval))
	return sched, nil
}
