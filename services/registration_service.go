package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grindzone/grindzone-api/lifecycle"
	"github.com/grindzone/grindzone-api/metrics"
	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/realtime"
	"github.com/grindzone/grindzone-api/repositories"
)

const (
	DefaultTeamName = "Your Team"
	DefaultEntryFee = "$50"
	paymentDateForm = "2006-01-02"
)

type RegisterInput struct {
	Team string `json:"team"`
}

// RegistrationResult - итог регистрации.
// CapacityTracked == false: строка участников не разобрана, счётчик не менялся.
// PaymentRecorded == false: вместимость обновлена, но платёж записать не удалось.
type RegistrationResult struct {
	Tournament      models.Tournament `json:"tournament"`
	Payment         models.Payment    `json:"payment"`
	CapacityTracked bool              `json:"capacityTracked"`
	PaymentRecorded bool              `json:"paymentRecorded"`
}

type RegistrationService struct {
	tournaments repositories.TournamentRepository
	payments    repositories.PaymentRepository
	metrics     metrics.Metrics
	hub         realtime.Broadcaster
	logger      *slog.Logger
	now         func() time.Time
}

func NewRegistrationService(
	tournaments repositories.TournamentRepository,
	payments repositories.PaymentRepository,
	m metrics.Metrics,
	hub realtime.Broadcaster,
	logger *slog.Logger,
) *RegistrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistrationService{
		tournaments: tournaments,
		payments:    payments,
		metrics:     m,
		hub:         hub,
		logger:      logger,
		now:         time.Now,
	}
}

// Register занимает одно место в турнире и записывает платёж.
// Чтение-изменение-запись турнира выполняется под блокировкой репозитория.
func (s *RegistrationService) Register(ctx context.Context, tournamentID string, input RegisterInput) (*RegistrationResult, error) {
	tracked := false
	updated, err := s.tournaments.Mutate(ctx, tournamentID, func(t *models.Tournament) (bool, error) {
		if t.IsFull || lifecycle.IsFull(t.Participants) {
			return false, ErrTournamentFull
		}
		capacity, ok := lifecycle.ParseParticipants(t.Participants)
		if !ok {
			return false, nil
		}
		tracked = true
		capacity.Current++
		t.Participants = capacity.Label()
		t.IsFull = capacity.Full()
		return true, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTournamentFull):
			s.observe(metrics.OutcomeFull)
			return nil, ErrTournamentFull
		case errors.Is(err, repositories.ErrTournamentNotFound):
			s.observe(metrics.OutcomeNotFound)
			return nil, ErrTournamentNotFound
		default:
			s.observe(metrics.OutcomeError)
			return nil, handleRepositoryError(err, "register")
		}
	}

	now := s.now()
	payment := models.Payment{
		ID:         uuid.NewString(),
		Team:       defaultString(input.Team, DefaultTeamName),
		Tournament: updated.Name,
		Amount:     defaultString(updated.EntryFee, DefaultEntryFee),
		Date:       now.Format(paymentDateForm),
	}

	result := &RegistrationResult{
		Tournament:      lifecycle.Annotate(*updated, now),
		Payment:         payment,
		CapacityTracked: tracked,
	}

	if err := s.payments.Append(ctx, payment); err != nil {
		s.logger.Error("capacity updated but payment was not recorded",
			slog.String("tournament_id", tournamentID),
			slog.String("payment_id", payment.ID),
			slog.Any("error", err))
		if s.metrics != nil {
			s.metrics.IncPaymentsFailed()
		}
	} else {
		result.PaymentRecorded = true
		if s.metrics != nil {
			s.metrics.IncPaymentsRecorded()
		}
	}

	if tracked {
		s.observe(metrics.OutcomeRegistered)
	} else {
		s.logger.Warn("participants label not parseable, capacity not tracked",
			slog.String("tournament_id", tournamentID),
			slog.String("participants", updated.Participants))
		s.observe(metrics.OutcomeUntracked)
	}

	s.logger.Info("team registered",
		slog.String("tournament_id", tournamentID),
		slog.String("team", payment.Team),
		slog.String("participants", updated.Participants))

	if s.hub != nil {
		s.hub.BroadcastToRoom(realtime.RoomForTournament(tournamentID), realtime.Message{
			Type:    realtime.MessageTournamentUpdated,
			Payload: result.Tournament,
		})
	}
	return result, nil
}

func (s *RegistrationService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncRegistrations(outcome)
	}
}
