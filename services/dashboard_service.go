package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grindzone/grindzone-api/lifecycle"
	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/repositories"
)

type DashboardService interface {
	GetStats(ctx context.Context, now time.Time) (models.DashboardStats, error)
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	paymentRepo    repositories.PaymentRepository
}

func NewDashboardService(
	tournamentRepo repositories.TournamentRepository,
	paymentRepo repositories.PaymentRepository,
) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		paymentRepo:    paymentRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	var (
		tournaments []models.Tournament
		payments    []models.Payment
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tournaments, err = s.tournamentRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, handleRepositoryError(err, "dashboard stats")
	}

	stats := models.DashboardStats{
		TournamentsTotal: len(tournaments),
		PaymentsTotal:    len(payments),
	}
	for _, t := range tournaments {
		switch lifecycle.ResolveStatus(t.Status, t.Date, now) {
		case models.StatusUpcoming, models.StatusRegistration, models.StatusOngoing:
			stats.ActiveTournaments++
		}
		stats.RegisteredTeams += lifecycle.RegisteredTeams(t.Participants)
	}
	for _, p := range payments {
		stats.TotalPaymentsUSD += parseDollars(p.Amount)
	}
	return stats, nil
}
