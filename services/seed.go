package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gosimple/slug"

	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/repositories"
)

// DefaultTournaments - стартовый набор турниров для пустого хранилища.
func DefaultTournaments() []models.Tournament {
	tournaments := []models.Tournament{
		{
			ID:           "t1",
			Name:         "FreeFire Champions Cup",
			Game:         "Free Fire",
			Date:         "2025-05-10",
			Tier:         "Professional",
			Participants: "32/32 teams",
			PrizePool:    "$5,000",
			EntryFee:     "$50",
			Status:       models.StatusOngoing,
			Description:  "Join the most prestigious Free Fire tournament in the region. Test your skills against the best teams and compete for the grand prize.",
			Rules:        models.SplitRules("Teams must consist of 4 active players. All participants must be at least 16 years old. Double elimination format."),
		},
		{
			ID:           "t2",
			Name:         "PUBG Mobile Invitational",
			Game:         "PUBG",
			Date:         "2025-05-20",
			Tier:         "Professional",
			Participants: "48/48 teams",
			PrizePool:    "$8,000",
			EntryFee:     "$70",
			Status:       models.StatusUpcoming,
			Description:  "The PUBG Mobile Invitational brings together the best professional teams for an action-packed competition.",
			Rules:        models.SplitRules("Teams must consist of 4 active players. Round-robin group stage followed by double elimination."),
		},
		{
			ID:           "t3",
			Name:         "Valorant Pro League",
			Game:         "Valorant",
			Date:         "2025-04-15",
			Tier:         "Semi-Pro",
			Participants: "16/16 teams",
			PrizePool:    "$3,000",
			EntryFee:     "$30",
			Status:       models.StatusCompleted,
			Description:  "The Valorant Pro League featured intense tactical gameplay among the region's top semi-pro teams.",
			Rules:        models.SplitRules("Teams must consist of 5 active players. Single elimination format with best-of-three semifinals and finals."),
		},
		{
			ID:           "t4",
			Name:         "COD Mobile Showdown",
			Game:         "COD",
			Date:         "2025-05-05",
			Tier:         "Amateur",
			Participants: "24/24 teams",
			PrizePool:    "$4,500",
			EntryFee:     "$40",
			Status:       models.StatusRegistration,
			Description:  "The Call of Duty Mobile Showdown is perfect for amateur teams looking to make their mark in competitive gaming.",
			Rules:        models.SplitRules("Teams must consist of 5 active players. All participants must be at least 14 years old. Single elimination format."),
		},
	}
	for i := range tournaments {
		tournaments[i].Slug = slug.Make(tournaments[i].Name)
		tournaments[i].Version = 1
	}
	return tournaments
}

func DefaultPayments() []models.Payment {
	return []models.Payment{
		{ID: "p1", Team: "Phoenix Esports", Tournament: "FreeFire Cup", Amount: "$250", Date: "2025-04-25"},
		{ID: "p2", Team: "Viper Gaming", Tournament: "PUBG Mobile", Amount: "$300", Date: "2025-04-24"},
		{ID: "p3", Team: "DarkKnights", Tournament: "Valorant Pro", Amount: "$200", Date: "2025-04-23"},
		{ID: "p4", Team: "Elite Squad", Tournament: "COD Mobile", Amount: "$250", Date: "2025-04-22"},
	}
}

// Seed записывает данные по умолчанию под ключи, которые ещё ни разу не записывались.
// Пустой, но существующий список не перезаписывается.
func Seed(ctx context.Context, tournaments repositories.TournamentRepository, payments repositories.PaymentRepository, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ok, err := tournaments.Initialized(ctx)
	if err != nil {
		return fmt.Errorf("seed tournaments: %w", err)
	}
	if !ok {
		defaults := DefaultTournaments()
		if err := tournaments.ReplaceAll(ctx, defaults); err != nil {
			return fmt.Errorf("seed tournaments: %w", err)
		}
		logger.Info("seeded default tournaments", slog.Int("count", len(defaults)))
	}

	ok, err = payments.Initialized(ctx)
	if err != nil {
		return fmt.Errorf("seed payments: %w", err)
	}
	if !ok {
		defaults := DefaultPayments()
		if err := payments.ReplaceAll(ctx, defaults); err != nil {
			return fmt.Errorf("seed payments: %w", err)
		}
		logger.Info("seeded default payments", slog.Int("count", len(defaults)))
	}
	return nil
}
