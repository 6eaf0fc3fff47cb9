package services

import (
	"errors"
	"fmt"

	"github.com/grindzone/grindzone-api/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации
	ErrValidationFailed          = errors.New("validation failed")
	ErrTournamentInvalidDate     = errors.New("tournament date is not a recognised calendar date")
	ErrTournamentInvalidCapacity = errors.New("tournament max teams must be positive")

	ErrTournamentNotFound        = errors.New("tournament not found")
	ErrTournamentFull            = errors.New("tournament registration is full")
	ErrTournamentVersionConflict = errors.New("tournament was modified by another request")
	ErrTournamentIDConflict      = errors.New("tournament id already exists")

	ErrUploadsDisabled = errors.New("file uploads are not configured")
)

// handleRepositoryError переводит ошибки репозитория в ошибки сервиса.
func handleRepositoryError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentVersionConflict):
		return ErrTournamentVersionConflict
	case errors.Is(err, repositories.ErrTournamentIDConflict):
		return ErrTournamentIDConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
