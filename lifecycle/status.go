package lifecycle

import (
	"strings"
	"time"

	"github.com/grindzone/grindzone-api/models"
)

const (
	registrationLeadDays = 3
	tournamentLengthDays = 1
)

// dateLayouts - форматы дат, встречающиеся в сохранённых записях.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate parses a tournament date as a calendar date in loc.
// RFC 3339 values keep their own offset.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveStatus вычисляет фазу турнира по дате и текущему времени.
//
//	now < date-3d          -> Upcoming
//	date-3d <= now < date  -> Registration
//	date <= now < date+1d  -> Ongoing
//	now >= date+1d         -> Completed
//
// Неразбираемая дата даёт Upcoming.
func DeriveStatus(date string, now time.Time) models.TournamentStatus {
	start, ok := ParseDate(date, now.Location())
	if !ok {
		return models.StatusUpcoming
	}

	regStart := start.AddDate(0, 0, -registrationLeadDays)
	end := start.AddDate(0, 0, tournamentLengthDays)

	switch {
	case now.Before(regStart):
		return models.StatusUpcoming
	case now.Before(start):
		return models.StatusRegistration
	case now.Before(end):
		return models.StatusOngoing
	default:
		return models.StatusCompleted
	}
}

// ResolveStatus applies the precedence rule: a stored status, when present,
// wins over the derived one.
func ResolveStatus(stored models.TournamentStatus, date string, now time.Time) models.TournamentStatus {
	if strings.TrimSpace(string(stored)) != "" {
		return stored
	}
	return DeriveStatus(date, now)
}

// Annotate returns a copy of t with status and fullness resolved for now.
func Annotate(t models.Tournament, now time.Time) models.Tournament {
	t.Status = ResolveStatus(t.Status, t.Date, now)
	t.IsFull = t.IsFull || IsFull(t.Participants)
	return t
}
