package models

import (
	"encoding/json"
	"strings"
	"time"
)

// TournamentStatus представляет фазу жизненного цикла турнира.
type TournamentStatus string

const (
	StatusUpcoming     TournamentStatus = "Upcoming"
	StatusRegistration TournamentStatus = "Registration"
	StatusOngoing      TournamentStatus = "Ongoing"
	StatusCompleted    TournamentStatus = "Completed"
)

// Known reports whether s is one of the four lifecycle phases.
func (s TournamentStatus) Known() bool {
	switch s {
	case StatusUpcoming, StatusRegistration, StatusOngoing, StatusCompleted:
		return true
	default:
		return false
	}
}

// Tournament представляет турнир в каноническом виде.
type Tournament struct {
	ID           string           `json:"id"`
	Slug         string           `json:"slug,omitempty"`
	Name         string           `json:"name"`
	Game         string           `json:"game"`
	Tier         string           `json:"tier,omitempty"`
	Date         string           `json:"date"`
	Participants string           `json:"participants"`
	Image        string           `json:"image,omitempty"`
	ImageKey     string           `json:"imageKey,omitempty"`
	PrizePool    string           `json:"prizePool,omitempty"`
	EntryFee     string           `json:"entryFee,omitempty"`
	Status       TournamentStatus `json:"status,omitempty"`
	Description  string           `json:"description,omitempty"`
	Rules        Rules            `json:"rules,omitempty"`
	IsFull       bool             `json:"isFull,omitempty"`
	Version      int              `json:"version,omitempty"`
	CreatedAt    *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
}

// UnmarshalJSON принимает записи старого формата: "_id" вместо "id".
func (t *Tournament) UnmarshalJSON(data []byte) error {
	type plain Tournament
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.MongoID
	}
	return nil
}

// Rules is the canonical ordered rule list. Stored records may carry a single
// sentence-delimited string instead of an array; both decode into Rules.
type Rules []string

func (r *Rules) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*r = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*r = SplitRules(text)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	out := make(Rules, 0, len(list))
	for _, rule := range list {
		if rule = strings.TrimSpace(rule); rule != "" {
			out = append(out, rule)
		}
	}
	*r = out
	return nil
}

// SplitRules разбивает строку правил по ". " и отбрасывает пустые части.
func SplitRules(text string) Rules {
	parts := strings.Split(text, ". ")
	rules := make(Rules, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, p)
		}
	}
	return rules
}

// DefaultRules применяются при показе турнира без сохранённых правил.
var DefaultRules = Rules{
	"Teams must consist of 4 active players",
	"All participants must be at least 16 years old",
	"No cheating or exploits allowed",
	"Players must be available for all scheduled matches",
}

// TournamentCategories - турниры, сгруппированные по фазе для списка на главной.
type TournamentCategories struct {
	Upcoming []Tournament `json:"upcoming"`
	Ongoing  []Tournament `json:"ongoing"`
	Past     []Tournament `json:"past"`
}
