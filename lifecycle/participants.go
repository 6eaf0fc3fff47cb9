// Package lifecycle содержит правила вместимости и фаз турнира:
// разбор строки участников "current/max teams" и вычисление статуса по дате.
package lifecycle

import (
	"fmt"
	"regexp"
	"strconv"
)

var participantsPattern = regexp.MustCompile(`(\d+)/(\d+)`)

// Capacity - числовое представление строки участников.
type Capacity struct {
	Current int
	Max     int
}

// Full reports whether no slots remain.
func (c Capacity) Full() bool {
	return c.Current >= c.Max
}

// Remaining returns the number of free slots, never negative.
func (c Capacity) Remaining() int {
	if c.Current >= c.Max {
		return 0
	}
	return c.Max - c.Current
}

// Label formats the capacity back into its display form.
func (c Capacity) Label() string {
	return FormatParticipants(c.Current, c.Max)
}

// ParseParticipants находит первую пару "digits/digits" в строке.
// ok == false означает, что вместимость неизвестна.
func ParseParticipants(label string) (Capacity, bool) {
	m := participantsPattern.FindStringSubmatch(label)
	if len(m) < 3 {
		return Capacity{}, false
	}
	current, err := strconv.Atoi(m[1])
	if err != nil {
		return Capacity{}, false
	}
	limit, err := strconv.Atoi(m[2])
	if err != nil {
		return Capacity{}, false
	}
	return Capacity{Current: current, Max: limit}, true
}

// FormatParticipants produces "<current>/<max> teams".
func FormatParticipants(current, limit int) string {
	return fmt.Sprintf("%d/%d teams", current, limit)
}

// IsFull - неразбираемая строка считается "не заполнен".
func IsFull(label string) bool {
	c, ok := ParseParticipants(label)
	if !ok {
		return false
	}
	return c.Full()
}

// RegisteredTeams returns the current count, or 0 when the label is unparseable.
func RegisteredTeams(label string) int {
	c, ok := ParseParticipants(label)
	if !ok {
		return 0
	}
	return c.Current
}
