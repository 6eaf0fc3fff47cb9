package lifecycle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParticipants(t *testing.T) {
	tests := []struct {
		label   string
		want    Capacity
		wantOK  bool
		comment string
	}{
		{label: "45/64 teams", want: Capacity{45, 64}, wantOK: true},
		{label: "0/32 teams", want: Capacity{0, 32}, wantOK: true},
		{label: "Slots: 7/8 (teams)", want: Capacity{7, 8}, wantOK: true, comment: "surrounding text ignored"},
		{label: "1/2 then 3/4", want: Capacity{1, 2}, wantOK: true, comment: "first pair wins"},
		{label: "garbage", wantOK: false},
		{label: "", wantOK: false},
		{label: "10 teams", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseParticipants(tt.label)
			assert.Equal(t, tt.wantOK, ok, tt.comment)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, c := range []Capacity{{0, 1}, {5, 16}, {31, 32}, {64, 64}} {
		label := fmt.Sprintf("%d/%d teams", c.Current, c.Max)
		parsed, ok := ParseParticipants(label)
		require.True(t, ok)
		assert.Equal(t, c, parsed)
		assert.Equal(t, label, FormatParticipants(parsed.Current, parsed.Max))
		assert.Equal(t, label, parsed.Label())
	}
}

func TestIsFull(t *testing.T) {
	assert.False(t, IsFull("45/64 teams"))
	assert.True(t, IsFull("64/64 teams"))
	assert.True(t, IsFull("70/64 teams"))
	assert.False(t, IsFull("garbage"))
	assert.False(t, IsFull(""))
}

func TestCapacityRemaining(t *testing.T) {
	assert.Equal(t, 19, Capacity{45, 64}.Remaining())
	assert.Equal(t, 0, Capacity{64, 64}.Remaining())
	assert.Equal(t, 0, Capacity{70, 64}.Remaining())
}

func TestRegisteredTeams(t *testing.T) {
	assert.Equal(t, 45, RegisteredTeams("45/64 teams"))
	assert.Equal(t, 0, RegisteredTeams("TBD"))
}
