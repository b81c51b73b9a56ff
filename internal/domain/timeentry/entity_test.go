package timeentry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustClock(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}

func TestComputeTotalHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"regular day", "09:00", "17:00", 8},
		{"half hour", "09:00", "09:30", 0.5},
		{"minute precision", "09:00", "17:20", 8.33},
		{"overnight shift", "22:00", "06:00", 8},
		{"just past midnight", "23:30", "00:15", 0.75},
		{"equal times wrap to full day", "08:00", "08:00", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotalHours(mustClock(t, tt.start), mustClock(t, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	pending := TimeEntry{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusApproved))
	assert.True(t, pending.CanTransitionTo(StatusRejected))
	assert.False(t, pending.CanTransitionTo(StatusPending))

	approved := TimeEntry{Status: StatusApproved}
	assert.False(t, approved.CanTransitionTo(StatusRejected))
	assert.False(t, approved.CanTransitionTo(StatusPending))

	rejected := TimeEntry{Status: StatusRejected}
	assert.False(t, rejected.CanTransitionTo(StatusApproved))
}

func TestIsEditable(t *testing.T) {
	assert.True(t, (&TimeEntry{Status: StatusPending}).IsEditable())
	assert.False(t, (&TimeEntry{Status: StatusApproved}).IsEditable())
	assert.False(t, (&TimeEntry{Status: StatusRejected}).IsEditable())
}
