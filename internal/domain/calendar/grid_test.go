package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildMonthGrid(t *testing.T) {
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)

	t.Run("leading blanks match weekday of the first", func(t *testing.T) {
		// 2026-08-01 is a Saturday, so six blank cells lead the month.
		grid := BuildMonthGrid(2026, time.August, now)

		blanks := 0
		for _, c := range grid.Cells {
			if !c.Blank() {
				break
			}
			blanks++
		}
		assert.Equal(t, 6, blanks)
		assert.Len(t, grid.Cells, 6+31)
	})

	t.Run("no blanks when month starts on sunday", func(t *testing.T) {
		// 2026-02-01 is a Sunday.
		grid := BuildMonthGrid(2026, time.February, now)
		assert.False(t, grid.Cells[0].Blank())
		assert.Len(t, grid.Cells, 28)
	})

	t.Run("today flagged only in current month", func(t *testing.T) {
		grid := BuildMonthGrid(2026, time.August, now)

		var todays []GridCell
		for _, c := range grid.Cells {
			if c.IsToday {
				todays = append(todays, c)
			}
		}
		assert.Len(t, todays, 1)
		assert.Equal(t, 28, todays[0].Day)
		assert.Equal(t, "2026-08-28", todays[0].Date)

		other := BuildMonthGrid(2026, time.July, now)
		for _, c := range other.Cells {
			assert.False(t, c.IsToday)
		}
	})

	t.Run("cells carry iso dates", func(t *testing.T) {
		grid := BuildMonthGrid(2026, time.February, now)
		assert.Equal(t, "2026-02-01", grid.Cells[0].Date)
		assert.Equal(t, "2026-02-28", grid.Cells[len(grid.Cells)-1].Date)
	})
}

func TestToggleWeekend(t *testing.T) {
	s := CalendarSettings{WeekendDays: []int{0, 6}}

	s.ToggleWeekend(5)
	assert.True(t, s.HasWeekend(5))

	s.ToggleWeekend(5)
	assert.False(t, s.HasWeekend(5))
	assert.Equal(t, []int{0, 6}, s.WeekendDays)
}
