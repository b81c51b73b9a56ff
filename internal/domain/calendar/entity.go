package calendar

import "time"

// CalendarSettings holds the shared calendar annotations: public holidays
// and global notes keyed by ISO date (YYYY-MM-DD), plus the set of weekday
// indexes treated as weekend (0 = Sunday through 6 = Saturday).
type CalendarSettings struct {
	Holidays    map[string]string
	GlobalNotes map[string]string
	WeekendDays []int
	UpdatedAt   time.Time
}

// HasWeekend reports whether the weekday index is marked as weekend.
func (s *CalendarSettings) HasWeekend(day int) bool {
	for _, d := range s.WeekendDays {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleWeekend flips the weekend flag for a weekday index. Toggling the
// same day twice restores the original set.
func (s *CalendarSettings) ToggleWeekend(day int) {
	for i, d := range s.WeekendDays {
		if d == day {
			s.WeekendDays = append(s.WeekendDays[:i], s.WeekendDays[i+1:]...)
			return
		}
	}
	s.WeekendDays = append(s.WeekendDays, day)
}

// PersonalNote is a private per-employee calendar annotation.
type PersonalNote struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
