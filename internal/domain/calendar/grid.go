package calendar

import "time"

// GridCell is one slot in a rendered month. Leading cells before the first
// of the month are blank so that every row starts on Sunday.
type GridCell struct {
	Day     int    `json:"day"`
	Date    string `json:"date,omitempty"`
	IsToday bool   `json:"is_today"`
}

// Blank reports whether the cell is a leading filler before day 1.
func (c GridCell) Blank() bool {
	return c.Day == 0
}

type MonthGrid struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Cells []GridCell `json:"cells"`
}

// BuildMonthGrid lays out a month as a flat cell list: one blank cell per
// weekday before the 1st (Sunday-first), then one cell per day. At most one
// cell carries IsToday, and only when the displayed month is the current one.
func BuildMonthGrid(year int, month time.Month, now time.Time) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]GridCell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, GridCell{})
	}

	sameMonth := now.Year() == year && now.Month() == month
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, GridCell{
			Day:     day,
			Date:    time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			IsToday: sameMonth && now.Day() == day,
		})
	}

	return MonthGrid{Year: year, Month: int(month), Cells: cells}
}
