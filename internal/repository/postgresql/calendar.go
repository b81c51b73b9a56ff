package postgresql

import (
	"context"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

type calendarRepositoryImpl struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.CalendarRepository {
	return &calendarRepositoryImpl{db: db}
}

func (r *calendarRepositoryImpl) loadDateMap(ctx context.Context, query string) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var date time.Time
		var value string
		if err := rows.Scan(&date, &value); err != nil {
			return nil, err
		}
		result[date.Format("2006-01-02")] = value
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSettings implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) GetSettings(ctx context.Context) (calendar.CalendarSettings, error) {
	q := GetQuerier(ctx, r.db)

	holidays, err := r.loadDateMap(ctx, `SELECT date, reason FROM calendar_holidays`)
	if err != nil {
		return calendar.CalendarSettings{}, err
	}
	notes, err := r.loadDateMap(ctx, `SELECT date, note FROM calendar_notes`)
	if err != nil {
		return calendar.CalendarSettings{}, err
	}

	rows, err := q.Query(ctx, `SELECT day FROM calendar_weekend_days ORDER BY day`)
	if err != nil {
		return calendar.CalendarSettings{}, err
	}
	defer rows.Close()

	var weekendDays []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return calendar.CalendarSettings{}, err
		}
		weekendDays = append(weekendDays, day)
	}
	if err = rows.Err(); err != nil {
		return calendar.CalendarSettings{}, err
	}

	return calendar.CalendarSettings{
		Holidays:    holidays,
		GlobalNotes: notes,
		WeekendDays: weekendDays,
	}, nil
}

// ApplySettings implements calendar.CalendarRepository. The client sends
// the full maps; diffing per key inside one transaction keeps concurrent
// editors from silently wiping each other's annotations.
func (r *calendarRepositoryImpl) ApplySettings(ctx context.Context, desired calendar.CalendarSettings) (calendar.CalendarSettings, error) {
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		current, err := r.GetSettings(txCtx)
		if err != nil {
			return err
		}

		if err := r.applyDateMap(txCtx, "calendar_holidays", "reason", current.Holidays, desired.Holidays); err != nil {
			return err
		}
		if err := r.applyDateMap(txCtx, "calendar_notes", "note", current.GlobalNotes, desired.GlobalNotes); err != nil {
			return err
		}
		return r.applyWeekendDays(txCtx, current.WeekendDays, desired.WeekendDays)
	})
	if err != nil {
		return calendar.CalendarSettings{}, err
	}

	return r.GetSettings(ctx)
}

func (r *calendarRepositoryImpl) applyDateMap(ctx context.Context, table, column string, current, desired map[string]string) error {
	q := GetQuerier(ctx, r.db)

	for date, value := range desired {
		if cur, ok := current[date]; ok && cur == value {
			continue
		}
		query := `
			INSERT INTO ` + table + ` (date, ` + column + `)
			VALUES ($1, $2)
			ON CONFLICT (date) DO UPDATE SET ` + column + ` = EXCLUDED.` + column + `, updated_at = NOW()
		`
		if _, err := q.Exec(ctx, query, date, value); err != nil {
			return err
		}
	}

	for date := range current {
		if _, ok := desired[date]; ok {
			continue
		}
		if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE date = $1`, date); err != nil {
			return err
		}
	}
	return nil
}

func (r *calendarRepositoryImpl) applyWeekendDays(ctx context.Context, current, desired []int) error {
	q := GetQuerier(ctx, r.db)

	currentSet := make(map[int]bool, len(current))
	for _, d := range current {
		currentSet[d] = true
	}
	desiredSet := make(map[int]bool, len(desired))
	for _, d := range desired {
		desiredSet[d] = true
	}

	for d := range desiredSet {
		if currentSet[d] {
			continue
		}
		if _, err := q.Exec(ctx, `INSERT INTO calendar_weekend_days (day) VALUES ($1) ON CONFLICT DO NOTHING`, d); err != nil {
			return err
		}
	}
	for d := range currentSet {
		if desiredSet[d] {
			continue
		}
		if _, err := q.Exec(ctx, `DELETE FROM calendar_weekend_days WHERE day = $1`, d); err != nil {
			return err
		}
	}
	return nil
}

// UpsertHoliday implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) UpsertHoliday(ctx context.Context, date time.Time, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calendar_holidays (date, reason)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET reason = EXCLUDED.reason, updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, date, reason)
	return err
}

// DeleteHoliday implements calendar.CalendarRepository.
func (r *calendarRepositoryImpl) DeleteHoliday(ctx context.Context, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM calendar_holidays WHERE date = $1`, date)
	return err
}
