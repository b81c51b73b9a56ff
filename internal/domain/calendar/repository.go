package calendar

import (
	"context"
	"time"
)

type CalendarRepository interface {
	GetSettings(ctx context.Context) (CalendarSettings, error)
	// ApplySettings diffs the desired state against the stored one and
	// upserts/deletes per key inside a single transaction, so concurrent
	// writers only clobber the keys they actually changed.
	ApplySettings(ctx context.Context, desired CalendarSettings) (CalendarSettings, error)
	UpsertHoliday(ctx context.Context, date time.Time, reason string) error
	DeleteHoliday(ctx context.Context, date time.Time) error
}

type PersonalNoteRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]PersonalNote, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (PersonalNote, error)
	Upsert(ctx context.Context, n PersonalNote) (PersonalNote, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
}
