package calendar

import "context"

type CalendarService interface {
	GetSettings(ctx context.Context, employeeID *string, year, month int) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	UpsertHoliday(ctx context.Context, req UpsertHolidayRequest) (map[string]string, error)

	ListPersonalNotes(ctx context.Context, employeeID string) ([]PersonalNoteResponse, error)
	GetPersonalNote(ctx context.Context, employeeID, date string) (PersonalNoteResponse, error)
	UpsertPersonalNote(ctx context.Context, req PersonalNoteRequest) (PersonalNoteResponse, error)
	DeletePersonalNote(ctx context.Context, employeeID, date string) error

	// HolidaysICal renders the holiday map as an iCalendar feed.
	HolidaysICal(ctx context.Context) ([]byte, error)
}
