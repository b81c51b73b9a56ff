package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendarRepo struct {
	settings calendar.CalendarSettings
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{settings: calendar.CalendarSettings{
		Holidays:    map[string]string{},
		GlobalNotes: map[string]string{},
		WeekendDays: []int{0, 6},
	}}
}

func (f *fakeCalendarRepo) GetSettings(_ context.Context) (calendar.CalendarSettings, error) {
	return f.settings, nil
}

func (f *fakeCalendarRepo) ApplySettings(_ context.Context, desired calendar.CalendarSettings) (calendar.CalendarSettings, error) {
	f.settings = desired
	return f.settings, nil
}

func (f *fakeCalendarRepo) UpsertHoliday(_ context.Context, date time.Time, reason string) error {
	f.settings.Holidays[date.Format("2006-01-02")] = reason
	return nil
}

func (f *fakeCalendarRepo) DeleteHoliday(_ context.Context, date time.Time) error {
	delete(f.settings.Holidays, date.Format("2006-01-02"))
	return nil
}

type fakeNoteRepo struct {
	notes map[string]map[string]calendar.PersonalNote // employee -> date -> note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]map[string]calendar.PersonalNote)}
}

func (f *fakeNoteRepo) ListByEmployee(_ context.Context, employeeID string) ([]calendar.PersonalNote, error) {
	var out []calendar.PersonalNote
	for _, n := range f.notes[employeeID] {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNoteRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (calendar.PersonalNote, error) {
	n, ok := f.notes[employeeID][date.Format("2006-01-02")]
	if !ok {
		return calendar.PersonalNote{}, calendar.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeNoteRepo) Upsert(_ context.Context, n calendar.PersonalNote) (calendar.PersonalNote, error) {
	if f.notes[n.EmployeeID] == nil {
		f.notes[n.EmployeeID] = make(map[string]calendar.PersonalNote)
	}
	n.ID = n.EmployeeID + "/" + n.Date.Format("2006-01-02")
	f.notes[n.EmployeeID][n.Date.Format("2006-01-02")] = n
	return n, nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, employeeID string, date time.Time) error {
	key := date.Format("2006-01-02")
	if _, ok := f.notes[employeeID][key]; !ok {
		return calendar.ErrNoteNotFound
	}
	delete(f.notes[employeeID], key)
	return nil
}

func newTestService(calRepo *fakeCalendarRepo, noteRepo *fakeNoteRepo) *CalendarServiceImpl {
	svc := NewCalendarService(calRepo, noteRepo).(*CalendarServiceImpl)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGetSettingsIncludesGrid(t *testing.T) {
	svc := newTestService(newFakeCalendarRepo(), newFakeNoteRepo())

	resp, err := svc.GetSettings(context.Background(), nil, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6}, resp.WeekendDays)
	assert.Equal(t, 2026, resp.Grid.Year)
	assert.Len(t, resp.Grid.Cells, 6+31)
	assert.Nil(t, resp.PersonalNotes)
}

func TestGetSettingsWithEmployeeOverlay(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	svc := newTestService(newFakeCalendarRepo(), noteRepo)

	_, err := svc.UpsertPersonalNote(context.Background(), calendar.PersonalNoteRequest{
		EmployeeID: "emp-1",
		Date:       "2026-08-30",
		Note:       "dentist",
	})
	require.NoError(t, err)

	empID := "emp-1"
	resp, err := svc.GetSettings(context.Background(), &empID, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2026-08-30": "dentist"}, resp.PersonalNotes)
}

func TestGetPersonalNote(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	svc := newTestService(newFakeCalendarRepo(), noteRepo)

	_, err := svc.UpsertPersonalNote(context.Background(), calendar.PersonalNoteRequest{
		EmployeeID: "emp-1",
		Date:       "2026-08-30",
		Note:       "dentist",
	})
	require.NoError(t, err)

	note, err := svc.GetPersonalNote(context.Background(), "emp-1", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "dentist", note.Note)
	assert.Equal(t, "2026-08-30", note.Date)

	_, err = svc.GetPersonalNote(context.Background(), "emp-1", "2026-08-31")
	assert.ErrorIs(t, err, calendar.ErrNoteNotFound)

	// Another employee never sees it.
	_, err = svc.GetPersonalNote(context.Background(), "emp-2", "2026-08-30")
	assert.ErrorIs(t, err, calendar.ErrNoteNotFound)
}

func TestWeekendToggleRoundTrip(t *testing.T) {
	calRepo := newFakeCalendarRepo()
	svc := newTestService(calRepo, newFakeNoteRepo())

	base := calendar.UpdateSettingsRequest{
		Holidays:    map[string]string{},
		Notes:       map[string]string{},
		WeekendDays: []int{0, 6, 5},
	}
	resp, err := svc.UpdateSettings(context.Background(), base)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 5, 6}, resp.WeekendDays)

	base.WeekendDays = []int{0, 6}
	resp, err = svc.UpdateSettings(context.Background(), base)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 6}, resp.WeekendDays)
}

func TestUpdateSettingsRejectsBadKeys(t *testing.T) {
	svc := newTestService(newFakeCalendarRepo(), newFakeNoteRepo())

	_, err := svc.UpdateSettings(context.Background(), calendar.UpdateSettingsRequest{
		Holidays: map[string]string{"08/28/2026": "bad"},
	})
	assert.Error(t, err)

	_, err = svc.UpdateSettings(context.Background(), calendar.UpdateSettingsRequest{
		WeekendDays: []int{7},
	})
	assert.Error(t, err)
}

func TestUpsertHolidayReturnsMergedMap(t *testing.T) {
	calRepo := newFakeCalendarRepo()
	calRepo.settings.Holidays["2026-01-01"] = "New Year"
	svc := newTestService(calRepo, newFakeNoteRepo())

	holidays, err := svc.UpsertHoliday(context.Background(), calendar.UpsertHolidayRequest{
		Date:   "2026-12-25",
		Reason: "Christmas",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"2026-01-01": "New Year",
		"2026-12-25": "Christmas",
	}, holidays)

	holidays, err = svc.UpsertHoliday(context.Background(), calendar.UpsertHolidayRequest{
		Date:   "2026-12-25",
		Remove: true,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2026-01-01": "New Year"}, holidays)
}

func TestHolidaysICal(t *testing.T) {
	calRepo := newFakeCalendarRepo()
	calRepo.settings.Holidays["2026-12-25"] = "Christmas"
	svc := newTestService(calRepo, newFakeNoteRepo())

	data, err := svc.HolidaysICal(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "SUMMARY:Christmas")
}
