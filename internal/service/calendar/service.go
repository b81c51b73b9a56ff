package calendar

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/punchstack/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/validator"
)

type CalendarServiceImpl struct {
	calendar.CalendarRepository
	calendar.PersonalNoteRepository
	now func() time.Time
}

func NewCalendarService(calRepo calendar.CalendarRepository, noteRepo calendar.PersonalNoteRepository) calendar.CalendarService {
	return &CalendarServiceImpl{
		CalendarRepository:     calRepo,
		PersonalNoteRepository: noteRepo,
		now:                    time.Now,
	}
}

func (s *CalendarServiceImpl) toSettingsResponse(ctx context.Context, settings calendar.CalendarSettings, employeeID *string, year, month int) (calendar.SettingsResponse, error) {
	now := s.now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	resp := calendar.SettingsResponse{
		Holidays:    settings.Holidays,
		Notes:       settings.GlobalNotes,
		WeekendDays: settings.WeekendDays,
		Grid:        calendar.BuildMonthGrid(year, time.Month(month), now),
	}
	if resp.WeekendDays == nil {
		// Never configured: Saturday and Sunday.
		resp.WeekendDays = []int{0, 6}
	}

	if employeeID != nil {
		notes, err := s.PersonalNoteRepository.ListByEmployee(ctx, *employeeID)
		if err != nil {
			return calendar.SettingsResponse{}, fmt.Errorf("failed to load personal notes: %w", err)
		}
		personal := make(map[string]string, len(notes))
		for _, n := range notes {
			personal[n.Date.Format("2006-01-02")] = n.Note
		}
		resp.PersonalNotes = personal
	}

	return resp, nil
}

// GetSettings implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetSettings(ctx context.Context, employeeID *string, year, month int) (calendar.SettingsResponse, error) {
	settings, err := s.CalendarRepository.GetSettings(ctx)
	if err != nil {
		return calendar.SettingsResponse{}, fmt.Errorf("failed to load calendar settings: %w", err)
	}
	return s.toSettingsResponse(ctx, settings, employeeID, year, month)
}

// UpdateSettings implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateSettings(ctx context.Context, req calendar.UpdateSettingsRequest) (calendar.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.SettingsResponse{}, err
	}

	applied, err := s.CalendarRepository.ApplySettings(ctx, calendar.CalendarSettings{
		Holidays:    req.Holidays,
		GlobalNotes: req.Notes,
		WeekendDays: req.WeekendDays,
	})
	if err != nil {
		return calendar.SettingsResponse{}, err
	}
	return s.toSettingsResponse(ctx, applied, nil, 0, 0)
}

// UpsertHoliday implements calendar.CalendarService. Returns the full
// merged holiday map; clients replace theirs wholesale.
func (s *CalendarServiceImpl) UpsertHoliday(ctx context.Context, req calendar.UpsertHolidayRequest) (map[string]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if req.Remove {
		if err := s.CalendarRepository.DeleteHoliday(ctx, date); err != nil {
			return nil, err
		}
	} else {
		if err := s.CalendarRepository.UpsertHoliday(ctx, date, req.Reason); err != nil {
			return nil, err
		}
	}

	settings, err := s.CalendarRepository.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return settings.Holidays, nil
}

// ListPersonalNotes implements calendar.CalendarService.
func (s *CalendarServiceImpl) ListPersonalNotes(ctx context.Context, employeeID string) ([]calendar.PersonalNoteResponse, error) {
	notes, err := s.PersonalNoteRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal notes: %w", err)
	}

	responses := make([]calendar.PersonalNoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, calendar.ToNoteResponse(n))
	}
	return responses, nil
}

// GetPersonalNote implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetPersonalNote(ctx context.Context, employeeID, dateStr string) (calendar.PersonalNoteResponse, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return calendar.PersonalNoteResponse{}, calendar.ErrNoteNotFound
	}

	note, err := s.PersonalNoteRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return calendar.PersonalNoteResponse{}, err
	}
	return calendar.ToNoteResponse(note), nil
}

// UpsertPersonalNote implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpsertPersonalNote(ctx context.Context, req calendar.PersonalNoteRequest) (calendar.PersonalNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.PersonalNoteResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	saved, err := s.PersonalNoteRepository.Upsert(ctx, calendar.PersonalNote{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Note:       req.Note,
	})
	if err != nil {
		return calendar.PersonalNoteResponse{}, err
	}
	return calendar.ToNoteResponse(saved), nil
}

// DeletePersonalNote implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeletePersonalNote(ctx context.Context, employeeID, dateStr string) error {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return calendar.ErrNoteNotFound
	}
	return s.PersonalNoteRepository.Delete(ctx, employeeID, date)
}

// HolidaysICal implements calendar.CalendarService. Each holiday becomes
// an all-day VEVENT.
func (s *CalendarServiceImpl) HolidaysICal(ctx context.Context) ([]byte, error) {
	settings, err := s.CalendarRepository.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(settings.Holidays))
	for date := range settings.Holidays {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//punchclock//holidays//EN")

	stamp := s.now().UTC()
	for _, dateStr := range dates {
		date, ok := validator.IsValidDate(dateStr)
		if !ok {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, dateStr+"@punchclock")
		event.Props.SetText(ical.PropSummary, settings.Holidays[dateStr])
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		event.Props.SetDateTime(ical.PropDateTimeStart, date)
		event.Props.SetDateTime(ical.PropDateTimeEnd, date.AddDate(0, 0, 1))
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
