package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/punchstack/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchstack/punchclock-backend-go/internal/handler/http/response"
)

type CalendarHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	UpdateGlobalHoliday(w http.ResponseWriter, r *http.Request)
	HolidaysICal(w http.ResponseWriter, r *http.Request)
	GetPersonalNotes(w http.ResponseWriter, r *http.Request)
	UpdatePersonalNote(w http.ResponseWriter, r *http.Request)
	DeletePersonalNote(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &CalendarHandlerImpl{calendarService: calendarService}
}

// GetSettings implements CalendarHandler. Personal notes are overlaid for
// the calling employee; year/month select which grid to build.
func (h *CalendarHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	year, _ := strconv.Atoi(query.Get("year"))
	month, _ := strconv.Atoi(query.Get("month"))

	var employeeID *string
	if actor.EmployeeID != "" {
		employeeID = &actor.EmployeeID
	}
	// Admins may view another employee's note overlay.
	if v := query.Get("employee_id"); v != "" && actor.IsAdmin {
		employeeID = &v
	}

	settings, err := h.calendarService.GetSettings(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

// UpdateSettings implements CalendarHandler.
func (h *CalendarHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.calendarService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Calendar settings updated successfully", settings)
}

// UpdateGlobalHoliday implements CalendarHandler. Adds or removes a single
// holiday and returns the full holiday map.
func (h *CalendarHandlerImpl) UpdateGlobalHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.UpsertHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	holidays, err := h.calendarService.UpsertHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday updated successfully", map[string]any{"holidays": holidays})
}

// HolidaysICal implements CalendarHandler. Serves the holiday map as an
// iCalendar feed for external calendar apps.
func (h *CalendarHandlerImpl) HolidaysICal(w http.ResponseWriter, r *http.Request) {
	feed, err := h.calendarService.HolidaysICal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="holidays.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(feed)
}

// GetPersonalNotes implements CalendarHandler. With a date query parameter
// it returns that single note; otherwise the full list.
func (h *CalendarHandlerImpl) GetPersonalNotes(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if date := r.URL.Query().Get("date"); date != "" {
		note, err := h.calendarService.GetPersonalNote(r.Context(), actor.EmployeeID, date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, note)
		return
	}

	notes, err := h.calendarService.ListPersonalNotes(r.Context(), actor.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notes)
}

// UpdatePersonalNote implements CalendarHandler.
func (h *CalendarHandlerImpl) UpdatePersonalNote(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req calendar.PersonalNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = actor.EmployeeID

	note, err := h.calendarService.UpsertPersonalNote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Personal note saved successfully", note)
}

// DeletePersonalNote implements CalendarHandler. The date comes from the
// query string or the body.
func (h *CalendarHandlerImpl) DeletePersonalNote(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		var body struct {
			Date string `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			date = body.Date
		}
	}
	if date == "" {
		response.BadRequest(w, "date is required", nil)
		return
	}

	if err := h.calendarService.DeletePersonalNote(r.Context(), actor.EmployeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Personal note deleted successfully", nil)
}
