package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/punchstack/punchclock-backend-go/internal/handler/http/response"
)

type TimeEntryHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Recent(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ApproveAll(w http.ResponseWriter, r *http.Request)
	SegmentCount(w http.ResponseWriter, r *http.Request)
}

type TimeEntryHandlerImpl struct {
	timeEntryService timeentry.TimeEntryService
}

func NewTimeEntryHandler(timeEntryService timeentry.TimeEntryService) TimeEntryHandler {
	return &TimeEntryHandlerImpl{timeEntryService: timeEntryService}
}

// Punch implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.timeEntryService.Punch(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Time entry recorded successfully", entry)
}

// Today implements TimeEntryHandler. Returns the caller's entries for the
// current date.
func (h *TimeEntryHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	today := time.Now().UTC().Format("2006-01-02")
	filter := timeentry.EntryFilter{
		EmployeeID: &actor.EmployeeID,
		StartDate:  &today,
		EndDate:    &today,
	}

	result, err := h.timeEntryService.ListEntries(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result.Entries)
}

// Recent implements TimeEntryHandler. Returns the caller's most recent
// entries, newest first.
func (h *TimeEntryHandlerImpl) Recent(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	filter := timeentry.EntryFilter{
		EmployeeID: &actor.EmployeeID,
		Limit:      limit,
	}

	result, err := h.timeEntryService.ListEntries(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result.Entries)
}

// List implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter timeentry.EntryFilter
	query := r.URL.Query()
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := query.Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("entry_type"); v != "" {
		filter.EntryType = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.timeEntryService.ListEntries(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Entries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.timeEntryService.GetEntry(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entry)
}

// Update implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeentry.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	entry, err := h.timeEntryService.UpdateEntry(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time entry updated successfully", entry)
}

// Delete implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.timeEntryService.DeleteEntry(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time entry deleted successfully", nil)
}

// UpdateStatus implements TimeEntryHandler. The entry ID travels in the
// body so the approval UI can post to a single endpoint.
func (h *TimeEntryHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var body struct {
		ID string `json:"id"`
		timeentry.UpdateStatusRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req := body.UpdateStatusRequest
	req.ID = body.ID

	entry, err := h.timeEntryService.UpdateStatus(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time entry status updated", entry)
}

// ApproveAll implements TimeEntryHandler.
func (h *TimeEntryHandlerImpl) ApproveAll(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	count, err := h.timeEntryService.ApproveAll(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Pending entries approved", map[string]int{"approved_count": count})
}

// SegmentCount implements TimeEntryHandler. Tells the punch clock how many
// segments the caller has already recorded for a date.
func (h *TimeEntryHandlerImpl) SegmentCount(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	count, err := h.timeEntryService.SegmentCount(r.Context(), actor, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"date": date, "segment_count": count})
}
