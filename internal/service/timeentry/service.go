package timeentry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/punchstack/punchclock-backend-go/internal/domain/user"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/sse"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/validator"
)

// Non-admins may backdate a punch at most this far.
const maxBackdateDays = 7

type TimeEntryServiceImpl struct {
	timeentry.TimeEntryRepository
	userRepository user.UserRepository
	hub            *sse.Hub
	now            func() time.Time
}

func NewTimeEntryService(repo timeentry.TimeEntryRepository, userRepo user.UserRepository, hub *sse.Hub) timeentry.TimeEntryService {
	return &TimeEntryServiceImpl{
		TimeEntryRepository: repo,
		userRepository:      userRepo,
		hub:                 hub,
		now:                 time.Now,
	}
}

func (s *TimeEntryServiceImpl) canAccess(actor timeentry.Actor, employeeID string) bool {
	return actor.IsAdmin || actor.EmployeeID == employeeID
}

// Punch implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) Punch(ctx context.Context, actor timeentry.Actor, req timeentry.PunchRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	if req.EmployeeID == "" {
		req.EmployeeID = actor.EmployeeID
	}
	if !s.canAccess(actor, req.EmployeeID) {
		return timeentry.TimeEntryResponse{}, timeentry.ErrUnauthorized
	}

	date, _ := validator.IsValidDate(req.Date)
	if !actor.IsAdmin {
		today := s.now().UTC().Truncate(24 * time.Hour)
		if date.Before(today.AddDate(0, 0, -maxBackdateDays)) {
			return timeentry.TimeEntryResponse{}, timeentry.ErrDateTooOld
		}
	}

	exists, err := s.TimeEntryRepository.ExistsSegment(ctx, req.EmployeeID, date, req.SessionID, req.SegmentIndex)
	if err != nil {
		return timeentry.TimeEntryResponse{}, fmt.Errorf("failed to check punch segment: %w", err)
	}
	if exists {
		return timeentry.TimeEntryResponse{}, timeentry.ErrDuplicateSegment
	}

	start, _ := validator.IsValidTimeOfDay(req.StartTime)
	end, _ := validator.IsValidTimeOfDay(req.EndTime)

	created, err := s.TimeEntryRepository.Create(ctx, timeentry.TimeEntry{
		EmployeeID:   req.EmployeeID,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		EntryType:    timeentry.EntryType(req.EntryType),
		Status:       timeentry.StatusPending,
		TotalHours:   timeentry.ComputeTotalHours(start, end),
		Notes:        req.Notes,
		SessionID:    req.SessionID,
		SegmentIndex: req.SegmentIndex,
	})
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return timeentry.ToResponse(created), nil
}

// GetEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) GetEntry(ctx context.Context, actor timeentry.Actor, id string) (timeentry.TimeEntryResponse, error) {
	entry, err := s.TimeEntryRepository.GetByID(ctx, id)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if !s.canAccess(actor, entry.EmployeeID) {
		return timeentry.TimeEntryResponse{}, timeentry.ErrUnauthorized
	}
	return timeentry.ToResponse(entry), nil
}

// ListEntries implements timeentry.TimeEntryService. Non-admins only ever
// see their own entries, whatever the filter says.
func (s *TimeEntryServiceImpl) ListEntries(ctx context.Context, actor timeentry.Actor, filter timeentry.EntryFilter) (timeentry.ListEntriesResponse, error) {
	if !actor.IsAdmin {
		filter.EmployeeID = &actor.EmployeeID
	}
	if err := filter.Validate(); err != nil {
		return timeentry.ListEntriesResponse{}, err
	}

	entries, total, err := s.TimeEntryRepository.List(ctx, filter)
	if err != nil {
		return timeentry.ListEntriesResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	responses := make([]timeentry.TimeEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, timeentry.ToResponse(e))
	}

	return timeentry.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Entries:    responses,
	}, nil
}

// UpdateEntry implements timeentry.TimeEntryService. Only pending entries
// may change.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, actor timeentry.Actor, req timeentry.UpdateEntryRequest) (timeentry.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	if !s.canAccess(actor, entry.EmployeeID) {
		return timeentry.TimeEntryResponse{}, timeentry.ErrUnauthorized
	}
	if !entry.IsEditable() {
		return timeentry.TimeEntryResponse{}, timeentry.ErrEntryNotPending
	}

	if req.Date != nil {
		entry.Date, _ = validator.IsValidDate(*req.Date)
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.EntryType != nil {
		entry.EntryType = timeentry.EntryType(*req.EntryType)
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}

	start, _ := validator.IsValidTimeOfDay(entry.StartTime)
	end, _ := validator.IsValidTimeOfDay(entry.EndTime)
	entry.TotalHours = timeentry.ComputeTotalHours(start, end)

	if err := s.TimeEntryRepository.Update(ctx, entry); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}
	return s.GetEntry(ctx, actor, req.ID)
}

// UpdateStatus implements timeentry.TimeEntryService. Admin approves or
// rejects a pending entry; the owner is notified over the event stream.
func (s *TimeEntryServiceImpl) UpdateStatus(ctx context.Context, actor timeentry.Actor, req timeentry.UpdateStatusRequest) (timeentry.TimeEntryResponse, error) {
	if !actor.IsAdmin {
		return timeentry.TimeEntryResponse{}, timeentry.ErrUnauthorized
	}
	if err := req.Validate(); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	next := timeentry.Status(req.Status)
	if !entry.CanTransitionTo(next) {
		return timeentry.TimeEntryResponse{}, timeentry.ErrInvalidStatusChange
	}

	if err := s.TimeEntryRepository.UpdateStatus(ctx, req.ID, next, actor.UserID, req.RejectionReason); err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	updated, err := s.TimeEntryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timeentry.TimeEntryResponse{}, err
	}

	s.notifyOwner(ctx, updated)

	return timeentry.ToResponse(updated), nil
}

func (s *TimeEntryServiceImpl) notifyOwner(ctx context.Context, entry timeentry.TimeEntry) {
	owner, err := s.userRepository.GetByEmployeeID(ctx, entry.EmployeeID)
	if err != nil {
		// No linked user account, nobody to notify.
		return
	}

	name := sse.EventEntryApproved
	if entry.Status == timeentry.StatusRejected {
		name = sse.EventEntryRejected
	}
	s.hub.Publish(owner.ID, sse.Event{
		UserID: owner.ID,
		Name:   name,
		Data:   timeentry.ToResponse(entry),
	})
}

// ApproveAll implements timeentry.TimeEntryService. Every pending entry is
// approved in one statement; each affected employee gets an event.
func (s *TimeEntryServiceImpl) ApproveAll(ctx context.Context, actor timeentry.Actor) (int, error) {
	if !actor.IsAdmin {
		return 0, timeentry.ErrUnauthorized
	}

	approved, err := s.TimeEntryRepository.ApproveAllPending(ctx, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to approve pending entries: %w", err)
	}

	for _, entry := range approved {
		s.notifyOwner(ctx, entry)
	}
	return len(approved), nil
}

// SegmentCount implements timeentry.TimeEntryService. Clients ask before
// punching so a split session gets the next segment_index.
func (s *TimeEntryServiceImpl) SegmentCount(ctx context.Context, actor timeentry.Actor, dateStr string) (int, error) {
	date, ok := validator.IsValidDate(dateStr)
	if !ok {
		return 0, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return s.TimeEntryRepository.CountSegmentsOn(ctx, actor.EmployeeID, date)
}

// DeleteEntry implements timeentry.TimeEntryService.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, actor timeentry.Actor, id string) error {
	entry, err := s.TimeEntryRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canAccess(actor, entry.EmployeeID) {
		return timeentry.ErrUnauthorized
	}
	if !entry.IsEditable() {
		return timeentry.ErrEntryNotPending
	}

	return s.TimeEntryRepository.Delete(ctx, id)
}
