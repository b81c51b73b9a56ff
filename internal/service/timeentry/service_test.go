package timeentry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/punchstack/punchclock-backend-go/internal/domain/user"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntryRepo struct {
	entries map[string]timeentry.TimeEntry
	nextID  int
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]timeentry.TimeEntry)}
}

func (f *fakeEntryRepo) Create(_ context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	for _, existing := range f.entries {
		if existing.EmployeeID == e.EmployeeID && existing.Date.Equal(e.Date) &&
			existing.SessionID == e.SessionID && existing.SegmentIndex == e.SegmentIndex {
			return timeentry.TimeEntry{}, timeentry.ErrDuplicateSegment
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("entry-%d", f.nextID)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id string) (timeentry.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeEntryRepo) List(_ context.Context, filter timeentry.EntryFilter) ([]timeentry.TimeEntry, int64, error) {
	var out []timeentry.TimeEntry
	for _, e := range f.entries {
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEntryRepo) ListForExport(_ context.Context, _, _ time.Time, _ *string) ([]timeentry.TimeEntry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) ExistsSegment(_ context.Context, employeeID string, date time.Time, sessionID string, segmentIndex int) (bool, error) {
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) && e.SessionID == sessionID && e.SegmentIndex == segmentIndex {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEntryRepo) CountSegmentsOn(_ context.Context, employeeID string, date time.Time) (int, error) {
	count := 0
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

func (f *fakeEntryRepo) ApproveAllPending(_ context.Context, approvedBy string) ([]timeentry.TimeEntry, error) {
	var approved []timeentry.TimeEntry
	now := time.Now()
	for id, e := range f.entries {
		if e.Status != timeentry.StatusPending {
			continue
		}
		e.Status = timeentry.StatusApproved
		e.ApprovedBy = &approvedBy
		e.ApprovedAt = &now
		f.entries[id] = e
		approved = append(approved, e)
	}
	return approved, nil
}

func (f *fakeEntryRepo) Update(_ context.Context, e timeentry.TimeEntry) error {
	if _, ok := f.entries[e.ID]; !ok {
		return timeentry.ErrEntryNotFound
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeEntryRepo) UpdateStatus(_ context.Context, id string, status timeentry.Status, approvedBy string, reason *string) error {
	e, ok := f.entries[id]
	if !ok {
		return timeentry.ErrEntryNotFound
	}
	if e.Status != timeentry.StatusPending {
		return timeentry.ErrEntryNotPending
	}
	now := time.Now()
	e.Status = status
	e.ApprovedBy = &approvedBy
	e.ApprovedAt = &now
	e.RejectionReason = reason
	f.entries[id] = e
	return nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return timeentry.ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

type fakeUserRepo struct {
	byEmployee map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }
func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByOAuth(_ context.Context, _, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	u, ok := f.byEmployee[employeeID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) SetPasswordResetToken(_ context.Context, _, _ string) error { return nil }
func (f *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error        { return nil }

func newTestService(repo *fakeEntryRepo, hub *sse.Hub) *TimeEntryServiceImpl {
	users := &fakeUserRepo{byEmployee: map[string]user.User{
		"emp-1": {ID: "user-1", EmployeeID: strPtr("emp-1")},
	}}
	svc := NewTimeEntryService(repo, users, hub).(*TimeEntryServiceImpl)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func strPtr(s string) *string { return &s }

func validPunch() timeentry.PunchRequest {
	return timeentry.PunchRequest{
		EmployeeID:   "emp-1",
		Date:         "2026-08-28",
		StartTime:    "09:00",
		EndTime:      "17:30",
		SessionID:    "1716912345678-x7k2p9",
		SegmentIndex: 0,
	}
}

func TestPunch(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	actor := timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}

	resp, err := svc.Punch(context.Background(), actor, validPunch())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 8.5, resp.TotalHours)
	assert.Equal(t, "regular", resp.EntryType)
}

func TestPunchDuplicateSegment(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	actor := timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}

	_, err := svc.Punch(context.Background(), actor, validPunch())
	require.NoError(t, err)

	_, err = svc.Punch(context.Background(), actor, validPunch())
	assert.ErrorIs(t, err, timeentry.ErrDuplicateSegment)

	// Same session, next segment is fine.
	req := validPunch()
	req.SegmentIndex = 1
	_, err = svc.Punch(context.Background(), actor, req)
	assert.NoError(t, err)
}

func TestPunchBackdatingLimit(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())

	req := validPunch()
	req.Date = "2026-08-01"

	_, err := svc.Punch(context.Background(), timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}, req)
	assert.ErrorIs(t, err, timeentry.ErrDateTooOld)

	// Admins are not limited.
	_, err = svc.Punch(context.Background(), timeentry.Actor{UserID: "admin", EmployeeID: "emp-1", IsAdmin: true}, req)
	assert.NoError(t, err)
}

func TestPunchForOtherEmployee(t *testing.T) {
	svc := newTestService(newFakeEntryRepo(), sse.NewHub())

	req := validPunch()
	req.EmployeeID = "emp-2"

	_, err := svc.Punch(context.Background(), timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}, req)
	assert.ErrorIs(t, err, timeentry.ErrUnauthorized)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeEntryRepo()
	hub := sse.NewHub()
	svc := newTestService(repo, hub)
	owner := timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}
	admin := timeentry.Actor{UserID: "admin-1", IsAdmin: true}

	created, err := svc.Punch(context.Background(), owner, validPunch())
	require.NoError(t, err)

	events, cancel := hub.Subscribe("user-1")
	defer cancel()

	_, err = svc.UpdateStatus(context.Background(), owner, timeentry.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	assert.ErrorIs(t, err, timeentry.ErrUnauthorized)

	resp, err := svc.UpdateStatus(context.Background(), admin, timeentry.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	select {
	case ev := <-events:
		assert.Equal(t, sse.EventEntryApproved, ev.Name)
	case <-time.After(time.Second):
		t.Fatal("expected an approval event")
	}

	// Second transition is refused.
	_, err = svc.UpdateStatus(context.Background(), admin, timeentry.UpdateStatusRequest{ID: created.ID, Status: "rejected", RejectionReason: strPtr("no")})
	assert.ErrorIs(t, err, timeentry.ErrInvalidStatusChange)
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	admin := timeentry.Actor{UserID: "admin-1", IsAdmin: true}

	created, err := svc.Punch(context.Background(), admin, validPunch())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), admin, timeentry.UpdateStatusRequest{ID: created.ID, Status: "rejected"})
	assert.Error(t, err)
}

func TestUpdateEntryOnlyWhilePending(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	owner := timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}
	admin := timeentry.Actor{UserID: "admin-1", IsAdmin: true}

	created, err := svc.Punch(context.Background(), owner, validPunch())
	require.NoError(t, err)

	end := "18:00"
	updated, err := svc.UpdateEntry(context.Background(), owner, timeentry.UpdateEntryRequest{ID: created.ID, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, 9.0, updated.TotalHours)

	_, err = svc.UpdateStatus(context.Background(), admin, timeentry.UpdateStatusRequest{ID: created.ID, Status: "approved"})
	require.NoError(t, err)

	_, err = svc.UpdateEntry(context.Background(), owner, timeentry.UpdateEntryRequest{ID: created.ID, EndTime: &end})
	assert.ErrorIs(t, err, timeentry.ErrEntryNotPending)

	err = svc.DeleteEntry(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, timeentry.ErrEntryNotPending)
}

func TestApproveAll(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	owner := timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}
	admin := timeentry.Actor{UserID: "admin-1", IsAdmin: true}

	req := validPunch()
	_, err := svc.Punch(context.Background(), owner, req)
	require.NoError(t, err)
	req.SegmentIndex = 1
	_, err = svc.Punch(context.Background(), owner, req)
	require.NoError(t, err)

	_, err = svc.ApproveAll(context.Background(), owner)
	assert.ErrorIs(t, err, timeentry.ErrUnauthorized)

	count, err := svc.ApproveAll(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.ApproveAll(context.Background(), admin)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSegmentCount(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	owner := timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"}

	count, err := svc.SegmentCount(context.Background(), owner, "2026-08-28")
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.Punch(context.Background(), owner, validPunch())
	require.NoError(t, err)

	count, err = svc.SegmentCount(context.Background(), owner, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.SegmentCount(context.Background(), owner, "not-a-date")
	assert.Error(t, err)
}

func TestListEntriesScopedForNonAdmins(t *testing.T) {
	repo := newFakeEntryRepo()
	svc := newTestService(repo, sse.NewHub())
	admin := timeentry.Actor{UserID: "admin-1", IsAdmin: true}

	req := validPunch()
	_, err := svc.Punch(context.Background(), admin, req)
	require.NoError(t, err)

	req.EmployeeID = "emp-2"
	req.SessionID = "1716912345999-a1b2c3"
	_, err = svc.Punch(context.Background(), admin, req)
	require.NoError(t, err)

	other := "emp-2"
	resp, err := svc.ListEntries(context.Background(),
		timeentry.Actor{UserID: "user-1", EmployeeID: "emp-1"},
		timeentry.EntryFilter{EmployeeID: &other})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "emp-1", resp.Entries[0].EmployeeID)
}
