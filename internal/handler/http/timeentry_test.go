package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimeEntryService struct {
	punchFn      func(ctx context.Context, actor timeentry.Actor, req timeentry.PunchRequest) (timeentry.TimeEntryResponse, error)
	lastActor    timeentry.Actor
	approveCount int
}

func (f *fakeTimeEntryService) Punch(ctx context.Context, actor timeentry.Actor, req timeentry.PunchRequest) (timeentry.TimeEntryResponse, error) {
	f.lastActor = actor
	return f.punchFn(ctx, actor, req)
}

func (f *fakeTimeEntryService) GetEntry(context.Context, timeentry.Actor, string) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, timeentry.ErrEntryNotFound
}

func (f *fakeTimeEntryService) ListEntries(context.Context, timeentry.Actor, timeentry.EntryFilter) (timeentry.ListEntriesResponse, error) {
	return timeentry.ListEntriesResponse{Entries: []timeentry.TimeEntryResponse{}}, nil
}

func (f *fakeTimeEntryService) UpdateEntry(context.Context, timeentry.Actor, timeentry.UpdateEntryRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, timeentry.ErrEntryNotPending
}

func (f *fakeTimeEntryService) UpdateStatus(context.Context, timeentry.Actor, timeentry.UpdateStatusRequest) (timeentry.TimeEntryResponse, error) {
	return timeentry.TimeEntryResponse{}, nil
}

func (f *fakeTimeEntryService) ApproveAll(context.Context, timeentry.Actor) (int, error) {
	return f.approveCount, nil
}

func (f *fakeTimeEntryService) SegmentCount(context.Context, timeentry.Actor, string) (int, error) {
	return 2, nil
}

func (f *fakeTimeEntryService) DeleteEntry(context.Context, timeentry.Actor, string) error {
	return nil
}

// authedRequest builds a request carrying verified claims, as the auth
// middleware would leave them.
func authedRequest(t *testing.T, method, target string, body []byte, isAdmin bool) *http.Request {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("handler-test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"email":       "ada@example.com",
		"employee_id": "emp-1",
		"is_admin":    isAdmin,
		"type":        "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func TestPunchHandler(t *testing.T) {
	svc := &fakeTimeEntryService{
		punchFn: func(_ context.Context, actor timeentry.Actor, req timeentry.PunchRequest) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{
				ID:         "entry-1",
				EmployeeID: actor.EmployeeID,
				Date:       req.Date,
				StartTime:  req.StartTime,
				EndTime:    req.EndTime,
				Status:     "pending",
				TotalHours: 8,
			}, nil
		},
	}
	handler := NewTimeEntryHandler(svc)

	body, _ := json.Marshal(timeentry.PunchRequest{
		Date:         "2026-08-27",
		StartTime:    "09:00",
		EndTime:      "17:00",
		SessionID:    "1756200000000-a1b2c3",
		SegmentIndex: 0,
	})
	req := authedRequest(t, http.MethodPost, "/api/time/punch/", body, false)
	rec := httptest.NewRecorder()

	handler.Punch(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "emp-1", svc.lastActor.EmployeeID)
	assert.False(t, svc.lastActor.IsAdmin)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID         string  `json:"id"`
			Status     string  `json:"status"`
			TotalHours float64 `json:"total_hours"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pending", resp.Data.Status)
	assert.InDelta(t, 8.0, resp.Data.TotalHours, 0.001)
}

func TestPunchHandlerDuplicateSegmentConflicts(t *testing.T) {
	svc := &fakeTimeEntryService{
		punchFn: func(context.Context, timeentry.Actor, timeentry.PunchRequest) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{}, timeentry.ErrDuplicateSegment
		},
	}
	handler := NewTimeEntryHandler(svc)

	body, _ := json.Marshal(timeentry.PunchRequest{
		Date:         "2026-08-27",
		StartTime:    "09:00",
		EndTime:      "17:00",
		SessionID:    "1756200000000-a1b2c3",
		SegmentIndex: 0,
	})
	req := authedRequest(t, http.MethodPost, "/api/time/punch/", body, false)
	rec := httptest.NewRecorder()

	handler.Punch(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPunchHandlerRejectsMalformedBody(t *testing.T) {
	handler := NewTimeEntryHandler(&fakeTimeEntryService{})

	req := authedRequest(t, http.MethodPost, "/api/time/punch/", []byte("{not json"), false)
	rec := httptest.NewRecorder()

	handler.Punch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPunchHandlerRequiresClaims(t *testing.T) {
	handler := NewTimeEntryHandler(&fakeTimeEntryService{})

	req := httptest.NewRequest(http.MethodPost, "/api/time/punch/", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()

	handler.Punch(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApproveAllHandler(t *testing.T) {
	svc := &fakeTimeEntryService{approveCount: 3}
	handler := NewTimeEntryHandler(svc)

	req := authedRequest(t, http.MethodPost, "/api/time/approve-all/", nil, true)
	rec := httptest.NewRecorder()

	handler.ApproveAll(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			ApprovedCount int `json:"approved_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.ApprovedCount)
}

func TestSegmentCountHandlerDefaultsDate(t *testing.T) {
	handler := NewTimeEntryHandler(&fakeTimeEntryService{})

	req := authedRequest(t, http.MethodGet, "/api/time/segment-count/", nil, false)
	rec := httptest.NewRecorder()

	handler.SegmentCount(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Date         string `json:"date"`
			SegmentCount int    `json:"segment_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Date)
	assert.Equal(t, 2, resp.Data.SegmentCount)
}
