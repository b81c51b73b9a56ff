package export

import (
	"context"
	"testing"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntryRepo struct {
	entries []timeentry.TimeEntry
}

func (f *fakeEntryRepo) Create(_ context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	return e, nil
}

func (f *fakeEntryRepo) GetByID(context.Context, string) (timeentry.TimeEntry, error) {
	return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
}

func (f *fakeEntryRepo) List(context.Context, timeentry.EntryFilter) ([]timeentry.TimeEntry, int64, error) {
	return nil, 0, nil
}

func (f *fakeEntryRepo) ListForExport(context.Context, time.Time, time.Time, *string) ([]timeentry.TimeEntry, error) {
	return f.entries, nil
}

func (f *fakeEntryRepo) ExistsSegment(context.Context, string, time.Time, string, int) (bool, error) {
	return false, nil
}

func (f *fakeEntryRepo) CountSegmentsOn(context.Context, string, time.Time) (int, error) {
	return 0, nil
}

func (f *fakeEntryRepo) Update(context.Context, timeentry.TimeEntry) error {
	return nil
}

func (f *fakeEntryRepo) UpdateStatus(context.Context, string, timeentry.Status, string, *string) error {
	return nil
}

func (f *fakeEntryRepo) ApproveAllPending(context.Context, string) ([]timeentry.TimeEntry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) Delete(context.Context, string) error {
	return nil
}

func previewService(repo *fakeEntryRepo, previewRows int) export.ExportService {
	return NewExportService(nil, repo, nil, nil, 30, previewRows)
}

func previewRequest(limit int) export.PreviewRequest {
	return export.PreviewRequest{
		GenerateRequest: export.GenerateRequest{
			Format:    "csv",
			StartDate: "2026-08-01",
			EndDate:   "2026-08-31",
			Include:   export.IncludeFlags{TotalHours: true},
		},
		Limit: limit,
	}
}

func TestPreviewUsesConfiguredRowCount(t *testing.T) {
	repo := &fakeEntryRepo{entries: []timeentry.TimeEntry{
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-2", "Bob", "Sales", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-3", "Cem", "Sales", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-4", "Dee", "Sales", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-5", "Eva", "Sales", "2026-08-24", 8, timeentry.StatusApproved),
	}}
	svc := previewService(repo, 3)

	resp, err := svc.Preview(context.Background(), previewRequest(0))
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 3)
	assert.Equal(t, 5, resp.Total)
}

func TestPreviewExplicitLimitWins(t *testing.T) {
	repo := &fakeEntryRepo{entries: []timeentry.TimeEntry{
		entry("emp-1", "Ada", "Engineering", "2026-08-24", 8, timeentry.StatusApproved),
		entry("emp-2", "Bob", "Sales", "2026-08-24", 8, timeentry.StatusApproved),
	}}
	svc := previewService(repo, 10)

	resp, err := svc.Preview(context.Background(), previewRequest(1))
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Equal(t, 2, resp.Total)
}
