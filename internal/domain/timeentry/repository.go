package timeentry

import (
	"context"
	"time"
)

type TimeEntryRepository interface {
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string) (TimeEntry, error)
	List(ctx context.Context, filter EntryFilter) ([]TimeEntry, int64, error)
	ListForExport(ctx context.Context, start, end time.Time, departmentID *string) ([]TimeEntry, error)
	ExistsSegment(ctx context.Context, employeeID string, date time.Time, sessionID string, segmentIndex int) (bool, error)
	CountSegmentsOn(ctx context.Context, employeeID string, date time.Time) (int, error)
	Update(ctx context.Context, e TimeEntry) error
	UpdateStatus(ctx context.Context, id string, status Status, approvedBy string, reason *string) error
	ApproveAllPending(ctx context.Context, approvedBy string) ([]TimeEntry, error)
	Delete(ctx context.Context, id string) error
}
