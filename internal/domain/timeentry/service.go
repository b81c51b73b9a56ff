package timeentry

import "context"

// Actor identifies who is performing a time entry operation. Non-admin
// actors may only touch their own entries.
type Actor struct {
	UserID     string
	EmployeeID string
	IsAdmin    bool
}

type TimeEntryService interface {
	Punch(ctx context.Context, actor Actor, req PunchRequest) (TimeEntryResponse, error)
	GetEntry(ctx context.Context, actor Actor, id string) (TimeEntryResponse, error)
	ListEntries(ctx context.Context, actor Actor, filter EntryFilter) (ListEntriesResponse, error)
	UpdateEntry(ctx context.Context, actor Actor, req UpdateEntryRequest) (TimeEntryResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, req UpdateStatusRequest) (TimeEntryResponse, error)
	ApproveAll(ctx context.Context, actor Actor) (int, error)
	SegmentCount(ctx context.Context, actor Actor, date string) (int, error)
	DeleteEntry(ctx context.Context, actor Actor, id string) error
}
