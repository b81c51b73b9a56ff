package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountEntriesOn(ctx context.Context, date time.Time) (int64, error)
	CountPendingEntries(ctx context.Context) (int64, error)
	SumHoursOn(ctx context.Context, date time.Time) (float64, error)
}
