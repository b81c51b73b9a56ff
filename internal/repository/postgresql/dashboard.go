package postgresql

import (
	"context"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/dashboard"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return count, err
}

// CountEntriesOn implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEntriesOn(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM time_entries WHERE date = $1`, date).Scan(&count)
	return count, err
}

// CountPendingEntries implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingEntries(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM time_entries WHERE status = 'pending'`).Scan(&count)
	return count, err
}

// SumHoursOn implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) SumHoursOn(ctx context.Context, date time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	var total float64
	err := q.QueryRow(ctx, `SELECT COALESCE(SUM(total_hours), 0) FROM time_entries WHERE date = $1`, date).Scan(&total)
	return total, err
}
