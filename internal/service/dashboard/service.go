package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{DashboardRepository: repo, now: time.Now}
}

// Summary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Summary(ctx context.Context) (dashboard.SummaryResponse, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	employees, err := s.DashboardRepository.CountEmployees(ctx)
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to count employees: %w", err)
	}

	entriesToday, err := s.DashboardRepository.CountEntriesOn(ctx, today)
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to count today's entries: %w", err)
	}

	pending, err := s.DashboardRepository.CountPendingEntries(ctx)
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to count pending entries: %w", err)
	}

	hoursToday, err := s.DashboardRepository.SumHoursOn(ctx, today)
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to sum today's hours: %w", err)
	}

	return dashboard.SummaryResponse{
		EmployeeCount:    employees,
		EntriesToday:     entriesToday,
		PendingApprovals: pending,
		HoursToday:       hoursToday,
	}, nil
}
