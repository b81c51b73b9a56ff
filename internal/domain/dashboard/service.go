package dashboard

import "context"

// DashboardService serves the polled summary counters. Stateless: every
// call hits the repository so clients always see fresh numbers.
type DashboardService interface {
	Summary(ctx context.Context) (SummaryResponse, error)
}
