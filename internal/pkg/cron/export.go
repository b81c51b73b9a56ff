package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
)

// ExportJobs contains export-related cron jobs
type ExportJobs struct {
	exportService export.ExportService
}

// NewExportJobs creates export cron jobs
func NewExportJobs(exportService export.ExportService) *ExportJobs {
	return &ExportJobs{
		exportService: exportService,
	}
}

// RegisterJobs registers all export-related cron jobs
func (j *ExportJobs) RegisterJobs(scheduler *Scheduler) {
	// Generated export files are kept for a configured number of days,
	// then both the row and the file are removed.
	scheduler.AddJob(
		"purge_expired_exports",
		6*time.Hour,
		j.PurgeExpiredExports,
	)
}

// PurgeExpiredExports deletes export jobs past the retention window
func (j *ExportJobs) PurgeExpiredExports(ctx context.Context) error {
	purged, err := j.exportService.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		slog.Info("Expired exports purged", "count", purged)
	}
	return nil
}
