package export

import (
	"context"
	"time"
)

type ExportRepository interface {
	Create(ctx context.Context, j ExportJob) (ExportJob, error)
	GetByID(ctx context.Context, id string) (ExportJob, error)
	ListRecent(ctx context.Context, limit int) ([]ExportJob, error)
	MarkCompleted(ctx context.Context, id, filePath string, rowCount int) error
	MarkFailed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListExpired(ctx context.Context, now time.Time) ([]ExportJob, error)
}
