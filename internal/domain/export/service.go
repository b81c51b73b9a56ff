package export

import "context"

type ExportService interface {
	Generate(ctx context.Context, req GenerateRequest) (JobResponse, error)
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	ListRecent(ctx context.Context) ([]JobResponse, error)
	DeleteJob(ctx context.Context, id string) error
	// Download returns the stored file bytes, its filename and content type.
	Download(ctx context.Context, id string) ([]byte, string, string, error)
	// PurgeExpired removes export files and rows past their retention
	// window. Run from the scheduler.
	PurgeExpired(ctx context.Context) (int, error)
}
