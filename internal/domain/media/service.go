package media

import "context"

type MediaService interface {
	// UploadProfilePicture crops, resizes and stores an employee's picture,
	// then swaps the stored path. The previous file is removed only after
	// the new one is safely written.
	UploadProfilePicture(ctx context.Context, employeeID string, req UploadRequest) (ImageResponse, error)
	GetProfilePicture(ctx context.Context, employeeID string) (ImageResponse, error)
	DeleteProfilePicture(ctx context.Context, employeeID string) error

	UploadLogo(ctx context.Context, req UploadRequest) (ImageResponse, error)
	GetLogo(ctx context.Context) (ImageResponse, error)
	DeleteLogo(ctx context.Context) error
}
