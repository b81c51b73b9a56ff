package media

import "context"

// BrandingRepository persists company-wide image paths (currently the logo).
type BrandingRepository interface {
	GetLogoPath(ctx context.Context) (*string, error)
	SetLogoPath(ctx context.Context, path *string) error
}
