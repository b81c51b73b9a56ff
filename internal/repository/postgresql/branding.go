package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/media"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

type brandingRepositoryImpl struct {
	db *database.DB
}

func NewBrandingRepository(db *database.DB) media.BrandingRepository {
	return &brandingRepositoryImpl{db: db}
}

// GetLogoPath implements media.BrandingRepository. The branding table
// holds a single row.
func (r *brandingRepositoryImpl) GetLogoPath(ctx context.Context) (*string, error) {
	q := GetQuerier(ctx, r.db)

	var path *string
	err := q.QueryRow(ctx, `SELECT logo_path FROM branding LIMIT 1`).Scan(&path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return path, nil
}

// SetLogoPath implements media.BrandingRepository.
func (r *brandingRepositoryImpl) SetLogoPath(ctx context.Context, path *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branding (id, logo_path)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET logo_path = EXCLUDED.logo_path, updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, path)
	return err
}
