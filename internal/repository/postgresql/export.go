package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

type exportRepositoryImpl struct {
	db *database.DB
}

func NewExportRepository(db *database.DB) export.ExportRepository {
	return &exportRepositoryImpl{db: db}
}

const exportColumns = `id, format, start_date, end_date, employee_ids,
		include_total, include_regular, include_overtime, include_status,
		status, file_path, row_count, requested_by, created_at, expires_at`

func scanExportJob(row pgx.Row) (export.ExportJob, error) {
	var j export.ExportJob
	err := row.Scan(
		&j.ID, &j.Format, &j.StartDate, &j.EndDate, &j.EmployeeIDs,
		&j.Include.TotalHours, &j.Include.RegularHours, &j.Include.OvertimeHours, &j.Include.Status,
		&j.Status, &j.FilePath, &j.RowCount, &j.RequestedBy, &j.CreatedAt, &j.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return export.ExportJob{}, export.ErrJobNotFound
		}
		return export.ExportJob{}, err
	}
	return j, nil
}

// Create implements export.ExportRepository.
func (r *exportRepositoryImpl) Create(ctx context.Context, j export.ExportJob) (export.ExportJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO export_jobs (
			format, start_date, end_date, employee_ids,
			include_total, include_regular, include_overtime, include_status,
			status, requested_by, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + exportColumns + `
	`

	return scanExportJob(q.QueryRow(ctx, query,
		j.Format, j.StartDate, j.EndDate, j.EmployeeIDs,
		j.Include.TotalHours, j.Include.RegularHours, j.Include.OvertimeHours, j.Include.Status,
		j.Status, j.RequestedBy, j.ExpiresAt,
	))
}

// GetByID implements export.ExportRepository.
func (r *exportRepositoryImpl) GetByID(ctx context.Context, id string) (export.ExportJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + exportColumns + ` FROM export_jobs WHERE id = $1`
	return scanExportJob(q.QueryRow(ctx, query, id))
}

// ListRecent implements export.ExportRepository.
func (r *exportRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]export.ExportJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + exportColumns + ` FROM export_jobs ORDER BY created_at DESC LIMIT $1`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []export.ExportJob
	for rows.Next() {
		var j export.ExportJob
		err := rows.Scan(
			&j.ID, &j.Format, &j.StartDate, &j.EndDate, &j.EmployeeIDs,
			&j.Include.TotalHours, &j.Include.RegularHours, &j.Include.OvertimeHours, &j.Include.Status,
			&j.Status, &j.FilePath, &j.RowCount, &j.RequestedBy, &j.CreatedAt, &j.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkCompleted implements export.ExportRepository.
func (r *exportRepositoryImpl) MarkCompleted(ctx context.Context, id, filePath string, rowCount int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE export_jobs
		SET status = 'completed', file_path = $1, row_count = $2
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, filePath, rowCount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return export.ErrJobNotFound
	}
	return nil
}

// MarkFailed implements export.ExportRepository.
func (r *exportRepositoryImpl) MarkFailed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE export_jobs SET status = 'failed' WHERE id = $1`, id)
	return err
}

// Delete implements export.ExportRepository.
func (r *exportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM export_jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return export.ErrJobNotFound
	}
	return nil
}

// ListExpired implements export.ExportRepository.
func (r *exportRepositoryImpl) ListExpired(ctx context.Context, now time.Time) ([]export.ExportJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + exportColumns + ` FROM export_jobs WHERE expires_at <= $1`
	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []export.ExportJob
	for rows.Next() {
		var j export.ExportJob
		err := rows.Scan(
			&j.ID, &j.Format, &j.StartDate, &j.EndDate, &j.EmployeeIDs,
			&j.Include.TotalHours, &j.Include.RegularHours, &j.Include.OvertimeHours, &j.Include.Status,
			&j.Status, &j.FilePath, &j.RowCount, &j.RequestedBy, &j.CreatedAt, &j.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}
