package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

type personalNoteRepositoryImpl struct {
	db *database.DB
}

func NewPersonalNoteRepository(db *database.DB) calendar.PersonalNoteRepository {
	return &personalNoteRepositoryImpl{db: db}
}

// ListByEmployee implements calendar.PersonalNoteRepository.
func (r *personalNoteRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]calendar.PersonalNote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, note, created_at, updated_at
		FROM personal_notes
		WHERE employee_id = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []calendar.PersonalNote
	for rows.Next() {
		var n calendar.PersonalNote
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Date, &n.Note, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetByEmployeeAndDate implements calendar.PersonalNoteRepository.
func (r *personalNoteRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (calendar.PersonalNote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, note, created_at, updated_at
		FROM personal_notes
		WHERE employee_id = $1 AND date = $2
	`

	var n calendar.PersonalNote
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&n.ID, &n.EmployeeID, &n.Date, &n.Note, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.PersonalNote{}, calendar.ErrNoteNotFound
		}
		return calendar.PersonalNote{}, err
	}
	return n, nil
}

// Upsert implements calendar.PersonalNoteRepository.
func (r *personalNoteRepositoryImpl) Upsert(ctx context.Context, n calendar.PersonalNote) (calendar.PersonalNote, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO personal_notes (employee_id, date, note)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, date) DO UPDATE SET note = EXCLUDED.note, updated_at = NOW()
		RETURNING id, employee_id, date, note, created_at, updated_at
	`

	var saved calendar.PersonalNote
	err := q.QueryRow(ctx, query, n.EmployeeID, n.Date, n.Note).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Date, &saved.Note, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return calendar.PersonalNote{}, err
	}
	return saved, nil
}

// Delete implements calendar.PersonalNoteRepository.
func (r *personalNoteRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM personal_notes WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrNoteNotFound
	}
	return nil
}
