package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const timeEntrySelect = `
	SELECT t.id, t.employee_id, t.date, t.start_time, t.end_time, t.entry_type, t.status,
		t.total_hours, t.notes, t.session_id, t.segment_index, t.approved_by, t.approved_at,
		t.rejection_reason, t.created_at, t.updated_at,
		e.full_name AS employee_name, d.name AS department_name
	FROM time_entries t
	JOIN employees e ON e.id = t.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var t timeentry.TimeEntry
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime, &t.EntryType, &t.Status,
		&t.TotalHours, &t.Notes, &t.SessionID, &t.SegmentIndex, &t.ApprovedBy, &t.ApprovedAt,
		&t.RejectionReason, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeName, &t.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, err
	}
	return t, nil
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Create(ctx context.Context, e timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			employee_id, date, start_time, end_time, entry_type, status,
			total_hours, notes, session_id, segment_index
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	created := e
	err := q.QueryRow(ctx, query,
		e.EmployeeID, e.Date, e.StartTime, e.EndTime, e.EntryType, e.Status,
		e.TotalHours, e.Notes, e.SessionID, e.SegmentIndex,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return timeentry.TimeEntry{}, timeentry.ErrDuplicateSegment
		}
		return timeentry.TimeEntry{}, err
	}
	return created, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	return scanTimeEntry(q.QueryRow(ctx, timeEntrySelect+` WHERE t.id = $1`, id))
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) List(ctx context.Context, filter timeentry.EntryFilter) ([]timeentry.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("t.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EntryType != nil {
		conditions = append(conditions, fmt.Sprintf("t.entry_type = $%d", argIdx))
		args = append(args, *filter.EntryType)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM time_entries t
		JOIN employees e ON e.id = t.employee_id
	` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := timeEntrySelect + whereClause +
		fmt.Sprintf(" ORDER BY t.date DESC, t.start_time DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var t timeentry.TimeEntry
		err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime, &t.EntryType, &t.Status,
			&t.TotalHours, &t.Notes, &t.SessionID, &t.SegmentIndex, &t.ApprovedBy, &t.ApprovedAt,
			&t.RejectionReason, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeName, &t.DepartmentName,
		)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, t)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListForExport implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListForExport(ctx context.Context, start, end time.Time, departmentID *string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := timeEntrySelect + ` WHERE t.date >= $1 AND t.date <= $2`
	args := []interface{}{start, end}
	if departmentID != nil {
		query += ` AND e.department_id = $3`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY e.full_name, t.date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var t timeentry.TimeEntry
		err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime, &t.EntryType, &t.Status,
			&t.TotalHours, &t.Notes, &t.SessionID, &t.SegmentIndex, &t.ApprovedBy, &t.ApprovedAt,
			&t.RejectionReason, &t.CreatedAt, &t.UpdatedAt, &t.EmployeeName, &t.DepartmentName,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ExistsSegment implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ExistsSegment(ctx context.Context, employeeID string, date time.Time, sessionID string, segmentIndex int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM time_entries
			WHERE employee_id = $1 AND date = $2 AND session_id = $3 AND segment_index = $4
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date, sessionID, segmentIndex).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// CountSegmentsOn implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) CountSegmentsOn(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM time_entries WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Update(ctx context.Context, e timeentry.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET date = $1, start_time = $2, end_time = $3, entry_type = $4,
			total_hours = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query, e.Date, e.StartTime, e.EndTime, e.EntryType, e.TotalHours, e.Notes, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}
	return nil
}

// UpdateStatus implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timeentry.Status, approvedBy string, reason *string) error {
	q := GetQuerier(ctx, r.db)

	// The status guard lives in the query, so two admins racing on the same
	// entry cannot both win.
	query := `
		UPDATE time_entries
		SET status = $1, approved_by = $2, approved_at = NOW(), rejection_reason = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, query, status, approvedBy, reason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotPending
	}
	return nil
}

// ApproveAllPending implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ApproveAllPending(ctx context.Context, approvedBy string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET status = 'approved', approved_by = $1, approved_at = NOW(), updated_at = NOW()
		WHERE status = 'pending'
		RETURNING id, employee_id, date, start_time, end_time, entry_type, status,
			total_hours, notes, session_id, segment_index, approved_by, approved_at,
			rejection_reason, created_at, updated_at
	`

	rows, err := q.Query(ctx, query, approvedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var t timeentry.TimeEntry
		err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.Date, &t.StartTime, &t.EndTime, &t.EntryType, &t.Status,
			&t.TotalHours, &t.Notes, &t.SessionID, &t.SegmentIndex, &t.ApprovedBy, &t.ApprovedAt,
			&t.RejectionReason, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete implements timeentry.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}
	return nil
}
