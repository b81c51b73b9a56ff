package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/punchstack/punchclock-backend-go/internal/domain/user"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
)

const userColumns = `u.id, u.email, u.password_hash, u.is_admin, u.oauth_provider, u.oauth_provider_id,
		u.password_reset_token, u.password_reset_sent_at, u.created_at, u.updated_at, u.employee_id`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.OAuthProvider, &u.OAuthProviderID,
		&u.PasswordResetToken, &u.PasswordResetSentAt, &u.CreatedAt, &u.UpdatedAt, &u.EmployeeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, is_admin, oauth_provider, oauth_provider_id, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, password_hash, is_admin, oauth_provider, oauth_provider_id,
			password_reset_token, password_reset_sent_at, created_at, updated_at, employee_id
	`

	created, err := scanUser(q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.IsAdmin, u.OAuthProvider, u.OAuthProviderID, u.EmployeeID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users u WHERE LOWER(u.email) = LOWER($1)`
	return scanUser(q.QueryRow(ctx, query, email))
}

// GetByOAuth implements user.UserRepository.
func (r *userRepositoryImpl) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users u WHERE u.oauth_provider = $1 AND u.oauth_provider_id = $2`
	return scanUser(q.QueryRow(ctx, query, provider, providerID))
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users u WHERE u.employee_id = $1`
	return scanUser(q.QueryRow(ctx, query, employeeID))
}

// SetPasswordResetToken implements user.UserRepository.
func (r *userRepositoryImpl) SetPasswordResetToken(ctx context.Context, id string, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_reset_token = $1, password_reset_sent_at = NOW(), updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, token, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET password_hash = $1, password_reset_token = NULL, password_reset_sent_at = NULL, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
