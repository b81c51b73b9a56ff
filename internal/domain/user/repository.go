package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOAuth(ctx context.Context, provider, providerID string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	SetPasswordResetToken(ctx context.Context, id string, token string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
