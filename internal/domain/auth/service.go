package auth

import "context"

// AuthService defines authentication business logic
type AuthService interface {
	// Register creates a user plus its employee record and returns tokens
	Register(ctx context.Context, req RegisterRequest) (TokenPairResponse, error)

	// Login authenticates with email and password
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)

	// LoginWithGoogle authenticates with a verified Google account
	LoginWithGoogle(ctx context.Context, email string, googleID string) (TokenPairResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// ForgotPassword issues a reset token and emails a reset link
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
}
