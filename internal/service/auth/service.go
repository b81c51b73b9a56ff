package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/punchstack/punchclock-backend-go/internal/domain/auth"
	"github.com/punchstack/punchclock-backend-go/internal/domain/employee"
	"github.com/punchstack/punchclock-backend-go/internal/domain/user"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/email"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/jwt"
	"github.com/punchstack/punchclock-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	employee.EmployeeRepository
	jwtRepository postgresql.JWTRepository
	jwtService    jwt.Service
	emailService  email.EmailService
	appBaseURL    string
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	jwtRepo postgresql.JWTRepository,
	jwtService jwt.Service,
	emailService email.EmailService,
	appBaseURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                 db,
		UserRepository:     userRepo,
		EmployeeRepository: employeeRepo,
		jwtRepository:      jwtRepo,
		jwtService:         jwtService,
		emailService:       emailService,
		appBaseURL:         appBaseURL,
	}
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenPairResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.IsAdmin)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.jwtRepository.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	resp := auth.TokenPairResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresAt:             expiresAt,
		RefreshTokenExpiresIn: refreshExpiresAt,
		IsAdmin:               u.IsAdmin,
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = *u.EmployeeID
	}
	return resp, nil
}

// Register implements auth.AuthService. The employee row and the user row
// are created in one transaction.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenPairResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var departmentID *string
		if req.DepartmentID != "" {
			departmentID = &req.DepartmentID
		}

		emp, err := s.EmployeeRepository.Create(txCtx, employee.Employee{
			FullName:     req.FullName,
			Email:        req.Email,
			DepartmentID: departmentID,
		})
		if err != nil {
			return err
		}

		created, err = s.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: &passwordHash,
			EmployeeID:   &emp.ID,
		})
		return err
	})
	if err != nil {
		return auth.TokenPairResponse{}, err
	}

	return s.issueTokens(ctx, created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPairResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPairResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPairResponse{}, err
	}

	if u.PasswordHash == nil {
		// OAuth-only account.
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// LoginWithGoogle implements auth.AuthService. The caller has already
// verified the Google account; here we match or create the local user.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, emailAddr string, googleID string) (auth.TokenPairResponse, error) {
	provider := "google"

	u, err := s.UserRepository.GetByOAuth(ctx, provider, googleID)
	if errors.Is(err, user.ErrUserNotFound) {
		// Fall back to an email match so password accounts can link.
		u, err = s.UserRepository.GetByEmail(ctx, emailAddr)
		if errors.Is(err, user.ErrUserNotFound) {
			u, err = s.UserRepository.Create(ctx, user.User{
				Email:           emailAddr,
				OAuthProvider:   &provider,
				OAuthProviderID: &googleID,
			})
		}
	}
	if err != nil {
		return auth.TokenPairResponse{}, err
	}

	return s.issueTokens(ctx, u)
}

// Refresh implements auth.AuthService. The old token is revoked and a new
// pair is issued (rotation).
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPairResponse, error) {
	revoked, err := s.jwtRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenPairResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenPairResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenPairResponse{}, err
	}

	if err := s.jwtRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.TokenPairResponse{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return s.jwtRepository.RevokeRefreshToken(ctx, refreshToken)
}

// ForgotPassword implements auth.AuthService. Always succeeds from the
// caller's point of view, so the endpoint cannot be used to probe for
// registered emails.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)

	if err := s.UserRepository.SetPasswordResetToken(ctx, u.ID, token); err != nil {
		return err
	}

	resetLink := s.appBaseURL + "/reset-password?token=" + token
	if err := s.emailService.SendPasswordReset(u.Email, resetLink, "1 hour"); err != nil {
		slog.Warn("failed to send password reset email", slog.String("error", err.Error()))
	}
	return nil
}
