package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/punchstack/punchclock-backend-go/internal/domain/auth"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	tokens auth.TokenPairResponse
}

func (f *fakeAuthService) Register(context.Context, auth.RegisterRequest) (auth.TokenPairResponse, error) {
	return f.tokens, nil
}

func (f *fakeAuthService) Login(context.Context, auth.LoginRequest) (auth.TokenPairResponse, error) {
	return f.tokens, nil
}

func (f *fakeAuthService) LoginWithGoogle(context.Context, string, string) (auth.TokenPairResponse, error) {
	return f.tokens, nil
}

func (f *fakeAuthService) Refresh(context.Context, string) (auth.TokenPairResponse, error) {
	return f.tokens, nil
}

func (f *fakeAuthService) Logout(context.Context, string) error {
	return nil
}

func (f *fakeAuthService) ForgotPassword(context.Context, auth.ForgotPasswordRequest) error {
	return nil
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func TestLoginCookieOutlivesAccessToken(t *testing.T) {
	accessExpiresAt := time.Now().Add(1 * time.Hour).Unix()
	refreshExpiresAt := time.Now().Add(168 * time.Hour).Unix()
	svc := &fakeAuthService{tokens: auth.TokenPairResponse{
		AccessToken:           "access-token",
		RefreshToken:          "refresh-token",
		ExpiresAt:             accessExpiresAt,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}}
	jwtSvc := jwt.NewJWTService("handler-test-secret", "1h", "168h")
	handler := NewAuthHandler(svc, jwtSvc, nil, "http://localhost:3000")

	body, _ := json.Marshal(auth.LoginRequest{Email: "ada@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := refreshCookie(t, rec)
	assert.Equal(t, "refresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	// The cookie lives as long as the refresh token, not the access token.
	assert.WithinDuration(t, time.Unix(refreshExpiresAt, 0), cookie.Expires, time.Second)
	assert.True(t, cookie.Expires.After(time.Unix(accessExpiresAt, 0)))
}

func TestRefreshReadsCookie(t *testing.T) {
	refreshExpiresAt := time.Now().Add(168 * time.Hour).Unix()
	svc := &fakeAuthService{tokens: auth.TokenPairResponse{
		AccessToken:           "rotated-access",
		RefreshToken:          "rotated-refresh",
		ExpiresAt:             time.Now().Add(time.Hour).Unix(),
		RefreshTokenExpiresIn: refreshExpiresAt,
	}}
	jwtSvc := jwt.NewJWTService("handler-test-secret", "1h", "168h")
	handler := NewAuthHandler(svc, jwtSvc, nil, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh/", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old-refresh"})
	rec := httptest.NewRecorder()

	handler.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := refreshCookie(t, rec)
	assert.Equal(t, "rotated-refresh", cookie.Value)
	assert.WithinDuration(t, time.Unix(refreshExpiresAt, 0), cookie.Expires, time.Second)
}
