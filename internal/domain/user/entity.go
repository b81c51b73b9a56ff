package user

import "time"

type User struct {
	ID                  string
	Email               string
	PasswordHash        *string
	IsAdmin             bool
	OAuthProvider       *string
	OAuthProviderID     *string
	PasswordResetToken  *string
	PasswordResetSentAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// DTO / Join
	EmployeeID *string
}

// CanApprove checks if the user may approve or reject time entries
func (u *User) CanApprove() bool {
	return u.IsAdmin
}

// CanManageSettings checks if the user may edit company-wide calendar
// settings, departments, and exports
func (u *User) CanManageSettings() bool {
	return u.IsAdmin
}
