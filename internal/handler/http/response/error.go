package response

import (
	"errors"
	"net/http"

	"github.com/punchstack/punchclock-backend-go/internal/domain/auth"
	"github.com/punchstack/punchclock-backend-go/internal/domain/calendar"
	"github.com/punchstack/punchclock-backend-go/internal/domain/department"
	"github.com/punchstack/punchclock-backend-go/internal/domain/employee"
	"github.com/punchstack/punchclock-backend-go/internal/domain/export"
	"github.com/punchstack/punchclock-backend-go/internal/domain/media"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
	"github.com/punchstack/punchclock-backend-go/internal/domain/user"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/imaging"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		BadRequest(w, "Google login is not configured", nil)
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrDepartmentHasEmployees):
		Conflict(w, "Department still has employees")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Time entry domain errors
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrDuplicateSegment):
		Conflict(w, "This punch was already recorded")
	case errors.Is(err, timeentry.ErrEntryNotPending),
		errors.Is(err, timeentry.ErrInvalidStatusChange):
		Conflict(w, err.Error())
	case errors.Is(err, timeentry.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this time entry")
	case errors.Is(err, timeentry.ErrDateTooOld):
		BadRequest(w, "Date is too far in the past", nil)

	// Calendar domain errors
	case errors.Is(err, calendar.ErrNoteNotFound):
		NotFound(w, "Personal note not found")
	case errors.Is(err, calendar.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this note")

	// Export domain errors
	case errors.Is(err, export.ErrJobNotFound):
		NotFound(w, "Export not found")
	case errors.Is(err, export.ErrFileNotReady):
		Conflict(w, "Export file is not ready")

	// Media domain errors
	case errors.Is(err, media.ErrLogoNotFound):
		NotFound(w, "Company logo not found")
	case errors.Is(err, media.ErrPictureNotFound):
		NotFound(w, "Profile picture not found")
	case errors.Is(err, media.ErrNoImageProvided),
		errors.Is(err, imaging.ErrInvalidDataURL),
		errors.Is(err, imaging.ErrUnsupportedFormat),
		errors.Is(err, imaging.ErrDecodeFailed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, imaging.ErrTooLarge):
		BadRequest(w, "Image exceeds maximum size", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
