package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/auth"
	"github.com/punchstack/punchclock-backend-go/internal/domain/timeentry"
)

// actorFromRequest extracts the authenticated caller from the verified JWT
// claims placed in the context by the auth middleware.
func actorFromRequest(r *http.Request) (timeentry.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return timeentry.Actor{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return timeentry.Actor{}, auth.ErrInvalidToken
	}

	actor := timeentry.Actor{UserID: userID}
	if employeeID, ok := claims["employee_id"].(string); ok {
		actor.EmployeeID = employeeID
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		actor.IsAdmin = isAdmin
	}
	return actor, nil
}
