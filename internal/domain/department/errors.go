package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")

	// Deleting a department that still has employees is refused; the
	// client grays out the confirm button, the server enforces it.
	ErrDepartmentHasEmployees = errors.New("department still has employees")
)
