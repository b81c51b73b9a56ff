package department

import "context"

// DepartmentService defines business logic for department management
type DepartmentService interface {
	// ListDepartments returns all departments with employee counts
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)

	// GetDepartment returns one department by ID
	GetDepartment(ctx context.Context, id string) (DepartmentResponse, error)

	// CreateDepartment creates a department
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)

	// UpdateDepartment updates name/description
	UpdateDepartment(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)

	// DeleteDepartment deletes a department; refused while employees remain
	DeleteDepartment(ctx context.Context, id string) error
}
