package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	UpdateProfilePicture(ctx context.Context, id string, path *string) error
	Delete(ctx context.Context, id string) error
}
