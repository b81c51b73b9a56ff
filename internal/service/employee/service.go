package employee

import (
	"context"
	"fmt"
	"math"

	"github.com/punchstack/punchclock-backend-go/internal/domain/employee"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/storage"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	fileStorage storage.FileStorage
}

func NewEmployeeService(repo employee.EmployeeRepository, fileStorage storage.FileStorage) employee.EmployeeService {
	return &EmployeeServiceImpl{EmployeeRepository: repo, fileStorage: fileStorage}
}

func (s *EmployeeServiceImpl) toResponse(ctx context.Context, e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             e.ID,
		FullName:       e.FullName,
		Email:          e.Email,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		CreatedAt:      e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.ProfilePicturePath != nil {
		if url, err := s.fileStorage.GetURL(ctx, *e.ProfilePicturePath, 0); err == nil {
			resp.ProfilePictureURL = &url
		}
	}
	return resp
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(ctx, e), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, s.toResponse(ctx, e))
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// ListByDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByDepartment(ctx context.Context, departmentID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by department: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, s.toResponse(ctx, e))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			existing.DepartmentID = nil
		} else {
			existing.DepartmentID = req.DepartmentID
		}
	}

	if err := s.EmployeeRepository.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.GetEmployee(ctx, req.ID)
}

// DeleteEmployee implements employee.EmployeeService. The stored profile
// picture is removed along with the row.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	existing, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}

	if existing.ProfilePicturePath != nil {
		_ = s.fileStorage.Delete(ctx, *existing.ProfilePicturePath)
	}
	return nil
}
