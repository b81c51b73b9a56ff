package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/punchstack/punchclock-backend-go/internal/domain/department"
	"github.com/punchstack/punchclock-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentService struct {
	deleteErr error
	deleted   []string
}

func (f *fakeDepartmentService) ListDepartments(context.Context) ([]department.DepartmentResponse, error) {
	return []department.DepartmentResponse{
		{ID: "dep-1", Name: "Engineering", EmployeeCount: 4},
	}, nil
}

func (f *fakeDepartmentService) GetDepartment(context.Context, string) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{}, department.ErrDepartmentNotFound
}

func (f *fakeDepartmentService) CreateDepartment(_ context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{ID: "dep-2", Name: req.Name}, nil
}

func (f *fakeDepartmentService) UpdateDepartment(context.Context, department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{}, nil
}

func (f *fakeDepartmentService) DeleteDepartment(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeEmployeeService struct{}

func (fakeEmployeeService) GetEmployee(context.Context, string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeService) ListEmployees(context.Context, employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	return employee.ListEmployeesResponse{}, nil
}

func (fakeEmployeeService) ListByDepartment(context.Context, string) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{}, nil
}

func (fakeEmployeeService) UpdateEmployee(context.Context, employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, nil
}

func (fakeEmployeeService) DeleteEmployee(context.Context, string) error {
	return nil
}

func routeRequest(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDeleteDepartmentBlockedWhileEmployeesRemain(t *testing.T) {
	svc := &fakeDepartmentService{deleteErr: department.ErrDepartmentHasEmployees}
	handler := NewDepartmentHandler(svc, fakeEmployeeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/departments/dep-1/delete/", nil)
	req = routeRequest(req, "id", "dep-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, svc.deleted)
}

func TestDeleteDepartment(t *testing.T) {
	svc := &fakeDepartmentService{}
	handler := NewDepartmentHandler(svc, fakeEmployeeService{})

	req := httptest.NewRequest(http.MethodPost, "/api/departments/dep-1/delete/", nil)
	req = routeRequest(req, "id", "dep-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"dep-1"}, svc.deleted)
}

func TestListDepartments(t *testing.T) {
	handler := NewDepartmentHandler(&fakeDepartmentService{}, fakeEmployeeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/departments/", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Engineering")
}
