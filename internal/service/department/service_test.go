package department

import (
	"context"
	"testing"

	"github.com/punchstack/punchclock-backend-go/internal/domain/department"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	counts      map[string]int
	deleted     []string
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{
		departments: make(map[string]department.Department),
		counts:      make(map[string]int),
	}
}

func (f *fakeDepartmentRepo) Create(_ context.Context, d department.Department) (department.Department, error) {
	d.ID = "dep-" + d.Name
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.departments {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, d department.Department) error {
	if _, ok := f.departments[d.ID]; !ok {
		return department.ErrDepartmentNotFound
	}
	f.departments[d.ID] = d
	return nil
}

func (f *fakeDepartmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.departments[id]; !ok {
		return department.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDepartmentRepo) CountEmployees(_ context.Context, id string) (int, error) {
	return f.counts[id], nil
}

func TestCreateDepartment(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := NewDepartmentService(repo)

	resp, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{
		Name:        "Engineering",
		Description: "Builds things",
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", resp.Name)
	assert.Zero(t, resp.EmployeeCount)
}

func TestCreateDepartmentValidation(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartmentRepo())

	_, err := svc.CreateDepartment(context.Background(), department.CreateDepartmentRequest{Name: "  "})
	assert.Error(t, err)
}

func TestDeleteDepartmentBlockedWhileEmployeesRemain(t *testing.T) {
	repo := newFakeDepartmentRepo()
	repo.departments["dep-1"] = department.Department{ID: "dep-1", Name: "Sales"}
	repo.counts["dep-1"] = 3

	svc := NewDepartmentService(repo)

	err := svc.DeleteDepartment(context.Background(), "dep-1")
	assert.ErrorIs(t, err, department.ErrDepartmentHasEmployees)
	assert.Empty(t, repo.deleted)

	repo.counts["dep-1"] = 0
	require.NoError(t, svc.DeleteDepartment(context.Background(), "dep-1"))
	assert.Equal(t, []string{"dep-1"}, repo.deleted)
}

func TestUpdateDepartmentPartial(t *testing.T) {
	repo := newFakeDepartmentRepo()
	repo.departments["dep-1"] = department.Department{ID: "dep-1", Name: "Sales", Description: "old"}

	svc := NewDepartmentService(repo)

	name := "Sales & Marketing"
	resp, err := svc.UpdateDepartment(context.Background(), department.UpdateDepartmentRequest{
		ID:   "dep-1",
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sales & Marketing", resp.Name)
	assert.Equal(t, "old", resp.Description)
}
