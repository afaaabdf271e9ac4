package services

import (
	"context"
	"fmt"
	"testing"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeFixture() *EmployeeService {
	return NewEmployeeService(newFakeEmployeeRepo())
}

func TestCreateEmployee_GeneratesSequentialIDs(t *testing.T) {
	svc := newEmployeeFixture()
	ctx := context.Background()

	for i, want := range []string{"EMP1001", "EMP1002", "EMP1003"} {
		employee, err := svc.Create(ctx, &CreateEmployeeInput{
			FirstName: "Worker",
			Email:     fmt.Sprintf("worker%d@clinicare.local", i),
		})
		require.NoError(t, err)
		assert.Equal(t, want, employee.EmpID)
		assert.Equal(t, models.EmployeeStatusWorking, employee.Status)
		assert.True(t, employee.IsActive)
	}
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	svc := newEmployeeFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateEmployeeInput{FirstName: "A", Email: "same@clinicare.local"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateEmployeeInput{FirstName: "B", Email: "same@clinicare.local"})
	assert.ErrorIs(t, err, ErrEmployeeEmailExists)
}

func TestUpdateEmployee_PartialPatch(t *testing.T) {
	svc := newEmployeeFixture()
	ctx := context.Background()

	employee, err := svc.Create(ctx, &CreateEmployeeInput{
		FirstName:  "June",
		Email:      "june@clinicare.local",
		Department: "Radiology",
	})
	require.NoError(t, err)

	newDept := "Cardiology"
	updated, err := svc.Update(ctx, employee.ID, &UpdateEmployeeInput{Department: &newDept})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", updated.Department)
	// Untouched fields stay as they were
	assert.Equal(t, "June", updated.FirstName)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	svc := newEmployeeFixture()

	_, err := svc.Update(context.Background(), 404, &UpdateEmployeeInput{})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc := newEmployeeFixture()
	ctx := context.Background()

	employee, err := svc.Create(ctx, &CreateEmployeeInput{FirstName: "Kai", Email: "kai@clinicare.local"})
	require.NoError(t, err)

	deleted, err := svc.SoftDelete(ctx, employee.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
	assert.Equal(t, models.EmployeeStatusNotWorking, deleted.Status)
	assert.NotNil(t, deleted.DeletedAt)

	// The record stays queryable after deactivation
	got, err := svc.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// Deactivating twice fails
	_, err = svc.SoftDelete(ctx, employee.ID)
	assert.ErrorIs(t, err, ErrEmployeeDeleted)

	restored, err := svc.Restore(ctx, employee.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)
	assert.Equal(t, models.EmployeeStatusWorking, restored.Status)
	assert.Nil(t, restored.DeletedAt)

	// Restoring an active employee fails
	_, err = svc.Restore(ctx, employee.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotDeleted)
}

func TestListEmployees_DefaultPageSize(t *testing.T) {
	svc := newEmployeeFixture()
	ctx := context.Background()

	for i := 0; i < pagination.DefaultLimit+5; i++ {
		_, err := svc.Create(ctx, &CreateEmployeeInput{
			FirstName: "Worker",
			Email:     fmt.Sprintf("bulk%d@clinicare.local", i),
		})
		require.NoError(t, err)
	}

	// Unset paging falls back to the shared page-size default
	employees, total, err := svc.List(ctx, &ListEmployeesInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(pagination.DefaultLimit+5), total)
	assert.Len(t, employees, pagination.DefaultLimit)
}

func TestListEmployees_ActiveFilter(t *testing.T) {
	svc := newEmployeeFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateEmployeeInput{FirstName: "A", Email: "a@clinicare.local"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateEmployeeInput{FirstName: "B", Email: "b@clinicare.local"})
	require.NoError(t, err)

	_, err = svc.SoftDelete(ctx, first.ID)
	require.NoError(t, err)

	active := true
	employees, total, err := svc.List(ctx, &ListEmployeesInput{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, employees, 1)
	assert.Equal(t, "b@clinicare.local", employees[0].Email)

	// Without the filter the deactivated record is still listed
	employees, total, err = svc.List(ctx, &ListEmployeesInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, employees, 2)
}
