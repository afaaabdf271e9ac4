package services

import (
	"context"
	"testing"

	"clinicare-portal/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDoctor_SequenceAndDefaults(t *testing.T) {
	svc := NewDoctorService(newFakeDoctorRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateDoctorInput{
		FirstName:      "Grace",
		Email:          "grace@clinicare.local",
		Specialization: "Cardiology",
	})
	require.NoError(t, err)
	assert.Equal(t, "DOC1001", first.EmpID)
	assert.True(t, first.IsAvailable)

	second, err := svc.Create(ctx, &CreateDoctorInput{FirstName: "Hans", Email: "hans@clinicare.local"})
	require.NoError(t, err)
	assert.Equal(t, "DOC1002", second.EmpID)

	_, err = svc.Create(ctx, &CreateDoctorInput{FirstName: "Dup", Email: "grace@clinicare.local"})
	assert.ErrorIs(t, err, ErrDoctorEmailExists)
}

func TestSetAvailability(t *testing.T) {
	svc := NewDoctorService(newFakeDoctorRepo())
	ctx := context.Background()

	doctor, err := svc.Create(ctx, &CreateDoctorInput{FirstName: "Grace", Email: "grace@clinicare.local"})
	require.NoError(t, err)

	updated, err := svc.SetAvailability(ctx, doctor.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	updated, err = svc.SetAvailability(ctx, doctor.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsAvailable)

	_, err = svc.SetAvailability(ctx, 999, false)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateStaff_SequenceAndDefaults(t *testing.T) {
	svc := NewStaffService(newFakeStaffRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateStaffInput{
		FirstName:   "Ivy",
		Email:       "ivy@clinicare.local",
		Designation: "Receptionist",
	})
	require.NoError(t, err)
	assert.Equal(t, "STF1001", first.EmpID)

	second, err := svc.Create(ctx, &CreateStaffInput{FirstName: "Jon", Email: "jon@clinicare.local"})
	require.NoError(t, err)
	assert.Equal(t, "STF1002", second.EmpID)

	_, err = svc.Create(ctx, &CreateStaffInput{FirstName: "Dup", Email: "ivy@clinicare.local"})
	assert.ErrorIs(t, err, ErrStaffEmailExists)
}

func TestCreatePatient_StartsPendingKYC(t *testing.T) {
	svc := NewPatientService(newFakePatientRepo())
	ctx := context.Background()

	patient, err := svc.Create(ctx, &CreatePatientInput{
		FirstName: "Omar",
		Email:     "omar@clinicare.local",
	})
	require.NoError(t, err)
	assert.Equal(t, models.KYCStatusPending, patient.KYCStatus)

	_, err = svc.Create(ctx, &CreatePatientInput{FirstName: "Dup", Email: "omar@clinicare.local"})
	assert.ErrorIs(t, err, ErrPatientEmailExists)
}

func TestListPatients_KYCFilter(t *testing.T) {
	repo := newFakePatientRepo()
	svc := NewPatientService(repo)
	ctx := context.Background()

	approved, err := svc.Create(ctx, &CreatePatientInput{FirstName: "A", Email: "a@clinicare.local"})
	require.NoError(t, err)
	approved.KYCStatus = models.KYCStatusApproved
	require.NoError(t, repo.Update(ctx, approved))

	_, err = svc.Create(ctx, &CreatePatientInput{FirstName: "B", Email: "b@clinicare.local"})
	require.NoError(t, err)

	patients, total, err := svc.List(ctx, &ListPatientsInput{KYCStatus: models.KYCStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, patients, 1)
	assert.Equal(t, "a@clinicare.local", patients[0].Email)
}
