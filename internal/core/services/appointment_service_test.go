package services

import (
	"context"
	"testing"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentFixture(t *testing.T) (*AppointmentService, *models.Patient, *models.Doctor) {
	t.Helper()
	appointmentRepo := newFakeAppointmentRepo()
	patientRepo := newFakePatientRepo()
	doctorRepo := newFakeDoctorRepo()

	patient := &models.Patient{
		FirstName: "Omar",
		Email:     "omar@clinicare.local",
		KYCStatus: models.KYCStatusPending,
	}
	require.NoError(t, patientRepo.Create(context.Background(), patient))

	doctor := &models.Doctor{
		EmpID:       "DOC1001",
		FirstName:   "Grace",
		Email:       "grace@clinicare.local",
		IsAvailable: true,
	}
	require.NoError(t, doctorRepo.Create(context.Background(), doctor))

	return NewAppointmentService(appointmentRepo, patientRepo, doctorRepo), patient, doctor
}

func TestCreateAppointment(t *testing.T) {
	svc, patient, doctor := newAppointmentFixture(t)

	appt, err := svc.Create(context.Background(), &CreateAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local),
		TimeSlot:  "10:30",
		Reason:    "annual checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusScheduled, appt.Status)
	assert.Equal(t, "10:30", appt.TimeSlot)
}

func TestCreateAppointment_UnknownPatient(t *testing.T) {
	svc, _, doctor := newAppointmentFixture(t)

	_, err := svc.Create(context.Background(), &CreateAppointmentInput{
		PatientID: 999,
		DoctorID:  doctor.ID,
		Date:      time.Now(),
		TimeSlot:  "10:30",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestCreateAppointment_UnknownDoctor(t *testing.T) {
	svc, patient, _ := newAppointmentFixture(t)

	_, err := svc.Create(context.Background(), &CreateAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  999,
		Date:      time.Now(),
		TimeSlot:  "10:30",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateAppointment_DoctorUnavailable(t *testing.T) {
	svc, patient, doctor := newAppointmentFixture(t)
	doctor.IsAvailable = false

	_, err := svc.Create(context.Background(), &CreateAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Now(),
		TimeSlot:  "10:30",
	})
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestAcceptAppointment(t *testing.T) {
	svc, patient, doctor := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: time.Now(), TimeSlot: "09:00",
	})
	require.NoError(t, err)

	accepted, err := svc.Accept(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, accepted.Status)
}

func TestCancelledAppointmentIsFinal(t *testing.T) {
	svc, patient, doctor := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: time.Now(), TimeSlot: "09:00",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, appt.ID)
	require.NoError(t, err)

	_, err = svc.Accept(ctx, appt.ID)
	assert.ErrorIs(t, err, ErrAppointmentCancelled)

	_, err = svc.Reschedule(ctx, appt.ID, time.Now().AddDate(0, 0, 1), "11:00")
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}

func TestReschedule_OverwritesInPlace(t *testing.T) {
	svc, patient, doctor := newAppointmentFixture(t)
	ctx := context.Background()

	appt, err := svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local), TimeSlot: "09:00",
	})
	require.NoError(t, err)

	newDate := time.Date(2026, 9, 21, 0, 0, 0, 0, time.Local)
	moved, err := svc.Reschedule(ctx, appt.ID, newDate, "14:00")
	require.NoError(t, err)
	assert.Equal(t, appt.ID, moved.ID)
	assert.True(t, moved.Date.Equal(newDate))
	assert.Equal(t, "14:00", moved.TimeSlot)
	assert.Equal(t, models.AppointmentStatusRescheduled, moved.Status)

	// No second record was created
	_, total, err := svc.List(ctx, &ListAppointmentsInput{DoctorID: doctor.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTodayForDoctor(t *testing.T) {
	svc, patient, doctor := newAppointmentFixture(t)
	ctx := context.Background()

	dayStart, _ := DayWindow(time.Now())
	today := dayStart.Add(10 * time.Hour)

	late, err := svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: today, TimeSlot: "15:00",
	})
	require.NoError(t, err)
	early, err := svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: today, TimeSlot: "08:30",
	})
	require.NoError(t, err)

	// Cancelled today and scheduled tomorrow both stay out of the list
	cancelled, err := svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID, Date: today, TimeSlot: "12:00",
	})
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateAppointmentInput{
		PatientID: patient.ID, DoctorID: doctor.ID,
		Date: today.AddDate(0, 0, 1), TimeSlot: "08:00",
	})
	require.NoError(t, err)

	appts, err := svc.TodayForDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, early.ID, appts[0].ID)
	assert.Equal(t, late.ID, appts[1].ID)
}
