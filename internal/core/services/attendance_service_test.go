package services

import (
	"context"
	"testing"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceFixture(t *testing.T) (*AttendanceService, *fakeAttendanceRepo, *models.Employee) {
	t.Helper()
	attendanceRepo := newFakeAttendanceRepo()
	employeeRepo := newFakeEmployeeRepo()

	employee := &models.Employee{
		EmpID:     "EMP1001",
		FirstName: "Nina",
		Email:     "nina@clinicare.local",
		Status:    models.EmployeeStatusWorking,
		IsActive:  true,
	}
	require.NoError(t, employeeRepo.Create(context.Background(), employee))

	return NewAttendanceService(attendanceRepo, employeeRepo), attendanceRepo, employee
}

func TestCheckIn_OpensRecord(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)

	att, err := svc.CheckIn(context.Background(), employee.ID, &CheckInInput{})
	require.NoError(t, err)
	assert.Equal(t, employee.ID, att.EmployeeID)
	assert.True(t, att.IsOpen())
	assert.False(t, att.CheckInTime.IsZero())
}

func TestCheckIn_SecondCheckInRejected(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)

	_, err := svc.CheckIn(context.Background(), employee.ID, nil)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), employee.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)

	_, err := svc.CheckIn(context.Background(), 999, nil)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestCheckIn_InactiveEmployee(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)
	employee.IsActive = false

	_, err := svc.CheckIn(context.Background(), employee.ID, nil)
	assert.ErrorIs(t, err, ErrEmployeeNotWorking)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)

	_, err := svc.CheckOut(context.Background(), employee.ID, nil)
	assert.ErrorIs(t, err, ErrNoCheckIn)
}

func TestCheckOut_ClosesRecordAndDerivesStatus(t *testing.T) {
	svc, repo, employee := newAttendanceFixture(t)

	att, err := svc.CheckIn(context.Background(), employee.ID, nil)
	require.NoError(t, err)

	// Backdate the check-in so the derived hours land in the present band
	att.CheckInTime = time.Now().Add(-9 * time.Hour)
	require.NoError(t, repo.Update(context.Background(), att))

	closed, err := svc.CheckOut(context.Background(), employee.ID, &CheckOutInput{})
	require.NoError(t, err)
	require.NotNil(t, closed.CheckOutTime)
	require.NotNil(t, closed.WorkingHours)
	assert.InDelta(t, 9.0, *closed.WorkingHours, 0.01)
	assert.Equal(t, models.AttendanceStatusPresent, closed.Status)

	// A further check-out finds no open record
	_, err = svc.CheckOut(context.Background(), employee.ID, nil)
	assert.ErrorIs(t, err, ErrNoCheckIn)
}

func TestCheckOut_RecordsStaffRecorder(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)
	ctx := context.Background()

	opener := uint(7)
	_, err := svc.CheckIn(ctx, employee.ID, &CheckInInput{StaffID: &opener})
	require.NoError(t, err)

	closer := uint(9)
	closed, err := svc.CheckOut(ctx, employee.ID, &CheckOutInput{StaffID: &closer})
	require.NoError(t, err)
	require.NotNil(t, closed.StaffID)
	assert.Equal(t, closer, *closed.StaffID)
}

func TestCheckOut_KeepsCheckInRecorder(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)
	ctx := context.Background()

	opener := uint(7)
	_, err := svc.CheckIn(ctx, employee.ID, &CheckInInput{StaffID: &opener})
	require.NoError(t, err)

	// A check-out without a recorder leaves the check-in recorder in place
	closed, err := svc.CheckOut(ctx, employee.ID, &CheckOutInput{})
	require.NoError(t, err)
	require.NotNil(t, closed.StaffID)
	assert.Equal(t, opener, *closed.StaffID)
}

func TestCheckIn_AllowedAfterCheckOut(t *testing.T) {
	svc, repo, employee := newAttendanceFixture(t)

	att, err := svc.CheckIn(context.Background(), employee.ID, nil)
	require.NoError(t, err)
	now := time.Now()
	att.CheckOutTime = &now
	require.NoError(t, repo.Update(context.Background(), att))

	// Closed records do not block a new check-in
	_, err = svc.CheckIn(context.Background(), employee.ID, nil)
	assert.NoError(t, err)
}

func TestWorkingHours_Rounding(t *testing.T) {
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 8.0, WorkingHours(in, in.Add(8*time.Hour)))
	assert.Equal(t, 7.5, WorkingHours(in, in.Add(7*time.Hour+30*time.Minute)))
	// 7h29m = 7.4833...h rounds to 7.48
	assert.Equal(t, 7.48, WorkingHours(in, in.Add(7*time.Hour+29*time.Minute)))
	assert.Equal(t, 0.0, WorkingHours(in, in))
}

func TestStatusForHours_Thresholds(t *testing.T) {
	assert.Equal(t, models.AttendanceStatusPresent, StatusForHours(9.5))
	assert.Equal(t, models.AttendanceStatusPresent, StatusForHours(8.0))
	assert.Equal(t, models.AttendanceStatusHalfDay, StatusForHours(7.99))
	assert.Equal(t, models.AttendanceStatusHalfDay, StatusForHours(4.0))
	assert.Equal(t, models.AttendanceStatusLate, StatusForHours(3.99))
	assert.Equal(t, models.AttendanceStatusLate, StatusForHours(0))
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	at := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)

	start, end := DayWindow(at)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), end)
}

func TestTodayStatus(t *testing.T) {
	svc, repo, employee := newAttendanceFixture(t)

	status, err := svc.TodayStatus(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.False(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)

	att, err := svc.CheckIn(context.Background(), employee.ID, nil)
	require.NoError(t, err)

	status, err = svc.TodayStatus(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.False(t, status.CheckedOut)

	att.CheckInTime = time.Now().Add(-5 * time.Hour)
	require.NoError(t, repo.Update(context.Background(), att))
	_, err = svc.CheckOut(context.Background(), employee.ID, nil)
	require.NoError(t, err)

	status, err = svc.TodayStatus(context.Background(), employee.ID)
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.True(t, status.CheckedOut)
	assert.Equal(t, models.AttendanceStatusHalfDay, status.Status)
}

func TestHistory_InvalidRange(t *testing.T) {
	svc, _, employee := newAttendanceFixture(t)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := svc.History(context.Background(), employee.ID, &from, &to)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestListAll_InvalidRange(t *testing.T) {
	svc, _, _ := newAttendanceFixture(t)

	from := time.Now()
	_, err := svc.ListAll(context.Background(), from, from.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestCloseStaleSessions(t *testing.T) {
	svc, repo, employee := newAttendanceFixture(t)

	att, err := svc.CheckIn(context.Background(), employee.ID, nil)
	require.NoError(t, err)
	att.CheckInTime = time.Now().Add(-30 * time.Hour)
	require.NoError(t, repo.Update(context.Background(), att))

	cutoff := time.Now()
	closed, err := svc.CloseStaleSessions(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	require.NotNil(t, att.CheckOutTime)
	assert.Equal(t, cutoff, *att.CheckOutTime)
	require.NotNil(t, att.WorkingHours)
	assert.Equal(t, models.AttendanceStatusPresent, att.Status)

	// Nothing left to close
	closed, err = svc.CloseStaleSessions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}
