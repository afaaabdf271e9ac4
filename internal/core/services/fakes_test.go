package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"clinicare-portal/internal/adapters/persistence/models"
	"clinicare-portal/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the semantics the GORM
// implementations promise (not-found via gorm.ErrRecordNotFound, exclusive
// create, mirrored KYC status) so services can be exercised without a database.

// ---- portal users ----

type fakePortalUserRepo struct {
	users  map[uint]*models.PortalUser
	nextID uint
}

func newFakePortalUserRepo() *fakePortalUserRepo {
	return &fakePortalUserRepo{users: make(map[uint]*models.PortalUser), nextID: 1}
}

func (f *fakePortalUserRepo) Create(_ context.Context, user *models.PortalUser) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakePortalUserRepo) GetByID(_ context.Context, id uint) (*models.PortalUser, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakePortalUserRepo) GetByEmail(_ context.Context, email string) (*models.PortalUser, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePortalUserRepo) Update(_ context.Context, user *models.PortalUser) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakePortalUserRepo) Delete(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakePortalUserRepo) List(_ context.Context, offset, limit int) ([]*models.PortalUser, int64, error) {
	var out []*models.PortalUser
	for _, user := range f.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, offset, limit), int64(len(f.users)), nil
}

func (f *fakePortalUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ---- refresh tokens ----

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken), nextID: 1}
}

func (f *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = f.nextID
	f.nextID++
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range f.tokens {
		if token.TokenHash == tokenHash {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	token, ok := f.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	token, err := f.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	return f.Revoke(ctx, token.ID)
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	now := time.Now()
	for _, token := range f.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for id, token := range f.tokens {
		if token.IsExpired() {
			delete(f.tokens, id)
		}
	}
	return nil
}

// ---- employees ----

type fakeEmployeeRepo struct {
	employees map[uint]*models.Employee
	nextID    uint
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[uint]*models.Employee), nextID: 1}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, employee *models.Employee) error {
	employee.ID = f.nextID
	f.nextID++
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	employee, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return employee, nil
}

func (f *fakeEmployeeRepo) GetByEmpID(_ context.Context, empID string) (*models.Employee, error) {
	for _, employee := range f.employees {
		if employee.EmpID == empID {
			return employee, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) Update(_ context.Context, employee *models.Employee) error {
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter repositories.EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error) {
	var out []*models.Employee
	for _, employee := range f.employees {
		if filter.Status != "" && employee.Status != filter.Status {
			continue
		}
		if filter.Department != "" && employee.Department != filter.Department {
			continue
		}
		if filter.IsActive != nil && employee.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, employee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

func (f *fakeEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, employee := range f.employees {
		if employee.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) LastEmpID(_ context.Context, prefix string) (string, error) {
	last := ""
	for _, employee := range f.employees {
		if strings.HasPrefix(employee.EmpID, prefix) && employee.EmpID > last {
			last = employee.EmpID
		}
	}
	return last, nil
}

// ---- doctors ----

type fakeDoctorRepo struct {
	doctors map[uint]*models.Doctor
	nextID  uint
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uint]*models.Doctor), nextID: 1}
}

func (f *fakeDoctorRepo) Create(_ context.Context, doctor *models.Doctor) error {
	doctor.ID = f.nextID
	f.nextID++
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id uint) (*models.Doctor, error) {
	doctor, ok := f.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return doctor, nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, doctor *models.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) List(_ context.Context, filter repositories.DoctorFilter, offset, limit int) ([]*models.Doctor, int64, error) {
	var out []*models.Doctor
	for _, doctor := range f.doctors {
		if filter.Specialization != "" && doctor.Specialization != filter.Specialization {
			continue
		}
		if filter.Available != nil && doctor.IsAvailable != *filter.Available {
			continue
		}
		out = append(out, doctor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

func (f *fakeDoctorRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, doctor := range f.doctors {
		if doctor.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDoctorRepo) LastEmpID(_ context.Context, prefix string) (string, error) {
	last := ""
	for _, doctor := range f.doctors {
		if strings.HasPrefix(doctor.EmpID, prefix) && doctor.EmpID > last {
			last = doctor.EmpID
		}
	}
	return last, nil
}

// ---- staff ----

type fakeStaffRepo struct {
	staff  map[uint]*models.Staff
	nextID uint
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uint]*models.Staff), nextID: 1}
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *models.Staff) error {
	staff.ID = f.nextID
	f.nextID++
	f.staff[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id uint) (*models.Staff, error) {
	staff, ok := f.staff[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return staff, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *models.Staff) error {
	f.staff[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) List(_ context.Context, _ string, offset, limit int) ([]*models.Staff, int64, error) {
	var out []*models.Staff
	for _, staff := range f.staff {
		out = append(out, staff)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

func (f *fakeStaffRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, staff := range f.staff {
		if staff.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStaffRepo) LastEmpID(_ context.Context, prefix string) (string, error) {
	last := ""
	for _, staff := range f.staff {
		if strings.HasPrefix(staff.EmpID, prefix) && staff.EmpID > last {
			last = staff.EmpID
		}
	}
	return last, nil
}

// ---- patients ----

type fakePatientRepo struct {
	patients map[uint]*models.Patient
	nextID   uint
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uint]*models.Patient), nextID: 1}
}

func (f *fakePatientRepo) Create(_ context.Context, patient *models.Patient) error {
	patient.ID = f.nextID
	f.nextID++
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uint) (*models.Patient, error) {
	patient, ok := f.patients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return patient, nil
}

func (f *fakePatientRepo) GetByEmail(_ context.Context, email string) (*models.Patient, error) {
	for _, patient := range f.patients {
		if patient.Email == email {
			return patient, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePatientRepo) Update(_ context.Context, patient *models.Patient) error {
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) List(_ context.Context, filter repositories.PatientFilter, offset, limit int) ([]*models.Patient, int64, error) {
	var out []*models.Patient
	for _, patient := range f.patients {
		if filter.KYCStatus != "" && patient.KYCStatus != filter.KYCStatus {
			continue
		}
		out = append(out, patient)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

func (f *fakePatientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ---- appointments ----

type fakeAppointmentRepo struct {
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uint]*models.Appointment), nextID: 1}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	appt.ID = f.nextID
	f.nextID++
	f.appointments[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appt *models.Appointment) error {
	f.appointments[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, filter repositories.AppointmentFilter, offset, limit int) ([]*models.Appointment, int64, error) {
	var out []*models.Appointment
	for _, appt := range f.appointments {
		if filter.PatientID != 0 && appt.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != 0 && appt.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && appt.Status != filter.Status {
			continue
		}
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

func (f *fakeAppointmentRepo) ListForDoctorBetween(_ context.Context, doctorID uint, from, to time.Time) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, appt := range f.appointments {
		if appt.DoctorID != doctorID || appt.Status == models.AppointmentStatusCancelled {
			continue
		}
		if appt.Date.Before(from) || !appt.Date.Before(to) {
			continue
		}
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeSlot < out[j].TimeSlot })
	return out, nil
}

// ---- attendance ----

type fakeAttendanceRepo struct {
	records map[uint]*models.Attendance
	nextID  uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[uint]*models.Attendance), nextID: 1}
}

func (f *fakeAttendanceRepo) CreateExclusive(_ context.Context, att *models.Attendance, dayStart, dayEnd time.Time) error {
	for _, existing := range f.records {
		if existing.EmployeeID == att.EmployeeID && existing.IsOpen() &&
			!existing.CheckInTime.Before(dayStart) && existing.CheckInTime.Before(dayEnd) {
			return repositories.ErrOpenAttendanceExists
		}
	}
	att.ID = f.nextID
	f.nextID++
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) GetOpenForWindow(_ context.Context, employeeID uint, dayStart, dayEnd time.Time) (*models.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID == employeeID && att.IsOpen() &&
			!att.CheckInTime.Before(dayStart) && att.CheckInTime.Before(dayEnd) {
			return att, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att *models.Attendance) error {
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID uint, from, to *time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, att := range f.records {
		if att.EmployeeID != employeeID {
			continue
		}
		if from != nil && att.CheckInTime.Before(*from) {
			continue
		}
		if to != nil && !att.CheckInTime.Before(*to) {
			continue
		}
		out = append(out, att)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.After(out[j].CheckInTime) })
	return out, nil
}

func (f *fakeAttendanceRepo) ListRange(_ context.Context, from, to time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, att := range f.records {
		if att.CheckInTime.Before(from) || !att.CheckInTime.Before(to) {
			continue
		}
		out = append(out, att)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.After(out[j].CheckInTime) })
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(_ context.Context, cutoff time.Time) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, att := range f.records {
		if att.IsOpen() && att.CheckInTime.Before(cutoff) {
			out = append(out, att)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- tasks ----

type fakeTaskRepo struct {
	tasks  map[uint]*models.Task
	nextID uint
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uint]*models.Task), nextID: 1}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *models.Task) error {
	task.ID = f.nextID
	f.nextID++
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uint) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) List(_ context.Context, filter repositories.TaskFilter, offset, limit int) ([]*models.Task, int64, error) {
	var out []*models.Task
	for _, task := range f.tasks {
		if filter.StaffID != 0 && task.StaffID != filter.StaffID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

func (f *fakeTaskRepo) ListPending(_ context.Context, staffID uint) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range f.tasks {
		if task.StaffID != staffID {
			continue
		}
		if task.Status == models.TaskStatusPending || task.Status == models.TaskStatusInProgress {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskRepo) ListOverdue(_ context.Context, now time.Time) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range f.tasks {
		if task.DueDate == nil || !task.DueDate.Before(now) {
			continue
		}
		if task.Status == models.TaskStatusCompleted {
			continue
		}
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- kyc ----

type fakeKYCRepo struct {
	docs     map[uint]*models.KYCDocument // keyed by patient ID
	patients *fakePatientRepo
	nextID   uint
}

func newFakeKYCRepo(patients *fakePatientRepo) *fakeKYCRepo {
	return &fakeKYCRepo{docs: make(map[uint]*models.KYCDocument), patients: patients, nextID: 1}
}

func (f *fakeKYCRepo) GetByPatientID(_ context.Context, patientID uint) (*models.KYCDocument, error) {
	doc, ok := f.docs[patientID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return doc, nil
}

func (f *fakeKYCRepo) SaveWithPatientStatus(_ context.Context, doc *models.KYCDocument) error {
	if doc.ID == 0 {
		doc.ID = f.nextID
		f.nextID++
	}
	f.docs[doc.PatientID] = doc
	if patient, ok := f.patients.patients[doc.PatientID]; ok {
		patient.KYCStatus = doc.Status
	}
	return nil
}

func (f *fakeKYCRepo) ListByStatus(_ context.Context, status string, offset, limit int) ([]*models.KYCDocument, int64, error) {
	var out []*models.KYCDocument
	for _, doc := range f.docs {
		if status != "" && doc.Status != status {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	return paginate(out, offset, limit), total, nil
}

// ---- chat ----

type fakeChatRepo struct {
	messages []*models.ChatMessage
	nextID   uint
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1}
}

func (f *fakeChatRepo) Create(_ context.Context, msg *models.ChatMessage) error {
	msg.ID = f.nextID
	f.nextID++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatRepo) ListByPatient(_ context.Context, patientID uint, offset, limit int) ([]*models.ChatMessage, int64, error) {
	var all []*models.ChatMessage
	for _, msg := range f.messages {
		if msg.PatientID == patientID {
			all = append(all, msg)
		}
	}
	// Newest first, as the GORM repository orders by created_at DESC, id DESC
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	return paginate(all, offset, limit), total, nil
}

func (f *fakeChatRepo) MarkRead(_ context.Context, messageIDs []uint, patientID uint, readAt time.Time) error {
	ids := make(map[uint]bool, len(messageIDs))
	for _, id := range messageIDs {
		ids[id] = true
	}
	for _, msg := range f.messages {
		if ids[msg.ID] && msg.PatientID == patientID && msg.SenderType != models.ChatSenderPatient {
			msg.IsRead = true
			t := readAt
			msg.ReadAt = &t
		}
	}
	return nil
}

func (f *fakeChatRepo) CountUnread(_ context.Context, patientID uint) (int64, error) {
	var count int64
	for _, msg := range f.messages {
		if msg.PatientID == patientID && msg.SenderType == models.ChatSenderStaff && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

// paginate applies offset/limit slicing to a sorted slice
func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
