package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store is an in-memory stand-in for the postgres schema. Its repositories
// ignore the *gorm.DB they are given. Appointment inserts honour the
// partial unique index on (doctor_id, appointment_date).
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]entity.User
	specialties  map[int]entity.Specialty
	credentials  []entity.DoctorCredential
	appointments map[uuid.UUID]entity.Appointment
	auditLogs    []entity.AuditLog

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:        map[uuid.UUID]entity.User{},
		specialties:  map[int]entity.Specialty{},
		appointments: map[uuid.UUID]entity.Appointment{},
	}
}

func boolPtr(b bool) *bool { return &b }

func (s *Store) AddUser(roleID int, name string, active bool) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := entity.User{
		ID:       uuid.New(),
		RoleID:   roleID,
		Email:    name + "@clinic.test",
		FullName: name,
		IsActive: boolPtr(active),
	}
	s.users[user.ID] = user
	return user
}

// AddUserWithID is AddUser with a caller-chosen id, for ordering tests.
func (s *Store) AddUserWithID(id uuid.UUID, roleID int, name string, active bool) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := entity.User{ID: id, RoleID: roleID, Email: name + "@clinic.test", FullName: name, IsActive: boolPtr(active)}
	s.users[user.ID] = user
	return user
}

func (s *Store) AddSpecialty(name, department string, active bool) entity.Specialty {
	s.mu.Lock()
	defer s.mu.Unlock()
	specialty := entity.Specialty{ID: len(s.specialties) + 1, Name: name, Department: department, IsActive: active}
	s.specialties[specialty.ID] = specialty
	return specialty
}

func (s *Store) AddCredential(doctorID uuid.UUID, specialtyID int, primary bool) entity.DoctorCredential {
	s.mu.Lock()
	defer s.mu.Unlock()
	credential := entity.DoctorCredential{
		ID:            len(s.credentials) + 1,
		DoctorID:      doctorID,
		SpecialtyID:   specialtyID,
		IsPrimary:     primary,
		LicenseNumber: "CRM-" + doctorID.String()[:6],
		IsActive:      true,
	}
	s.credentials = append(s.credentials, credential)
	return credential
}

// AddAppointment inserts a row directly, bypassing the unique index.
func (s *Store) AddAppointment(patientID uuid.UUID, doctorID *uuid.UUID, instant time.Time, status entity.AppointmentStatus) entity.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment := entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: instant.UTC(),
		Symptoms:        "seeded",
		Status:          status,
	}
	s.appointments[appointment.ID] = appointment
	return appointment
}

func (s *Store) Appointment(id uuid.UUID) (entity.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment, ok := s.appointments[id]
	return appointment, ok
}

func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AuditLog(nil), s.auditLogs...)
}

func (s *Store) Credentials() []entity.DoctorCredential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.DoctorCredential(nil), s.credentials...)
}

func (s *Store) UserRepo() repository.UserRepository                   { return &fakeUserRepo{s} }
func (s *Store) SpecialtyRepo() repository.SpecialtyRepository         { return &fakeSpecialtyRepo{s} }
func (s *Store) CredentialRepo() repository.DoctorCredentialRepository { return &fakeCredentialRepo{s} }
func (s *Store) AppointmentRepo() repository.AppointmentRepository     { return &fakeAppointmentRepo{s} }
func (s *Store) AuditRepo() repository.AuditLogRepository              { return &fakeAuditRepo{s} }

// joined fills the relations FindByID would preload. Callers hold mu.
func (s *Store) joined(a entity.Appointment) *entity.Appointment {
	a.Patient = s.users[a.PatientID]
	if a.DoctorID != nil {
		if doctor, ok := s.users[*a.DoctorID]; ok {
			a.Doctor = &doctor
		}
	}
	if a.SpecialtyID != nil {
		if specialty, ok := s.specialties[*a.SpecialtyID]; ok {
			a.Specialty = &specialty
		}
	}
	return &a
}

type fakeUserRepo struct{ s *Store }

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) FindActiveDoctors(_ *gorm.DB) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var doctors []entity.User
	for _, user := range r.s.users {
		if user.IsDoctor() && user.Active() {
			doctors = append(doctors, user)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID.String() < doctors[j].ID.String() })
	return doctors, nil
}

type fakeSpecialtyRepo struct{ s *Store }

func (r *fakeSpecialtyRepo) FindByID(_ *gorm.DB, id int) (*entity.Specialty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	specialty, ok := r.s.specialties[id]
	if !ok {
		return nil, nil
	}
	return &specialty, nil
}

func (r *fakeSpecialtyRepo) FindActiveByName(_ *gorm.DB, name string) (*entity.Specialty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, specialty := range r.s.specialties {
		if specialty.IsActive && specialty.Name == name {
			found := specialty
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeSpecialtyRepo) active() []entity.Specialty {
	var specialties []entity.Specialty
	for _, specialty := range r.s.specialties {
		if specialty.IsActive {
			specialties = append(specialties, specialty)
		}
	}
	sort.Slice(specialties, func(i, j int) bool { return specialties[i].Name < specialties[j].Name })
	return specialties
}

func (r *fakeSpecialtyRepo) FindAllActive(_ *gorm.DB) ([]entity.Specialty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.active(), nil
}

func (r *fakeSpecialtyRepo) FindAllActiveWithDoctorCount(_ *gorm.DB) ([]entity.SpecialtySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var summaries []entity.SpecialtySummary
	for _, specialty := range r.active() {
		count := 0
		for _, credential := range r.s.credentials {
			doctor := r.s.users[credential.DoctorID]
			if credential.SpecialtyID == specialty.ID && credential.IsActive && doctor.Active() {
				count++
			}
		}
		summaries = append(summaries, entity.SpecialtySummary{Specialty: specialty, DoctorCount: count})
	}
	return summaries, nil
}

type fakeCredentialRepo struct{ s *Store }

func (r *fakeCredentialRepo) Create(_ *gorm.DB, credential *entity.DoctorCredential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.credentials {
		if existing.DoctorID == credential.DoctorID && existing.SpecialtyID == credential.SpecialtyID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_doctor_specialty"}
		}
	}
	credential.ID = len(r.s.credentials) + 1
	r.s.credentials = append(r.s.credentials, *credential)
	return nil
}

func (r *fakeCredentialRepo) FindByDoctorAndSpecialty(_ *gorm.DB, doctorID uuid.UUID, specialtyID int) (*entity.DoctorCredential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, credential := range r.s.credentials {
		if credential.DoctorID == doctorID && credential.SpecialtyID == specialtyID {
			found := credential
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeCredentialRepo) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorCredential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var credentials []entity.DoctorCredential
	for _, credential := range r.s.credentials {
		if credential.DoctorID == doctorID {
			credential.Specialty = r.s.specialties[credential.SpecialtyID]
			credentials = append(credentials, credential)
		}
	}
	sort.SliceStable(credentials, func(i, j int) bool {
		if credentials[i].IsPrimary != credentials[j].IsPrimary {
			return credentials[i].IsPrimary
		}
		return credentials[i].SpecialtyID < credentials[j].SpecialtyID
	})
	return credentials, nil
}

func (r *fakeCredentialRepo) FindActiveBySpecialty(_ *gorm.DB, specialtyID int) ([]entity.DoctorCredential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var credentials []entity.DoctorCredential
	for _, credential := range r.s.credentials {
		doctor, ok := r.s.users[credential.DoctorID]
		if !ok || credential.SpecialtyID != specialtyID || !credential.IsActive || !doctor.Active() || !doctor.IsDoctor() {
			continue
		}
		credential.Doctor = doctor
		credentials = append(credentials, credential)
	}
	sort.Slice(credentials, func(i, j int) bool {
		return credentials[i].DoctorID.String() < credentials[j].DoctorID.String()
	})
	return credentials, nil
}

func (r *fakeCredentialRepo) DemotePrimary(_ *gorm.DB, doctorID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var affected int64
	for i := range r.s.credentials {
		if r.s.credentials[i].DoctorID == doctorID && r.s.credentials[i].IsPrimary {
			r.s.credentials[i].IsPrimary = false
			affected++
		}
	}
	return affected, nil
}

type fakeAppointmentRepo struct{ s *Store }

func (r *fakeAppointmentRepo) conflict(doctorID uuid.UUID, instant time.Time, except uuid.UUID) bool {
	for _, a := range r.s.appointments {
		if a.ID != except && a.DoctorID != nil && *a.DoctorID == doctorID &&
			a.AppointmentDate.Equal(instant) && a.Status != entity.AppointmentStatusCancelled {
			return true
		}
	}
	return false
}

func (r *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if appointment.DoctorID != nil && r.conflict(*appointment.DoctorID, appointment.AppointmentDate, appointment.ID) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	stored.Patient, stored.Doctor, stored.Specialty = entity.User{}, nil, nil
	r.s.appointments[stored.ID] = stored
	return nil
}

func (r *fakeAppointmentRepo) Update(_ *gorm.DB, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if appointment.DoctorID != nil && appointment.Status != entity.AppointmentStatusCancelled &&
		r.conflict(*appointment.DoctorID, appointment.AppointmentDate, appointment.ID) {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}
	}
	stored := *appointment
	stored.Patient, stored.Doctor, stored.Specialty = entity.User{}, nil, nil
	r.s.appointments[stored.ID] = stored
	return nil
}

func (r *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	appointment, ok := r.s.appointments[id]
	if !ok {
		return nil, nil
	}
	return r.s.joined(appointment), nil
}

func (r *fakeAppointmentRepo) filter(keep func(entity.Appointment) bool) []entity.Appointment {
	var found []entity.Appointment
	for _, a := range r.s.appointments {
		if keep(a) {
			found = append(found, *r.s.joined(a))
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].AppointmentDate.Before(found[j].AppointmentDate) })
	return found
}

func (r *fakeAppointmentRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(a entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *fakeAppointmentRepo) FindByDoctorBetween(_ *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(a entity.Appointment) bool {
		return a.DoctorID != nil && *a.DoctorID == doctorID && within(a.AppointmentDate, start, end)
	}), nil
}

func (r *fakeAppointmentRepo) HasConflict(_ *gorm.DB, doctorID uuid.UUID, instant time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	return r.conflict(doctorID, instant, uuid.Nil), nil
}

func (r *fakeAppointmentRepo) count(keep func(entity.Appointment) bool) int64 {
	var n int64
	for _, a := range r.s.appointments {
		if a.Status != entity.AppointmentStatusCancelled && keep(a) {
			n++
		}
	}
	return n
}

func (r *fakeAppointmentRepo) CountByDoctorBetween(_ *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return r.count(func(a entity.Appointment) bool {
		return a.DoctorID != nil && *a.DoctorID == doctorID && within(a.AppointmentDate, start, end)
	}), nil
}

func (r *fakeAppointmentRepo) CountByPatientBetween(_ *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return r.count(func(a entity.Appointment) bool {
		return a.PatientID == patientID && within(a.AppointmentDate, start, end)
	}), nil
}

func (r *fakeAppointmentRepo) CancelAppointment(_ *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	a, ok := r.s.appointments[id]
	if !ok || a.Status == entity.AppointmentStatusCancelled || a.Status == entity.AppointmentStatusCompleted {
		return 0, nil
	}
	a.Status = entity.AppointmentStatusCancelled
	a.UpdatedAt = at.UTC()
	r.s.appointments[id] = a
	return 1, nil
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

type fakeAuditRepo struct{ s *Store }

func (r *fakeAuditRepo) Create(_ *gorm.DB, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	log.ID = int64(len(r.s.auditLogs) + 1)
	log.CreatedAt = time.Now().UTC()
	r.s.auditLogs = append(r.s.auditLogs, *log)
	return nil
}

func (r *fakeAuditRepo) FindAll(_ *gorm.DB) ([]entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return append([]entity.AuditLog(nil), r.s.auditLogs...), nil
}

func (r *fakeAuditRepo) FindByID(_ *gorm.DB, id int64) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, log := range r.s.auditLogs {
		if log.ID == id {
			found := log
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAuditRepo) FindByEntity(_ *gorm.DB, entityName, entityID string) ([]entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var logs []entity.AuditLog
	for _, log := range r.s.auditLogs {
		if log.Metadata["entity"] == entityName && log.Metadata["entity_id"] == entityID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}
