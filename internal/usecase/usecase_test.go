package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/service"
	"github.com/VictorAraujo38/akkadian-test/internal/testutil"
	"github.com/VictorAraujo38/akkadian-test/pkg/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Monday 2 March 2026, 06:00 UTC.
var testNow = time.Date(2026, time.March, 2, 6, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

// stubTriage always recommends one specialty.
type stubTriage struct {
	specialty *entity.Specialty
}

func (s *stubTriage) Triage(_ context.Context, _ string, _ string) *service.TriageOutcome {
	name := entity.SpecialtyGeneralMedicine
	if s.specialty != nil {
		name = s.specialty.Name
	}
	return &service.TriageOutcome{
		Result: &entity.TriageResult{
			Specialty:  name,
			Confidence: entity.ConfidenceHigh,
			Reasoning:  "matched test symptoms",
			Score:      decimal.RequireFromString("0.9"),
			Source:     entity.TriageSourceKeyword,
		},
		Specialty: s.specialty,
		Method:    service.MatchExact,
		Reasoning: "matched test symptoms",
	}
}

// stubAssignment always picks the same doctor.
type stubAssignment struct {
	service.DoctorAssignmentService
	doctorID uuid.UUID
}

func (s *stubAssignment) Assign(_ context.Context, _ service.AssignmentRequest) *service.AssignmentResult {
	id := s.doctorID
	return &service.AssignmentResult{DoctorID: &id, Strategy: service.StrategySpecialty}
}

// rejectingAudit fails every write the way a foreign key violation would,
// recording whether each write ran inside a transaction.
type rejectingAudit struct {
	inTx []bool
}

func (a *rejectingAudit) LogCreate(_ context.Context, db *gorm.DB, _ *uuid.UUID, _, _, _ string, _ interface{}) error {
	return a.record(db)
}

func (a *rejectingAudit) LogUpdate(_ context.Context, db *gorm.DB, _ *uuid.UUID, _, _, _ string, _, _ interface{}) error {
	return a.record(db)
}

func (a *rejectingAudit) record(db *gorm.DB) error {
	_, inTx := db.Statement.ConnPool.(gorm.TxCommitter)
	a.inTx = append(a.inTx, inTx)
	return errors.New(`insert or update on table "audit_logs" violates foreign key constraint`)
}

type fixture struct {
	db         *gorm.DB
	mock       sqlmock.Sqlmock
	store      *testutil.Store
	clock      *clock.Fixed
	cardiology entity.Specialty
	triage     *stubTriage
	assignment service.DoctorAssignmentService
	validation service.AppointmentValidationService
	audit      service.AuditService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock := testutil.NewMockDB(t)
	store := testutil.NewStore()
	clk := clock.NewFixed(testNow)
	log := testutil.NewLogger()

	store.AddSpecialty(entity.SpecialtyGeneralMedicine, "Clinical", true)
	cardiology := store.AddSpecialty(entity.SpecialtyCardiology, "Cardiovascular", true)

	assignment := service.NewDoctorAssignmentService(db, log, nil, store.UserRepo(), store.CredentialRepo(), store.AppointmentRepo())
	return &fixture{
		db:         db,
		mock:       mock,
		store:      store,
		clock:      clk,
		cardiology: cardiology,
		triage:     &stubTriage{specialty: &cardiology},
		assignment: assignment,
		validation: service.NewAppointmentValidationService(db, log, clk, nil, store.UserRepo(), store.AppointmentRepo(), assignment),
		audit:      service.NewAuditService(log, store.AuditRepo()),
	}
}

func (f *fixture) appointments(lock service.SlotLock) AppointmentUsecase {
	return f.appointmentsWith(f.assignment, lock)
}

func (f *fixture) appointmentsWith(assignment service.DoctorAssignmentService, lock service.SlotLock) AppointmentUsecase {
	return NewAppointmentUsecase(f.db, testutil.NewLogger(), f.clock, nil, f.store.AppointmentRepo(), f.store.AuditRepo(),
		f.triage, assignment, lock, f.audit)
}

func (f *fixture) scheduling() SchedulingUsecase {
	log := testutil.NewLogger()
	resolver := service.NewSpecialtyResolver(f.db, log, f.store.SpecialtyRepo())
	return NewSchedulingUsecase(f.db, log, f.store.UserRepo(), f.store.SpecialtyRepo(), f.triage, resolver, f.assignment, f.validation)
}

func (f *fixture) specialties() SpecialtyUsecase {
	return NewSpecialtyUsecase(f.db, testutil.NewLogger(), f.store.UserRepo(), f.store.SpecialtyRepo(), f.store.CredentialRepo(), f.audit)
}

func (f *fixture) doctor(name string) entity.User {
	return f.store.AddUser(entity.RoleIDDoctor, name, true)
}

func (f *fixture) patient(name string) entity.User {
	return f.store.AddUser(entity.RoleIDPatient, name, true)
}

func (f *fixture) expectCommit() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *fixture) expectRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}

func actorOf(user entity.User) Actor {
	return Actor{UserID: user.ID, RoleID: user.RoleID}
}

func ptr[T any](v T) *T {
	return &v
}
