package service

import (
	"testing"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/testutil"
	"github.com/VictorAraujo38/akkadian-test/pkg/clock"

	"gorm.io/gorm"
)

// Monday 2 March 2026, 06:00 UTC.
var testNow = time.Date(2026, time.March, 2, 6, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

type fixture struct {
	db         *gorm.DB
	store      *testutil.Store
	clock      *clock.Fixed
	resolver   SpecialtyResolver
	assignment DoctorAssignmentService
	validation AppointmentValidationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, _ := testutil.NewMockDB(t)
	store := testutil.NewStore()
	clk := clock.NewFixed(testNow)
	log := testutil.NewLogger()

	assignment := NewDoctorAssignmentService(db, log, nil, store.UserRepo(), store.CredentialRepo(), store.AppointmentRepo())
	return &fixture{
		db:         db,
		store:      store,
		clock:      clk,
		resolver:   NewSpecialtyResolver(db, log, store.SpecialtyRepo()),
		assignment: assignment,
		validation: NewAppointmentValidationService(db, log, clk, nil, store.UserRepo(), store.AppointmentRepo(), assignment),
	}
}

func (f *fixture) doctor(name string) entity.User {
	return f.store.AddUser(entity.RoleIDDoctor, name, true)
}

func (f *fixture) patient(name string) entity.User {
	return f.store.AddUser(entity.RoleIDPatient, name, true)
}
