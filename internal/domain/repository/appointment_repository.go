package repository

import (
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository counts and conflict checks ignore cancelled rows.
// Day and month windows are half-open: [start, end).
type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.Appointment, error)
	HasConflict(db *gorm.DB, doctorID uuid.UUID, instant time.Time) (bool, error)
	CountByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error)
	CountByPatientBetween(db *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error)
	// CancelAppointment cancels only if the row is neither cancelled nor
	// completed, stamping updated_at with at. It returns the affected row count.
	CancelAppointment(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
}
