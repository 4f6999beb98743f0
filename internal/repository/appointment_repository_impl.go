package repository

import (
	"errors"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	domainRepo "github.com/VictorAraujo38/akkadian-test/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Preload("Specialty").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Specialty").
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Specialty").
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date < ?", doctorID, start, end).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) HasConflict(db *gorm.DB, doctorID uuid.UUID, instant time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?", doctorID, instant, entity.AppointmentStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) CountByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date >= ? AND appointment_date < ? AND status <> ?",
			doctorID, start, end, entity.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByPatientBetween(db *gorm.DB, patientID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND appointment_date >= ? AND appointment_date < ? AND status <> ?",
			patientID, start, end, entity.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}

// CancelAppointment atomically cancels an appointment only while it is still open.
// Returns affected rows: 1 = success, 0 = already cancelled or completed.
func (r *appointmentRepository) CancelAppointment(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status NOT IN ?", id, []entity.AppointmentStatus{
			entity.AppointmentStatusCancelled,
			entity.AppointmentStatusCompleted,
		}).
		Updates(map[string]interface{}{
			"status":     entity.AppointmentStatusCancelled,
			"updated_at": at.UTC(),
		})
	return result.RowsAffected, result.Error
}
