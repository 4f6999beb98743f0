package repository

import (
	"errors"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	domainRepo "github.com/VictorAraujo38/akkadian-test/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorCredentialRepository struct{}

func NewDoctorCredentialRepository() domainRepo.DoctorCredentialRepository {
	return &doctorCredentialRepository{}
}

func (r *doctorCredentialRepository) Create(db *gorm.DB, credential *entity.DoctorCredential) error {
	return db.Omit(clause.Associations).Create(credential).Error
}

func (r *doctorCredentialRepository) FindByDoctorAndSpecialty(db *gorm.DB, doctorID uuid.UUID, specialtyID int) (*entity.DoctorCredential, error) {
	var credential entity.DoctorCredential
	err := db.Where("doctor_id = ? AND specialty_id = ?", doctorID, specialtyID).First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &credential, nil
}

func (r *doctorCredentialRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorCredential, error) {
	var credentials []entity.DoctorCredential
	err := db.Preload("Specialty").
		Where("doctor_id = ?", doctorID).
		Order("is_primary DESC, specialty_id ASC").
		Find(&credentials).Error
	if err != nil {
		return nil, err
	}
	return credentials, nil
}

func (r *doctorCredentialRepository) FindActiveBySpecialty(db *gorm.DB, specialtyID int) ([]entity.DoctorCredential, error) {
	var credentials []entity.DoctorCredential
	err := db.Joins("Doctor").
		Where("doctor_credentials.specialty_id = ? AND doctor_credentials.is_active = ?", specialtyID, true).
		Where(`"Doctor"."is_active" = ? AND "Doctor"."role_id" = ?`, true, entity.RoleIDDoctor).
		Order("doctor_credentials.doctor_id ASC").
		Find(&credentials).Error
	if err != nil {
		return nil, err
	}
	return credentials, nil
}

// DemotePrimary clears the primary flag on every credential the doctor holds.
func (r *doctorCredentialRepository) DemotePrimary(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	result := db.Model(&entity.DoctorCredential{}).
		Where("doctor_id = ? AND is_primary = ?", doctorID, true).
		Update("is_primary", false)
	return result.RowsAffected, result.Error
}
