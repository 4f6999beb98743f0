package repository

import (
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorCredentialRepository interface {
	Create(db *gorm.DB, credential *entity.DoctorCredential) error
	FindByDoctorAndSpecialty(db *gorm.DB, doctorID uuid.UUID, specialtyID int) (*entity.DoctorCredential, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorCredential, error)
	// FindActiveBySpecialty returns active credentials of active doctors,
	// with the doctor preloaded.
	FindActiveBySpecialty(db *gorm.DB, specialtyID int) ([]entity.DoctorCredential, error)
	DemotePrimary(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
