package repository

import (
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Specialty, error)
	// FindActiveByName is an exact, case-sensitive lookup.
	FindActiveByName(db *gorm.DB, name string) (*entity.Specialty, error)
	FindAllActive(db *gorm.DB) ([]entity.Specialty, error)
	FindAllActiveWithDoctorCount(db *gorm.DB) ([]entity.SpecialtySummary, error)
}
