package repository

import (
	"errors"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	domainRepo "github.com/VictorAraujo38/akkadian-test/internal/domain/repository"

	"gorm.io/gorm"
)

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) FindByID(db *gorm.DB, id int) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.Where("id = ?", id).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindActiveByName(db *gorm.DB, name string) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.Where("name = ? AND is_active = ?", name, true).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindAllActive(db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) FindAllActiveWithDoctorCount(db *gorm.DB) ([]entity.SpecialtySummary, error) {
	var summaries []entity.SpecialtySummary
	err := db.Model(&entity.Specialty{}).
		Select("specialties.*, COUNT(users.id) AS doctor_count").
		Joins("LEFT JOIN doctor_credentials ON doctor_credentials.specialty_id = specialties.id AND doctor_credentials.is_active = true").
		Joins("LEFT JOIN users ON users.id = doctor_credentials.doctor_id AND users.is_active = true").
		Where("specialties.is_active = ?", true).
		Group("specialties.id").
		Order("specialties.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
