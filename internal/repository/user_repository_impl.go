package repository

import (
	"errors"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	domainRepo "github.com/VictorAraujo38/akkadian-test/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveDoctors(db *gorm.DB) ([]entity.User, error) {
	var doctors []entity.User
	err := db.Where("role_id = ? AND is_active = ?", entity.RoleIDDoctor, true).
		Order("id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
