package repository

import (
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindActiveDoctors returns active doctors ordered by id.
	FindActiveDoctors(db *gorm.DB) ([]entity.User, error)
}
