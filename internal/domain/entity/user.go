package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is either a patient or a doctor. Users are deactivated, never deleted,
// because appointments keep referencing them.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID        int       `gorm:"not null;index" json:"role_id"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName      string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	IsActive      *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Active treats a missing flag as active, matching the column default.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

func (u *User) IsDoctor() bool {
	return u.RoleID == RoleIDDoctor
}

func (u *User) IsPatient() bool {
	return u.RoleID == RoleIDPatient
}
