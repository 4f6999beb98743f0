package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorCredential links a doctor to a specialty. A doctor holds at most one
// primary credential; the write path demotes older primaries.
type DoctorCredential struct {
	ID                int        `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_specialty" json:"doctor_id"`
	SpecialtyID       int        `gorm:"not null;uniqueIndex:idx_doctor_specialty;index" json:"specialty_id"`
	IsPrimary         bool       `gorm:"not null;default:false" json:"is_primary"`
	LicenseNumber     string     `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	CertificationDate *time.Time `gorm:"type:date" json:"certification_date,omitempty"`
	IsActive          bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor    User      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (DoctorCredential) TableName() string {
	return "doctor_credentials"
}
