package entity

import "time"

// Specialty is seeded reference data. Other records point at it by ID.
type Specialty struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Department  string    `gorm:"type:varchar(100);not null" json:"department"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Specialty) TableName() string {
	return "specialties"
}

// SpecialtySummary is a specialty with the number of active doctors holding
// an active credential for it.
type SpecialtySummary struct {
	Specialty   `gorm:"embedded"`
	DoctorCount int `gorm:"column:doctor_count"`
}

// Canonical names the engines rely on.
const (
	SpecialtyGeneralMedicine = "General Medicine"
	SpecialtyEmergency       = "Emergency Medicine"
	SpecialtyCardiology      = "Cardiology"
	SpecialtyNeurology       = "Neurology"
	SpecialtyPulmonology     = "Pulmonology"
	SpecialtyPsychiatry      = "Psychiatry"
	SpecialtyOrthopedics     = "Orthopedics"
	SpecialtyAllergology     = "Allergology"
	SpecialtyGastro          = "Gastroenterology"
	SpecialtyOphthalmology   = "Ophthalmology"
	SpecialtyENT             = "Otorhinolaryngology"
	SpecialtyDermatology     = "Dermatology"
	SpecialtyEndocrinology   = "Endocrinology"
	SpecialtyUrology         = "Urology"
	SpecialtyPediatrics      = "Pediatrics"
	SpecialtyGynecology      = "Gynecology"
)
