package dto

import "github.com/google/uuid"

// Request DTOs

type AddCredentialRequest struct {
	SpecialtyID       int    `json:"specialty_id" validate:"required,min=1"`
	IsPrimary         bool   `json:"is_primary"`
	LicenseNumber     string `json:"license_number" validate:"omitempty,max=50"`
	CertificationDate string `json:"certification_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type SpecialtyResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Department  string `json:"department"`
	DoctorCount *int   `json:"doctor_count,omitempty"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}

type DoctorSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	IsPrimary     bool      `json:"is_primary"`
}

type SpecialtyWithDoctorsResponse struct {
	SpecialtyResponse
	Doctors []DoctorSummaryResponse `json:"doctors"`
}

type SpecialtyWithDoctorsListResponse struct {
	Specialties []SpecialtyWithDoctorsResponse `json:"specialties"`
	Total       int                            `json:"total"`
}

type CredentialResponse struct {
	ID                int       `json:"id"`
	DoctorID          uuid.UUID `json:"doctor_id"`
	SpecialtyID       int       `json:"specialty_id"`
	SpecialtyName     string    `json:"specialty_name,omitempty"`
	Department        string    `json:"department,omitempty"`
	IsPrimary         bool      `json:"is_primary"`
	LicenseNumber     string    `json:"license_number,omitempty"`
	CertificationDate string    `json:"certification_date,omitempty"`
	IsActive          bool      `json:"is_active"`
}

type CredentialListResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
	Total       int                  `json:"total"`
}
