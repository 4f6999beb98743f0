package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type TriageRequest struct {
	Symptoms string `json:"symptoms" validate:"required,min=3,max=2000"`
}

type ValidateAppointmentRequest struct {
	AppointmentDate time.Time  `json:"appointment_date"`
	DoctorID        *uuid.UUID `json:"doctor_id"`
}

type ValidateUpdateRequest struct {
	NewAppointmentDate time.Time `json:"new_appointment_date"`
}

type AssignDoctorRequest struct {
	Specialty         string     `json:"specialty" validate:"required,max=100"`
	AppointmentDate   time.Time  `json:"appointment_date"`
	PreferredDoctorID *uuid.UUID `json:"preferred_doctor_id"`
}

// Response DTOs

type TriageResponse struct {
	Specialty   string `json:"specialty"`
	SpecialtyID *int   `json:"specialty_id"`
	Department  string `json:"department,omitempty"`
	Confidence  string `json:"confidence"`
	Reasoning   string `json:"reasoning"`
	Score       string `json:"score"`
	Source      string `json:"source"`
}

type ValidationResponse struct {
	IsValid  bool                   `json:"is_valid"`
	Errors   []string               `json:"errors"`
	Warnings []string               `json:"warnings"`
	Metadata map[string]interface{} `json:"metadata"`
}

type AvailableSlotsResponse struct {
	Date     string      `json:"date"`
	DoctorID *uuid.UUID  `json:"doctor_id,omitempty"`
	Slots    []time.Time `json:"slots"`
	Total    int         `json:"total"`
}

type AssignDoctorResponse struct {
	DoctorID    *uuid.UUID `json:"doctor_id"`
	DoctorName  string     `json:"doctor_name,omitempty"`
	SpecialtyID *int       `json:"specialty_id"`
	Specialty   string     `json:"specialty,omitempty"`
	Strategy    string     `json:"strategy"`
}

type AvailabilityResponse struct {
	DoctorID        uuid.UUID `json:"doctor_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Available       bool      `json:"available"`
}

type DoctorAvailabilityResponse struct {
	DoctorID      uuid.UUID `json:"doctor_id"`
	FullName      string    `json:"full_name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	IsPrimary     bool      `json:"is_primary"`
	DayLoad       int64     `json:"day_load"`
	Available     bool      `json:"available"`
}

type SpecialtyDoctorsResponse struct {
	Specialty       SpecialtyResponse            `json:"specialty"`
	AppointmentDate time.Time                    `json:"appointment_date"`
	Doctors         []DoctorAvailabilityResponse `json:"doctors"`
	Total           int                          `json:"total"`
}
