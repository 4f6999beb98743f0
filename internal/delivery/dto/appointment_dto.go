package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	AppointmentDate    time.Time  `json:"appointment_date"`
	Symptoms           string     `json:"symptoms" validate:"required,min=3,max=2000"`
	PreferredSpecialty string     `json:"preferred_specialty" validate:"omitempty,max=100"`
	PreferredDoctorID  *uuid.UUID `json:"preferred_doctor_id"`
}

type RescheduleAppointmentRequest struct {
	NewAppointmentDate time.Time `json:"new_appointment_date"`
	Reason             string    `json:"reason" validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

// Response DTOs

// AppointmentResponse is the denormalized view shown to patients and doctors.
type AppointmentResponse struct {
	ID                   uuid.UUID  `json:"id"`
	PatientID            uuid.UUID  `json:"patient_id"`
	PatientName          string     `json:"patient_name,omitempty"`
	DoctorID             *uuid.UUID `json:"doctor_id"`
	DoctorName           string     `json:"doctor_name,omitempty"`
	DoctorLicense        string     `json:"doctor_license,omitempty"`
	SpecialtyID          *int       `json:"specialty_id"`
	SpecialtyName        string     `json:"specialty_name,omitempty"`
	Department           string     `json:"department,omitempty"`
	AppointmentDate      time.Time  `json:"appointment_date"`
	Symptoms             string     `json:"symptoms"`
	RecommendedSpecialty string     `json:"recommended_specialty"`
	TriageConfidence     string     `json:"triage_confidence"`
	TriageReasoning      string     `json:"triage_reasoning"`
	Status               string     `json:"status"`
	Notes                string     `json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentWithWarningsResponse carries the non-blocking validation
// warnings collected before a create or reschedule.
type AppointmentWithWarningsResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Warnings    []string             `json:"warnings"`
}
