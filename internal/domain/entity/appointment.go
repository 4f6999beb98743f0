package entity

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is stored as its ordinal and displayed as its name.
type AppointmentStatus int

const (
	AppointmentStatusScheduled AppointmentStatus = iota
	AppointmentStatusConfirmed
	AppointmentStatusInProgress
	AppointmentStatusCompleted
	AppointmentStatusCancelled
	AppointmentStatusNoShow
)

var ErrUnknownAppointmentStatus = errors.New("unknown appointment status")

var appointmentStatusNames = [...]string{
	AppointmentStatusScheduled:  "Scheduled",
	AppointmentStatusConfirmed:  "Confirmed",
	AppointmentStatusInProgress: "InProgress",
	AppointmentStatusCompleted:  "Completed",
	AppointmentStatusCancelled:  "Cancelled",
	AppointmentStatusNoShow:     "NoShow",
}

func (s AppointmentStatus) String() string {
	if s < 0 || int(s) >= len(appointmentStatusNames) {
		return "Unknown"
	}
	return appointmentStatusNames[s]
}

func (s AppointmentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseAppointmentStatus matches a status name case-insensitively. Separators
// are ignored so "in_progress" and "In-Progress" both parse.
func ParseAppointmentStatus(name string) (AppointmentStatus, error) {
	normalized := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(name))
	for i, candidate := range appointmentStatusNames {
		if strings.EqualFold(candidate, normalized) {
			return AppointmentStatus(i), nil
		}
	}
	return 0, ErrUnknownAppointmentStatus
}

// IsTerminal reports whether nothing can follow this status.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled || s == AppointmentStatusNoShow
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusConfirmed: {
		AppointmentStatusInProgress,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	},
	AppointmentStatusInProgress: {
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	},
}

// CanTransitionTo reports whether a status update from s to next is legal.
// Re-applying the current status is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is never hard-deleted; cancellation is a status.
type Appointment struct {
	ID                   uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID             *uuid.UUID        `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	SpecialtyID          *int              `gorm:"index" json:"specialty_id,omitempty"`
	AppointmentDate      time.Time         `gorm:"not null;index" json:"appointment_date"`
	Symptoms             string            `gorm:"type:text;not null" json:"symptoms"`
	RecommendedSpecialty string            `gorm:"type:varchar(100)" json:"recommended_specialty"`
	TriageConfidence     string            `gorm:"type:varchar(10)" json:"triage_confidence"`
	TriageReasoning      string            `gorm:"type:text" json:"triage_reasoning"`
	Status               AppointmentStatus `gorm:"type:smallint;not null;default:0;index" json:"status"`
	Notes                string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt            time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   User       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    *User      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsParticipant reports whether userID is the appointment's patient or doctor.
func (a *Appointment) IsParticipant(userID uuid.UUID) bool {
	if a.PatientID == userID {
		return true
	}
	return a.DoctorID != nil && *a.DoctorID == userID
}

// AppendNote adds a line to the free-text notes.
func (a *Appointment) AppendNote(note string) {
	if a.Notes == "" {
		a.Notes = note
		return
	}
	a.Notes = a.Notes + "\n" + note
}
