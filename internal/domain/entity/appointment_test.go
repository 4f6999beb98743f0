package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    AppointmentStatus
		wantErr bool
	}{
		{in: "Scheduled", want: AppointmentStatusScheduled},
		{in: "confirmed", want: AppointmentStatusConfirmed},
		{in: "IN_PROGRESS", want: AppointmentStatusInProgress},
		{in: "in-progress", want: AppointmentStatusInProgress},
		{in: " completed ", want: AppointmentStatusCompleted},
		{in: "CANCELLED", want: AppointmentStatusCancelled},
		{in: "noshow", want: AppointmentStatusNoShow},
		{in: "done", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAppointmentStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAppointmentStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppointmentStatus_StringAndJSON(t *testing.T) {
	assert.Equal(t, "InProgress", AppointmentStatusInProgress.String())
	assert.Equal(t, "Unknown", AppointmentStatus(42).String())

	raw, err := json.Marshal(AppointmentStatusNoShow)
	require.NoError(t, err)
	assert.Equal(t, `"NoShow"`, string(raw))
}

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusConfirmed, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusInProgress, true},
		{AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{AppointmentStatusInProgress, AppointmentStatusNoShow, false},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, false},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusInProgress, false},
		{AppointmentStatusConfirmed, AppointmentStatusConfirmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsParticipant(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()

	appt := &Appointment{PatientID: patientID}
	assert.True(t, appt.IsParticipant(patientID))
	assert.False(t, appt.IsParticipant(doctorID))

	appt.DoctorID = &doctorID
	assert.True(t, appt.IsParticipant(doctorID))
	assert.False(t, appt.IsParticipant(uuid.New()))
}

func TestAppointment_AppendNote(t *testing.T) {
	appt := &Appointment{}
	appt.AppendNote("Rescheduled: traffic")
	appt.AppendNote("Rescheduled: exam pending")
	assert.Equal(t, "Rescheduled: traffic\nRescheduled: exam pending", appt.Notes)
}

func TestValidationResult_Merge(t *testing.T) {
	r := NewValidationResult()
	assert.True(t, r.IsValid())

	other := NewValidationResult()
	other.AddError("slot taken")
	other.AddWarning("same day")
	other.Metadata["k"] = 1

	r.Metadata["k"] = 2
	r.Merge(other)
	r.Merge(nil)

	assert.False(t, r.IsValid())
	assert.Equal(t, []string{"slot taken"}, r.Errors)
	assert.Equal(t, []string{"same day"}, r.Warnings)
	assert.Equal(t, 2, r.Metadata["k"])
}

func TestParseConfidence(t *testing.T) {
	c, ok := ParseConfidence("high")
	assert.True(t, ok)
	assert.Equal(t, ConfidenceHigh, c)

	_, ok = ParseConfidence("certain")
	assert.False(t, ok)
}
