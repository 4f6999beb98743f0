package usecase

import (
	"context"
	"testing"

	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulingTriage(t *testing.T) {
	f := newFixture(t)

	resp := f.scheduling().Triage(context.Background(), &dto.TriageRequest{Symptoms: "chest pain"})

	require.NotNil(t, resp.SpecialtyID)
	assert.Equal(t, f.cardiology.ID, *resp.SpecialtyID)
	assert.Equal(t, "Cardiovascular", resp.Department)
	assert.Equal(t, "0.90", resp.Score)
}

func TestSchedulingValidateCreate(t *testing.T) {
	f := newFixture(t)
	f.doctor("Dr. House")
	patient := f.patient("Ana")
	ctx := context.Background()
	usecase := f.scheduling()

	_, err := usecase.ValidateCreate(ctx, actorOf(patient), &dto.ValidateAppointmentRequest{})
	assert.ErrorIs(t, err, ErrInvalidDate)

	ok, err := usecase.ValidateCreate(ctx, actorOf(patient), &dto.ValidateAppointmentRequest{AppointmentDate: at(3, 10)})
	require.NoError(t, err)
	assert.True(t, ok.IsValid)

	weekend, err := usecase.ValidateCreate(ctx, actorOf(patient), &dto.ValidateAppointmentRequest{AppointmentDate: at(7, 10)})
	require.NoError(t, err)
	assert.False(t, weekend.IsValid)
	assert.Contains(t, weekend.Errors, "only weekdays allowed (Monday to Friday)")
}

func TestSchedulingValidateBooking(t *testing.T) {
	f := newFixture(t)
	busy := f.doctor("Dr. Busy")
	f.doctor("Dr. Free")
	other := f.patient("Bruno")
	patient := f.patient("Ana")
	f.store.AddAppointment(other.ID, ptr(busy.ID), at(3, 10), entity.AppointmentStatusScheduled)
	ctx := context.Background()
	usecase := f.scheduling()

	tests := []struct {
		name      string
		preferred *uuid.UUID
		valid     bool
		warnings  []string
	}{
		{"no preference", nil, true, nil},
		{"busy preferred doctor", ptr(busy.ID), true, []string{WarnPreferredDoctorBusy}},
		{"unknown preferred doctor", ptr(uuid.New()), true, []string{WarnPreferredDoctorUnknown}},
		{"patient as preferred doctor", ptr(other.ID), true, []string{WarnPreferredDoctorUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := usecase.ValidateBooking(ctx, actorOf(patient), &dto.CreateAppointmentRequest{
				AppointmentDate:   at(3, 10),
				Symptoms:          "headache",
				PreferredDoctorID: tt.preferred,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, resp.IsValid, resp.Errors)
			assert.ElementsMatch(t, tt.warnings, resp.Warnings)
		})
	}

	_, err := usecase.ValidateBooking(ctx, actorOf(patient), &dto.CreateAppointmentRequest{})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSchedulingValidateCancel(t *testing.T) {
	f := newFixture(t)
	doctor := f.doctor("Dr. House")
	patient := f.patient("Ana")
	appointment := f.store.AddAppointment(patient.ID, ptr(doctor.ID), at(5, 9), entity.AppointmentStatusScheduled)

	resp, err := f.scheduling().ValidateCancel(context.Background(), actorOf(patient), appointment.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsValid)
}

func TestSchedulingListAvailableSlots(t *testing.T) {
	f := newFixture(t)
	doctor := f.doctor("Dr. House")
	patient := f.patient("Ana")
	f.store.AddAppointment(patient.ID, ptr(doctor.ID), at(3, 9), entity.AppointmentStatusScheduled)

	resp, err := f.scheduling().ListAvailableSlots(context.Background(), at(3, 0), ptr(doctor.ID))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-03", resp.Date)
	assert.Equal(t, len(service.SlotHours)-1, resp.Total)
	assert.NotContains(t, resp.Slots, at(3, 9))
}

func TestSchedulingAssignDoctor(t *testing.T) {
	f := newFixture(t)
	cardiologist := f.doctor("Dr. Heart")
	f.store.AddCredential(cardiologist.ID, f.cardiology.ID, true)
	ctx := context.Background()
	usecase := f.scheduling()

	resp, err := usecase.AssignDoctor(ctx, &dto.AssignDoctorRequest{Specialty: entity.SpecialtyCardiology, AppointmentDate: at(3, 10)})
	require.NoError(t, err)
	require.NotNil(t, resp.DoctorID)
	assert.Equal(t, cardiologist.ID, *resp.DoctorID)
	assert.Equal(t, "Dr. Heart", resp.DoctorName)
	assert.Equal(t, string(service.StrategySpecialty), resp.Strategy)

	// Unknown specialties route to General Medicine, which has no doctors here
	resp, err = usecase.AssignDoctor(ctx, &dto.AssignDoctorRequest{Specialty: "Astrology", AppointmentDate: at(3, 10)})
	require.NoError(t, err)
	assert.Equal(t, entity.SpecialtyGeneralMedicine, resp.Specialty)
	assert.Equal(t, string(service.StrategyAny), resp.Strategy)

	_, err = usecase.AssignDoctor(ctx, &dto.AssignDoctorRequest{Specialty: entity.SpecialtyCardiology})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSchedulingDoctorsBySpecialty(t *testing.T) {
	f := newFixture(t)
	cardiologist := f.doctor("Dr. Heart")
	f.store.AddCredential(cardiologist.ID, f.cardiology.ID, true)
	ctx := context.Background()
	usecase := f.scheduling()

	_, err := usecase.DoctorsBySpecialty(ctx, 99, at(3, 10))
	assert.ErrorIs(t, err, ErrSpecialtyNotFound)

	resp, err := usecase.DoctorsBySpecialty(ctx, f.cardiology.ID, at(3, 10))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, cardiologist.ID, resp.Doctors[0].DoctorID)
	assert.True(t, resp.Doctors[0].IsPrimary)
	assert.True(t, resp.Doctors[0].Available)
}

func TestSchedulingCheckAvailability(t *testing.T) {
	f := newFixture(t)
	doctor := f.doctor("Dr. House")
	patient := f.patient("Ana")
	ctx := context.Background()
	usecase := f.scheduling()

	tests := []struct {
		name      string
		doctorID  uuid.UUID
		day, hour int
		want      bool
		wantErr   error
	}{
		{"weekday working hours", doctor.ID, 3, 10, true, nil},
		{"saturday", doctor.ID, 7, 10, false, nil},
		{"before opening", doctor.ID, 3, 7, false, nil},
		{"not a doctor", patient.ID, 3, 10, false, ErrNotADoctor},
		{"unknown user", uuid.New(), 3, 10, false, ErrDoctorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := usecase.CheckAvailability(ctx, tt.doctorID, at(tt.day, tt.hour))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Available)
		})
	}
}
