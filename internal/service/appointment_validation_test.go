package service

import (
	"context"
	"testing"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreate_ValidBooking(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	doctor := f.doctor("d")

	result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(5, 9), &doctor.ID)
	require.NoError(t, err)

	assert.True(t, result.IsValid(), result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, at(5, 9), result.Metadata[MetaAppointmentDate])
	assert.Equal(t, false, result.Metadata[MetaIsWeekend])
	assert.InDelta(t, 75.0, result.Metadata[MetaHoursInAdvance], 0.001)
}

func TestValidateCreate_OutsideBookingWindow(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	f.doctor("d")

	tests := []struct {
		name    string
		instant time.Time
		message string
	}{
		{"in the past", at(2, 5), "cannot book appointments in the past"},
		{"inside lead time", at(2, 7), "cannot book less than 2 hours in advance"},
		{"exactly now", testNow, "cannot book less than 2 hours in advance"},
		{"beyond thirty days", time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC), "cannot book more than 30 days in advance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := f.validation.ValidateCreate(context.Background(), patient.ID, tt.instant, nil)
			require.NoError(t, err)
			assert.False(t, result.IsValid())
			assert.Contains(t, result.Errors, tt.message)
		})
	}
}

func TestValidateCreate_ClinicCalendar(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	f.doctor("d")

	t.Run("weekend", func(t *testing.T) {
		result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(7, 10), nil)
		require.NoError(t, err)
		assert.Contains(t, result.Errors, "only weekdays allowed (Monday to Friday)")
		assert.Equal(t, true, result.Metadata[MetaIsWeekend])
	})

	for _, instant := range []time.Time{at(5, 12), at(5, 13), at(5, 18), at(5, 9).Add(30 * time.Minute)} {
		t.Run("off slot "+instant.Format("15:04"), func(t *testing.T) {
			result, err := f.validation.ValidateCreate(context.Background(), patient.ID, instant, nil)
			require.NoError(t, err)
			assert.False(t, result.IsValid())
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "is not a bookable slot")
		})
	}
}

func TestValidateCreate_AccumulatesEveryError(t *testing.T) {
	f := newFixture(t)
	unknownPatient := uuid.New()

	// Saturday at 12:30, no doctors, unknown patient.
	result, err := f.validation.ValidateCreate(context.Background(), unknownPatient, at(7, 12).Add(30*time.Minute), nil)
	require.NoError(t, err)

	assert.Contains(t, result.Errors, "only weekdays allowed (Monday to Friday)")
	assert.Contains(t, result.Errors, "this time slot is taken")
	assert.Contains(t, result.Errors, "patient not found or inactive")
	assert.Len(t, result.Errors, 4)
}

func TestValidateCreate_SlotTaken(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	other := f.patient("other")
	doctor := f.doctor("d")
	slot := at(5, 9)
	f.store.AddAppointment(other.ID, &doctor.ID, slot, entity.AppointmentStatusScheduled)

	withDoctor, err := f.validation.ValidateCreate(context.Background(), patient.ID, slot, &doctor.ID)
	require.NoError(t, err)
	assert.Contains(t, withDoctor.Errors, "doctor is not available at this time")

	anyDoctor, err := f.validation.ValidateCreate(context.Background(), patient.ID, slot, nil)
	require.NoError(t, err)
	assert.Contains(t, anyDoctor.Errors, "this time slot is taken")

	f.doctor("second")
	anyDoctor, err = f.validation.ValidateCreate(context.Background(), patient.ID, slot, nil)
	require.NoError(t, err)
	assert.True(t, anyDoctor.IsValid(), anyDoctor.Errors)
}

func TestValidateCreate_PatientMonthlyLimit(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	f.doctor("d")
	for day := 9; day < 14; day++ {
		f.store.AddAppointment(patient.ID, nil, at(day, 9), entity.AppointmentStatusScheduled)
	}
	// Cancelled and other-month rows are not counted.
	f.store.AddAppointment(patient.ID, nil, at(16, 9), entity.AppointmentStatusCancelled)

	result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(20, 9), nil)
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Contains(t, result.Errors, "patient reached the limit of 5 appointments per month")
}

func TestValidateCreate_PatientMonthlyWarning(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	f.doctor("d")
	for day := 9; day < 12; day++ {
		f.store.AddAppointment(patient.ID, nil, at(day, 9), entity.AppointmentStatusScheduled)
	}
	f.store.AddAppointment(patient.ID, nil, time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC), entity.AppointmentStatusScheduled)

	result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(20, 9), nil)
	require.NoError(t, err)
	assert.True(t, result.IsValid(), result.Errors)
	assert.Contains(t, result.Warnings, "patient has 3 appointments this month")
}

func TestValidateCreate_SameDayWarning(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	f.doctor("d")
	f.store.AddAppointment(patient.ID, nil, at(5, 14), entity.AppointmentStatusScheduled)

	result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(5, 9), nil)
	require.NoError(t, err)
	assert.True(t, result.IsValid())
	assert.Contains(t, result.Warnings, "patient already has an appointment on this day")
}

func TestValidateCreate_DoctorDailyLimit(t *testing.T) {
	tests := []struct {
		name     string
		booked   int
		valid    bool
		errorMsg string
		warning  string
	}{
		{"under threshold", 6, true, "", ""},
		{"near cap", 7, true, "", "doctor has 7 appointments on this day"},
		{"at cap", 8, false, "doctor reached the limit of 8 appointments per day", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			patient := f.patient("p")
			other := f.patient("other")
			doctor := f.doctor("d")
			for i := 0; i < tt.booked; i++ {
				f.store.AddAppointment(other.ID, &doctor.ID, at(5, 14).Add(time.Duration(i)*time.Minute), entity.AppointmentStatusScheduled)
			}

			result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(5, 9), &doctor.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.IsValid(), result.Errors)
			if tt.errorMsg != "" {
				assert.Contains(t, result.Errors, tt.errorMsg)
			}
			if tt.warning != "" {
				assert.Contains(t, result.Warnings, tt.warning)
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

func TestValidateCreate_Participants(t *testing.T) {
	f := newFixture(t)
	inactivePatient := f.store.AddUser(entity.RoleIDPatient, "gone", false)
	doctorAsPatient := f.doctor("d")
	patient := f.patient("p")
	notADoctor := f.patient("q")

	for _, id := range []uuid.UUID{inactivePatient.ID, doctorAsPatient.ID} {
		result, err := f.validation.ValidateCreate(context.Background(), id, at(5, 9), nil)
		require.NoError(t, err)
		assert.Contains(t, result.Errors, "patient not found or inactive")
	}

	result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(5, 9), &notADoctor.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Errors, "doctor not found or inactive")
}

func TestValidateUpdate(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	doctor := f.doctor("d")
	stranger := f.patient("s")

	upcoming := f.store.AddAppointment(patient.ID, &doctor.ID, at(5, 9), entity.AppointmentStatusScheduled)
	soon := f.store.AddAppointment(patient.ID, &doctor.ID, at(2, 9), entity.AppointmentStatusConfirmed)
	completed := f.store.AddAppointment(patient.ID, &doctor.ID, at(4, 9), entity.AppointmentStatusCompleted)

	t.Run("valid move", func(t *testing.T) {
		result, err := f.validation.ValidateUpdate(context.Background(), upcoming.ID, at(6, 10), patient.ID)
		require.NoError(t, err)
		assert.True(t, result.IsValid(), result.Errors)
		assert.Equal(t, at(5, 9), result.Metadata[MetaOriginalDate])
		assert.Equal(t, at(6, 10), result.Metadata[MetaNewDate])
		assert.Equal(t, "Scheduled", result.Metadata[MetaAppointmentStatus])
	})

	t.Run("doctor may reschedule", func(t *testing.T) {
		result, err := f.validation.ValidateUpdate(context.Background(), upcoming.ID, at(6, 10), doctor.ID)
		require.NoError(t, err)
		assert.True(t, result.IsValid(), result.Errors)
	})

	t.Run("missing appointment", func(t *testing.T) {
		result, err := f.validation.ValidateUpdate(context.Background(), uuid.New(), at(6, 10), patient.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"appointment not found"}, result.Errors)
	})

	t.Run("stranger", func(t *testing.T) {
		result, err := f.validation.ValidateUpdate(context.Background(), upcoming.ID, at(6, 10), stranger.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"user is not allowed to reschedule this appointment"}, result.Errors)
	})

	t.Run("completed", func(t *testing.T) {
		result, err := f.validation.ValidateUpdate(context.Background(), completed.ID, at(6, 10), patient.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"appointment cannot be rescheduled, current status: Completed"}, result.Errors)
	})

	t.Run("too close and bad target both reported", func(t *testing.T) {
		result, err := f.validation.ValidateUpdate(context.Background(), soon.ID, at(7, 10), patient.ID)
		require.NoError(t, err)
		assert.Contains(t, result.Errors, "appointments can only be rescheduled at least 4 hours in advance")
		assert.Contains(t, result.Errors, "only weekdays allowed (Monday to Friday)")
	})
}

func TestValidateCancel(t *testing.T) {
	f := newFixture(t)
	patient := f.patient("p")
	doctor := f.doctor("d")

	tests := []struct {
		name     string
		instant  time.Time
		status   entity.AppointmentStatus
		actor    uuid.UUID
		errors   []string
		warnings []string
	}{
		{
			name:    "well ahead",
			instant: at(5, 9), status: entity.AppointmentStatusScheduled, actor: patient.ID,
		},
		{
			name:    "within a day",
			instant: at(2, 17), status: entity.AppointmentStatusConfirmed, actor: doctor.ID,
			warnings: []string{"cancelling less than 24 hours in advance may incur additional costs"},
		},
		{
			name:    "too late",
			instant: at(2, 7), status: entity.AppointmentStatusScheduled, actor: patient.ID,
			errors:   []string{"appointments can only be cancelled at least 2 hours in advance"},
			warnings: []string{"cancelling less than 24 hours in advance may incur additional costs"},
		},
		{
			name:    "completed",
			instant: at(5, 9), status: entity.AppointmentStatusCompleted, actor: patient.ID,
			errors: []string{"completed appointments cannot be cancelled"},
		},
		{
			name:    "already cancelled",
			instant: at(5, 9), status: entity.AppointmentStatusCancelled, actor: patient.ID,
			warnings: []string{"appointment was already cancelled"},
		},
		{
			name:    "stranger",
			instant: at(5, 9), status: entity.AppointmentStatusScheduled, actor: uuid.New(),
			errors: []string{"user is not allowed to cancel this appointment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointment := f.store.AddAppointment(patient.ID, &doctor.ID, tt.instant, tt.status)

			result, err := f.validation.ValidateCancel(context.Background(), appointment.ID, tt.actor)
			require.NoError(t, err)

			assert.ElementsMatch(t, tt.errors, result.Errors)
			assert.ElementsMatch(t, tt.warnings, result.Warnings)
			assert.Equal(t, tt.status.String(), result.Metadata[MetaCurrentStatus])
			assert.InDelta(t, tt.instant.Sub(testNow).Hours(), result.Metadata[MetaHoursUntilAppointment], 0.001)
		})
	}

	result, err := f.validation.ValidateCancel(context.Background(), uuid.New(), patient.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"appointment not found"}, result.Errors)
}

func TestListAvailableSlots(t *testing.T) {
	f := newFixture(t)
	first := f.doctor("first")
	second := f.doctor("second")
	patient := f.patient("p")

	t.Run("today keeps the slot exactly at the lead time", func(t *testing.T) {
		slots, err := f.validation.ListAvailableSlots(context.Background(), testNow, nil)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{at(2, 8), at(2, 9), at(2, 10), at(2, 11), at(2, 14), at(2, 15), at(2, 16), at(2, 17)}, slots)

		result, err := f.validation.ValidateCreate(context.Background(), patient.ID, at(2, 8), nil)
		require.NoError(t, err)
		assert.True(t, result.IsValid(), result.Errors)
	})

	t.Run("later today skips slots inside lead time", func(t *testing.T) {
		f.clock.Set(at(2, 7).Add(30 * time.Minute))
		defer f.clock.Set(testNow)

		slots, err := f.validation.ListAvailableSlots(context.Background(), testNow, nil)
		require.NoError(t, err)
		assert.Equal(t, at(2, 10), slots[0])
	})

	t.Run("doctor scoped", func(t *testing.T) {
		f.store.AddAppointment(patient.ID, &first.ID, at(5, 10), entity.AppointmentStatusScheduled)
		f.store.AddAppointment(patient.ID, &first.ID, at(5, 11), entity.AppointmentStatusCancelled)

		slots, err := f.validation.ListAvailableSlots(context.Background(), at(5, 0), &first.ID)
		require.NoError(t, err)
		assert.NotContains(t, slots, at(5, 10))
		assert.Contains(t, slots, at(5, 11))
		assert.Len(t, slots, len(SlotHours)-1)
	})

	t.Run("any doctor", func(t *testing.T) {
		slots, err := f.validation.ListAvailableSlots(context.Background(), at(5, 15), nil)
		require.NoError(t, err)
		assert.Contains(t, slots, at(5, 10))

		f.store.AddAppointment(patient.ID, &second.ID, at(5, 10), entity.AppointmentStatusScheduled)
		slots, err = f.validation.ListAvailableSlots(context.Background(), at(5, 15), nil)
		require.NoError(t, err)
		assert.NotContains(t, slots, at(5, 10))
	})

	t.Run("doctor at daily cap has no slots", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			f.store.AddAppointment(patient.ID, &second.ID, at(6, 8).Add(time.Duration(i)*time.Minute), entity.AppointmentStatusScheduled)
		}

		slots, err := f.validation.ListAvailableSlots(context.Background(), at(6, 0), &second.ID)
		require.NoError(t, err)
		assert.Empty(t, slots)

		anyDoctor, err := f.validation.ListAvailableSlots(context.Background(), at(6, 0), nil)
		require.NoError(t, err)
		assert.Len(t, anyDoctor, len(SlotHours))
	})

	t.Run("weekend", func(t *testing.T) {
		slots, err := f.validation.ListAvailableSlots(context.Background(), at(7, 0), nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("beyond window", func(t *testing.T) {
		slots, err := f.validation.ListAvailableSlots(context.Background(), time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC), nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestIsSlotTime(t *testing.T) {
	assert.True(t, IsSlotTime(at(5, 8)))
	assert.True(t, IsSlotTime(at(5, 17)))
	assert.False(t, IsSlotTime(at(5, 12)))
	assert.False(t, IsSlotTime(at(5, 9).Add(time.Second)))
}
