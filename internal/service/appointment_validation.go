package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"
	"github.com/VictorAraujo38/akkadian-test/pkg/clock"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Booking policy of the clinic.
const (
	MinBookingLeadTime                = 2 * time.Hour
	MaxAdvanceBookingDays             = 30
	MinRescheduleLeadTime             = 4 * time.Hour
	MinCancellationLeadTime           = 2 * time.Hour
	CancellationPolicyWindow          = 24 * time.Hour
	MaxAppointmentsPerPatientPerMonth = 5
	doctorLoadWarningRatio            = 0.8
)

// SlotHours are the only hours of the day (UTC, on the hour) that can be booked.
var SlotHours = []int{8, 9, 10, 11, 14, 15, 16, 17}

// Metadata keys set on validation results.
const (
	MetaAppointmentDate       = "appointmentDate"
	MetaIsWeekend             = "isWeekend"
	MetaHoursInAdvance        = "hoursInAdvance"
	MetaOriginalDate          = "originalDate"
	MetaNewDate               = "newDate"
	MetaAppointmentStatus     = "appointmentStatus"
	MetaCurrentStatus         = "currentStatus"
	MetaHoursUntilAppointment = "hoursUntilAppointment"
)

type AppointmentValidationService interface {
	ValidateCreate(ctx context.Context, patientID uuid.UUID, instant time.Time, doctorID *uuid.UUID) (*entity.ValidationResult, error)
	ValidateUpdate(ctx context.Context, appointmentID uuid.UUID, newInstant time.Time, actingUserID uuid.UUID) (*entity.ValidationResult, error)
	ValidateCancel(ctx context.Context, appointmentID uuid.UUID, actingUserID uuid.UUID) (*entity.ValidationResult, error)
	ListAvailableSlots(ctx context.Context, date time.Time, doctorID *uuid.UUID) ([]time.Time, error)
}

type appointmentValidationService struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           clock.Clock
	metrics         *metrics.SchedulingMetrics
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	assignment      DoctorAssignmentService
}

func NewAppointmentValidationService(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	metrics *metrics.SchedulingMetrics,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	assignment DoctorAssignmentService,
) AppointmentValidationService {
	return &appointmentValidationService{
		db:              db,
		log:             log,
		clock:           clk,
		metrics:         metrics,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		assignment:      assignment,
	}
}

// ValidateCreate runs every booking rule and collects all failures. The
// returned error is reserved for store faults.
func (s *appointmentValidationService) ValidateCreate(ctx context.Context, patientID uuid.UUID, instant time.Time, doctorID *uuid.UUID) (*entity.ValidationResult, error) {
	result, err := s.validateCreate(ctx, patientID, instant, doctorID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveValidation("create", result.IsValid())
	return result, nil
}

func (s *appointmentValidationService) validateCreate(ctx context.Context, patientID uuid.UUID, instant time.Time, doctorID *uuid.UUID) (*entity.ValidationResult, error) {
	db := s.db.WithContext(ctx)
	now := s.clock.Now()
	instant = instant.UTC()
	result := entity.NewValidationResult()

	result.Metadata[MetaAppointmentDate] = instant
	result.Metadata[MetaIsWeekend] = clock.IsWeekend(instant)
	result.Metadata[MetaHoursInAdvance] = instant.Sub(now).Hours()

	// Calendar rules
	if !instant.After(now) {
		result.AddError("cannot book appointments in the past")
	}
	if instant.Before(now.Add(MinBookingLeadTime)) {
		result.AddError(fmt.Sprintf("cannot book less than %d hours in advance", int(MinBookingLeadTime.Hours())))
	}
	if instant.After(now.AddDate(0, 0, MaxAdvanceBookingDays)) {
		result.AddError(fmt.Sprintf("cannot book more than %d days in advance", MaxAdvanceBookingDays))
	}
	if clock.IsWeekend(instant) {
		result.AddError("only weekdays allowed (Monday to Friday)")
	}
	if !IsSlotTime(instant) {
		result.AddError(fmt.Sprintf("time %s is not a bookable slot, valid times: %s", instant.Format("15:04"), slotTimesLabel()))
	}

	// Patient's own calendar
	dayStart, dayEnd := clock.DayBounds(instant)
	sameDay, err := s.appointmentRepo.CountByPatientBetween(db, patientID, dayStart, dayEnd)
	if err != nil {
		s.log.Warnf("Failed to count patient appointments for day: %+v", err)
		return nil, err
	}
	if sameDay > 0 {
		result.AddWarning("patient already has an appointment on this day")
	}

	// Slot availability
	available, err := s.slotAvailable(ctx, instant, doctorID)
	if err != nil {
		return nil, err
	}
	if !available {
		if doctorID != nil {
			result.AddError("doctor is not available at this time")
		} else {
			result.AddError("this time slot is taken")
		}
	}

	// Capacity caps
	monthStart, monthEnd := clock.MonthBounds(instant)
	monthly, err := s.appointmentRepo.CountByPatientBetween(db, patientID, monthStart, monthEnd)
	if err != nil {
		s.log.Warnf("Failed to count patient appointments for month: %+v", err)
		return nil, err
	}
	if monthly >= MaxAppointmentsPerPatientPerMonth {
		result.AddError(fmt.Sprintf("patient reached the limit of %d appointments per month", MaxAppointmentsPerPatientPerMonth))
	} else if monthly > 0 {
		result.AddWarning(fmt.Sprintf("patient has %d appointments this month", monthly))
	}

	if doctorID != nil {
		daily, err := s.appointmentRepo.CountByDoctorBetween(db, *doctorID, dayStart, dayEnd)
		if err != nil {
			s.log.Warnf("Failed to count doctor appointments for day: %+v", err)
			return nil, err
		}
		if daily >= MaxAppointmentsPerDoctorPerDay {
			result.AddError(fmt.Sprintf("doctor reached the limit of %d appointments per day", MaxAppointmentsPerDoctorPerDay))
		} else if float64(daily) >= MaxAppointmentsPerDoctorPerDay*doctorLoadWarningRatio {
			result.AddWarning(fmt.Sprintf("doctor has %d appointments on this day", daily))
		}
	}

	// Participants
	patient, err := s.userRepo.FindByID(db, patientID)
	if err != nil {
		s.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil || !patient.Active() || !patient.IsPatient() {
		result.AddError("patient not found or inactive")
	}

	if doctorID != nil {
		doctor, err := s.userRepo.FindByID(db, *doctorID)
		if err != nil {
			s.log.Warnf("Failed to find doctor %s: %+v", *doctorID, err)
			return nil, err
		}
		if doctor == nil || !doctor.Active() || !doctor.IsDoctor() {
			result.AddError("doctor not found or inactive")
		}
	}

	return result, nil
}

func (s *appointmentValidationService) ValidateUpdate(ctx context.Context, appointmentID uuid.UUID, newInstant time.Time, actingUserID uuid.UUID) (*entity.ValidationResult, error) {
	now := s.clock.Now()
	newInstant = newInstant.UTC()
	result := entity.NewValidationResult()
	result.Metadata[MetaNewDate] = newInstant

	appointment, err := s.appointmentRepo.FindByID(s.db.WithContext(ctx), appointmentID)
	if err != nil {
		s.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		result.AddError("appointment not found")
		return s.observe("update", result), nil
	}

	result.Metadata[MetaOriginalDate] = appointment.AppointmentDate.UTC()
	result.Metadata[MetaAppointmentStatus] = appointment.Status.String()

	if !appointment.IsParticipant(actingUserID) {
		result.AddError("user is not allowed to reschedule this appointment")
		return s.observe("update", result), nil
	}
	if appointment.IsCompleted() || appointment.IsCancelled() {
		result.AddError(fmt.Sprintf("appointment cannot be rescheduled, current status: %s", appointment.Status))
		return s.observe("update", result), nil
	}
	if appointment.AppointmentDate.Before(now.Add(MinRescheduleLeadTime)) {
		result.AddError(fmt.Sprintf("appointments can only be rescheduled at least %d hours in advance", int(MinRescheduleLeadTime.Hours())))
	}

	proposed, err := s.validateCreate(ctx, appointment.PatientID, newInstant, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	result.Merge(proposed)

	return s.observe("update", result), nil
}

func (s *appointmentValidationService) ValidateCancel(ctx context.Context, appointmentID uuid.UUID, actingUserID uuid.UUID) (*entity.ValidationResult, error) {
	now := s.clock.Now()
	result := entity.NewValidationResult()

	appointment, err := s.appointmentRepo.FindByID(s.db.WithContext(ctx), appointmentID)
	if err != nil {
		s.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		result.AddError("appointment not found")
		return s.observe("cancel", result), nil
	}

	instant := appointment.AppointmentDate.UTC()
	result.Metadata[MetaAppointmentDate] = instant
	result.Metadata[MetaCurrentStatus] = appointment.Status.String()
	result.Metadata[MetaHoursUntilAppointment] = instant.Sub(now).Hours()

	if !appointment.IsParticipant(actingUserID) {
		result.AddError("user is not allowed to cancel this appointment")
		return s.observe("cancel", result), nil
	}

	if appointment.IsCompleted() {
		result.AddError("completed appointments cannot be cancelled")
	}
	if appointment.IsCancelled() {
		result.AddWarning("appointment was already cancelled")
	}
	if instant.Before(now.Add(MinCancellationLeadTime)) {
		result.AddError(fmt.Sprintf("appointments can only be cancelled at least %d hours in advance", int(MinCancellationLeadTime.Hours())))
	}
	if instant.Before(now.Add(CancellationPolicyWindow)) {
		result.AddWarning("cancelling less than 24 hours in advance may incur additional costs")
	}

	return s.observe("cancel", result), nil
}

// ListAvailableSlots returns the bookable instants of date's UTC day in slot
// order. Weekends and days past the advance window yield nothing.
func (s *appointmentValidationService) ListAvailableSlots(ctx context.Context, date time.Time, doctorID *uuid.UUID) ([]time.Time, error) {
	now := s.clock.Now()
	dayStart, _ := clock.DayBounds(date)
	slots := []time.Time{}

	if clock.IsWeekend(dayStart) {
		s.log.Debugf("No slots on weekend day %s", dayStart.Format(time.DateOnly))
		return slots, nil
	}
	latest := now.AddDate(0, 0, MaxAdvanceBookingDays)
	if dayStart.After(latest) {
		s.log.Debugf("Day %s is beyond the %d day booking window", dayStart.Format(time.DateOnly), MaxAdvanceBookingDays)
		return slots, nil
	}

	earliest := now.Add(MinBookingLeadTime)
	for _, hour := range SlotHours {
		slot := dayStart.Add(time.Duration(hour) * time.Hour)
		if slot.Before(earliest) || slot.After(latest) {
			continue
		}
		available, err := s.slotAvailable(ctx, slot, doctorID)
		if err != nil {
			return nil, err
		}
		if available {
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// slotAvailable applies the slot-discovery availability rules, scoped to
// doctorID when given, else to any active doctor.
func (s *appointmentValidationService) slotAvailable(ctx context.Context, instant time.Time, doctorID *uuid.UUID) (bool, error) {
	if doctorID != nil {
		return s.assignment.IsAvailable(ctx, *doctorID, instant)
	}
	return s.assignment.AnyDoctorFree(ctx, instant)
}

func (s *appointmentValidationService) observe(operation string, result *entity.ValidationResult) *entity.ValidationResult {
	s.metrics.ObserveValidation(operation, result.IsValid())
	return result
}

// IsSlotTime reports whether t falls exactly on one of SlotHours.
func IsSlotTime(t time.Time) bool {
	t = t.UTC()
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	for _, hour := range SlotHours {
		if t.Hour() == hour {
			return true
		}
	}
	return false
}

func slotTimesLabel() string {
	labels := make([]string, len(SlotHours))
	for i, hour := range SlotHours {
		labels[i] = fmt.Sprintf("%02d:00", hour)
	}
	return strings.Join(labels, ", ")
}
