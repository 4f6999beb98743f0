package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/converter"
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"
	"github.com/VictorAraujo38/akkadian-test/internal/service"
	"github.com/VictorAraujo38/akkadian-test/pkg/clock"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrNotAppointmentParticipant   = errors.New("user is not a participant of this appointment")
	ErrAppointmentCompleted        = errors.New("completed appointments cannot be cancelled")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentClosed           = errors.New("appointment is completed or cancelled")
	ErrInvalidStatus               = errors.New("invalid appointment status")
	ErrInvalidStatusTransition     = errors.New("status transition not allowed")
	ErrInvalidDate                 = errors.New("invalid appointment date")
	ErrSlotTaken                   = errors.New("doctor already has an appointment at this time")
)

// slotConstraint is the partial unique index on (doctor_id, appointment_date).
const slotConstraint = "idx_appointments_doctor_slot"

const maxSlotHoldAttempts = 3

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, actor Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, actor Actor, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, appointmentID uuid.UUID, statusName string) (*dto.AppointmentResponse, error)
	GetAppointmentByID(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error)
	GetHistory(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.AuditLogListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clock           clock.Clock
	metrics         *metrics.SchedulingMetrics
	appointmentRepo repository.AppointmentRepository
	auditLogRepo    repository.AuditLogRepository
	triageService   service.TriageService
	assignment      service.DoctorAssignmentService
	slotLock        service.SlotLock
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	metrics *metrics.SchedulingMetrics,
	appointmentRepo repository.AppointmentRepository,
	auditLogRepo repository.AuditLogRepository,
	triageService service.TriageService,
	assignment service.DoctorAssignmentService,
	slotLock service.SlotLock,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		clock:           clk,
		metrics:         metrics,
		appointmentRepo: appointmentRepo,
		auditLogRepo:    auditLogRepo,
		triageService:   triageService,
		assignment:      assignment,
		slotLock:        slotLock,
		auditService:    auditService,
	}
}

// CreateAppointment books without validating; callers run the pre-flight
// validation first.
//
// Flow:
// 1. Classify symptoms and resolve the specialty
// 2. Assign a doctor and hold the slot in Redis
// 3. Insert the appointment in a transaction, then audit it
// 4. If the slot index rejects the row, insert it unassigned instead
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, actor Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.AppointmentDate.IsZero() {
		return nil, ErrInvalidDate
	}
	instant := req.AppointmentDate.UTC()

	// Step 1: Triage
	outcome := u.triageService.Triage(ctx, req.Symptoms, req.PreferredSpecialty)

	appointment := &entity.Appointment{
		ID:                   uuid.New(),
		PatientID:            actor.UserID,
		AppointmentDate:      instant,
		Symptoms:             req.Symptoms,
		RecommendedSpecialty: outcome.Result.Specialty,
		TriageConfidence:     string(outcome.Result.Confidence),
		TriageReasoning:      outcome.Reasoning,
		Status:               entity.AppointmentStatusScheduled,
	}
	if outcome.Specialty != nil {
		specialtyID := outcome.Specialty.ID
		appointment.SpecialtyID = &specialtyID
	}

	// Step 2: Assign and hold
	doctorID, hold := u.assignAndHold(ctx, service.AssignmentRequest{
		SpecialtyID:       appointment.SpecialtyID,
		PreferredDoctorID: req.PreferredDoctorID,
		Instant:           instant,
	})
	defer u.releaseHold(hold)
	appointment.DoctorID = doctorID

	// Step 3: Persist
	err := u.insertAppointment(ctx, actor, appointment)
	if err != nil && isDuplicateKeyError(err, slotConstraint) {
		// Step 4: Lost the race for the slot; keep the booking unassigned
		u.log.Warnf("Slot for doctor %s at %s taken concurrently, booking unassigned", appointment.DoctorID, instant.Format(time.RFC3339))
		appointment.DoctorID = nil
		err = u.insertAppointment(ctx, actor, appointment)
	}
	if err != nil {
		return nil, err
	}

	u.metrics.ObserveAppointmentCreated(appointment.DoctorID != nil)
	u.log.Infof("Appointment created: id=%s, patient=%s, doctor=%v, specialty=%s", appointment.ID, actor.UserID, appointment.DoctorID, outcome.Result.Specialty)

	return u.reload(ctx, appointment), nil
}

// assignAndHold retries assignment while other bookings hold the chosen
// doctor's slot. A Redis failure does not block the booking.
func (u *appointmentUsecase) assignAndHold(ctx context.Context, req service.AssignmentRequest) (*uuid.UUID, *service.SlotHold) {
	for attempt := 0; attempt < maxSlotHoldAttempts; attempt++ {
		result := u.assignment.Assign(ctx, req)
		if result.DoctorID == nil {
			return nil, nil
		}

		hold, err := u.slotLock.Acquire(ctx, *result.DoctorID, req.Instant)
		if err == nil {
			return result.DoctorID, hold
		}
		if !errors.Is(err, service.ErrSlotHeld) {
			u.log.Warnf("Slot lock unavailable, relying on the slot index: %+v", err)
			return result.DoctorID, nil
		}
		req.Exclude = append(req.Exclude, *result.DoctorID)
	}

	u.log.Infof("Every candidate slot at %s is held, booking unassigned", req.Instant.Format(time.RFC3339))
	return nil, nil
}

func (u *appointmentUsecase) releaseHold(hold *service.SlotHold) {
	if hold == nil {
		return
	}
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotLock.Release(releaseCtx, hold); err != nil {
		u.log.Warnf("Failed to release slot hold (non-fatal): %+v", err)
	}
}

func (u *appointmentUsecase) insertAppointment(ctx context.Context, actor Actor, appointment *entity.Appointment) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Audit rows are written after commit; a rejected one must not abort the booking.
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &actor.UserID, entity.AuditActionAppointmentCreate, entity.AuditEntityAppointment, appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
	return nil
}

// reload returns the denormalized view, or the bare row if the reload fails.
func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) *dto.AppointmentResponse {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment)
	}
	return converter.AppointmentToResponse(full)
}

func (u *appointmentUsecase) findForActor(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.IsParticipant(actor.UserID) {
		return nil, ErrNotAppointmentParticipant
	}
	return appointment, nil
}

// CancelAppointment cancels an appointment of the acting patient or doctor.
// Unlike validation, an already cancelled appointment is an error here.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findForActor(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.IsCompleted() {
		return nil, ErrAppointmentCompleted
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentAlreadyCancelled
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.CancelAppointment(tx, appointmentID, u.clock.Now())
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		// Completed or cancelled by another request since it was read
		return nil, ErrAppointmentClosed
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actor.UserID, entity.AuditActionAppointmentCancel, entity.AuditEntityAppointment, appointmentID.String(), appointment.Status.String(), entity.AppointmentStatusCancelled.String()); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.metrics.ObserveTransition(entity.AppointmentStatusCancelled.String())
	u.log.Infof("Appointment cancelled: id=%s, by=%s", appointmentID, actor.UserID)

	appointment.Status = entity.AppointmentStatusCancelled
	return u.reload(ctx, appointment), nil
}

// RescheduleAppointment moves an appointment to a new instant, keeping its
// doctor. The previous instant is kept in the audit log.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, actor Actor, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.NewAppointmentDate.IsZero() {
		return nil, ErrInvalidDate
	}
	newInstant := req.NewAppointmentDate.UTC()

	appointment, err := u.findForActor(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.IsCompleted() || appointment.IsCancelled() {
		return nil, ErrAppointmentClosed
	}

	if appointment.DoctorID != nil {
		hold, err := u.slotLock.Acquire(ctx, *appointment.DoctorID, newInstant)
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		if err != nil {
			u.log.Warnf("Slot lock unavailable, relying on the slot index: %+v", err)
		}
		defer u.releaseHold(hold)
	}

	previous := appointment.AppointmentDate.UTC()
	appointment.AppointmentDate = newInstant
	if req.Reason != "" {
		appointment.AppendNote("Rescheduled: " + req.Reason)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to reschedule appointment %s: %+v", appointmentID, err)
		if isDuplicateKeyError(err, slotConstraint) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actor.UserID, entity.AuditActionAppointmentReschedule, entity.AuditEntityAppointment, appointmentID.String(),
		map[string]interface{}{"appointment_date": previous},
		map[string]interface{}{"appointment_date": newInstant, "reason": req.Reason},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Appointment rescheduled: id=%s, from=%s, to=%s", appointmentID, previous.Format(time.RFC3339), newInstant.Format(time.RFC3339))
	return u.reload(ctx, appointment), nil
}

// UpdateStatus moves an appointment along the status graph. Doctors may
// only update their own appointments; admins may update any.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actor Actor, appointmentID uuid.UUID, statusName string) (*dto.AppointmentResponse, error) {
	next, err := entity.ParseAppointmentStatus(statusName)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !actor.IsAdmin() && (appointment.DoctorID == nil || *appointment.DoctorID != actor.UserID) {
		return nil, ErrNotAppointmentParticipant
	}

	current := appointment.Status
	if current == next {
		return converter.AppointmentToResponse(appointment), nil
	}
	if !current.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment.Status = next
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &actor.UserID, entity.AuditActionAppointmentStatus, entity.AuditEntityAppointment, appointmentID.String(), current.String(), next.String()); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.metrics.ObserveTransition(next.String())
	u.log.Infof("Appointment %s status: %s -> %s", appointmentID, current, next)
	return u.reload(ctx, appointment), nil
}

func (u *appointmentUsecase) GetAppointmentByID(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !actor.canView(appointment) {
		return nil, ErrNotAppointmentParticipant
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListForDoctorOnDate returns the doctor's agenda for date's UTC day,
// cancelled appointments included.
func (u *appointmentUsecase) ListForDoctorOnDate(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.AppointmentListResponse, error) {
	start, end := clock.DayBounds(date)
	appointments, err := u.appointmentRepo.FindByDoctorBetween(u.db.WithContext(ctx), doctorID, start, end)
	if err != nil {
		u.log.Warnf("Failed to find agenda for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetHistory(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.AuditLogListResponse, error) {
	db := u.db.WithContext(ctx)
	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !actor.canView(appointment) {
		return nil, ErrNotAppointmentParticipant
	}

	logs, err := u.auditLogRepo.FindByEntity(db, entity.AuditEntityAppointment, appointmentID.String())
	if err != nil {
		u.log.Warnf("Failed to find history for appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
