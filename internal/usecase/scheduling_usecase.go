package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/converter"
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"
	"github.com/VictorAraujo38/akkadian-test/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	WarnPreferredDoctorUnknown = "preferred doctor not found or inactive, another doctor will be assigned"
	WarnPreferredDoctorBusy    = "preferred doctor is not available at this time, another doctor will be assigned"
)

var (
	ErrSpecialtyNotFound = errors.New("specialty not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrNotADoctor        = errors.New("user is not a doctor")
)

// SchedulingUsecase exposes the engines as read-only queries. Nothing here
// writes to the store.
type SchedulingUsecase interface {
	Triage(ctx context.Context, req *dto.TriageRequest) *dto.TriageResponse
	ValidateCreate(ctx context.Context, actor Actor, req *dto.ValidateAppointmentRequest) (*dto.ValidationResponse, error)
	ValidateBooking(ctx context.Context, actor Actor, req *dto.CreateAppointmentRequest) (*dto.ValidationResponse, error)
	ValidateUpdate(ctx context.Context, actor Actor, appointmentID uuid.UUID, req *dto.ValidateUpdateRequest) (*dto.ValidationResponse, error)
	ValidateCancel(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.ValidationResponse, error)
	ListAvailableSlots(ctx context.Context, date time.Time, doctorID *uuid.UUID) (*dto.AvailableSlotsResponse, error)
	AssignDoctor(ctx context.Context, req *dto.AssignDoctorRequest) (*dto.AssignDoctorResponse, error)
	DoctorsBySpecialty(ctx context.Context, specialtyID int, instant time.Time) (*dto.SpecialtyDoctorsResponse, error)
	CheckAvailability(ctx context.Context, doctorID uuid.UUID, instant time.Time) (*dto.AvailabilityResponse, error)
}

type schedulingUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	specialtyRepo repository.SpecialtyRepository
	triageService service.TriageService
	resolver      service.SpecialtyResolver
	assignment    service.DoctorAssignmentService
	validation    service.AppointmentValidationService
}

func NewSchedulingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	specialtyRepo repository.SpecialtyRepository,
	triageService service.TriageService,
	resolver service.SpecialtyResolver,
	assignment service.DoctorAssignmentService,
	validation service.AppointmentValidationService,
) SchedulingUsecase {
	return &schedulingUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		specialtyRepo: specialtyRepo,
		triageService: triageService,
		resolver:      resolver,
		assignment:    assignment,
		validation:    validation,
	}
}

func (u *schedulingUsecase) Triage(ctx context.Context, req *dto.TriageRequest) *dto.TriageResponse {
	return converter.TriageOutcomeToResponse(u.triageService.Triage(ctx, req.Symptoms, ""))
}

// ValidateCreate checks a booking for the acting patient without making it.
func (u *schedulingUsecase) ValidateCreate(ctx context.Context, actor Actor, req *dto.ValidateAppointmentRequest) (*dto.ValidationResponse, error) {
	if req.AppointmentDate.IsZero() {
		return nil, ErrInvalidDate
	}

	result, err := u.validation.ValidateCreate(ctx, actor.UserID, req.AppointmentDate.UTC(), req.DoctorID)
	if err != nil {
		return nil, err
	}
	return converter.ValidationResultToResponse(result), nil
}

// ValidateBooking is the pre-flight of a booking. A preferred doctor is a
// hint to assignment, which falls through to another doctor, so the slot is
// checked against any doctor and a busy preferred doctor is only a warning.
func (u *schedulingUsecase) ValidateBooking(ctx context.Context, actor Actor, req *dto.CreateAppointmentRequest) (*dto.ValidationResponse, error) {
	if req.AppointmentDate.IsZero() {
		return nil, ErrInvalidDate
	}
	instant := req.AppointmentDate.UTC()

	result, err := u.validation.ValidateCreate(ctx, actor.UserID, instant, nil)
	if err != nil {
		return nil, err
	}

	if req.PreferredDoctorID != nil {
		doctorID := *req.PreferredDoctorID
		doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
		if err != nil {
			u.log.Warnf("Failed to find preferred doctor %s: %+v", doctorID, err)
			return nil, err
		}
		if doctor == nil || !doctor.Active() || !doctor.IsDoctor() {
			result.AddWarning(WarnPreferredDoctorUnknown)
		} else {
			available, err := u.assignment.IsAvailable(ctx, doctorID, instant)
			if err != nil {
				return nil, err
			}
			if !available {
				result.AddWarning(WarnPreferredDoctorBusy)
			}
		}
	}

	return converter.ValidationResultToResponse(result), nil
}

func (u *schedulingUsecase) ValidateUpdate(ctx context.Context, actor Actor, appointmentID uuid.UUID, req *dto.ValidateUpdateRequest) (*dto.ValidationResponse, error) {
	if req.NewAppointmentDate.IsZero() {
		return nil, ErrInvalidDate
	}

	result, err := u.validation.ValidateUpdate(ctx, appointmentID, req.NewAppointmentDate.UTC(), actor.UserID)
	if err != nil {
		return nil, err
	}
	return converter.ValidationResultToResponse(result), nil
}

func (u *schedulingUsecase) ValidateCancel(ctx context.Context, actor Actor, appointmentID uuid.UUID) (*dto.ValidationResponse, error) {
	result, err := u.validation.ValidateCancel(ctx, appointmentID, actor.UserID)
	if err != nil {
		return nil, err
	}
	return converter.ValidationResultToResponse(result), nil
}

func (u *schedulingUsecase) ListAvailableSlots(ctx context.Context, date time.Time, doctorID *uuid.UUID) (*dto.AvailableSlotsResponse, error) {
	slots, err := u.validation.ListAvailableSlots(ctx, date, doctorID)
	if err != nil {
		return nil, err
	}

	return &dto.AvailableSlotsResponse{
		Date:     date.UTC().Format("2006-01-02"),
		DoctorID: doctorID,
		Slots:    slots,
		Total:    len(slots),
	}, nil
}

// AssignDoctor previews which doctor a booking would get. A missing default
// specialty degrades to assignment among all doctors.
func (u *schedulingUsecase) AssignDoctor(ctx context.Context, req *dto.AssignDoctorRequest) (*dto.AssignDoctorResponse, error) {
	if req.AppointmentDate.IsZero() {
		return nil, ErrInvalidDate
	}

	specialty, err := u.resolver.ResolveOrDefault(ctx, req.Specialty)
	if err != nil && !errors.Is(err, service.ErrDefaultSpecialtyMissing) {
		return nil, err
	}

	assignment := service.AssignmentRequest{
		PreferredDoctorID: req.PreferredDoctorID,
		Instant:           req.AppointmentDate.UTC(),
	}
	response := &dto.AssignDoctorResponse{}
	if specialty != nil {
		id := specialty.ID
		assignment.SpecialtyID = &id
		response.SpecialtyID = &id
		response.Specialty = specialty.Name
	}

	result := u.assignment.Assign(ctx, assignment)
	response.DoctorID = result.DoctorID
	response.Strategy = string(result.Strategy)

	if result.DoctorID != nil {
		doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), *result.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", result.DoctorID, err)
		} else if doctor != nil {
			response.DoctorName = doctor.FullName
		}
	}

	return response, nil
}

// DoctorsBySpecialty lists a specialty's credentialed doctors with their
// availability at instant.
func (u *schedulingUsecase) DoctorsBySpecialty(ctx context.Context, specialtyID int, instant time.Time) (*dto.SpecialtyDoctorsResponse, error) {
	if instant.IsZero() {
		return nil, ErrInvalidDate
	}

	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), specialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", specialtyID, err)
		return nil, err
	}
	if specialty == nil || !specialty.IsActive {
		return nil, ErrSpecialtyNotFound
	}

	candidates, err := u.assignment.AvailableDoctorsForSpecialty(ctx, specialtyID, instant.UTC())
	if err != nil {
		return nil, err
	}

	return &dto.SpecialtyDoctorsResponse{
		Specialty:       *converter.SpecialtyToResponse(specialty),
		AppointmentDate: instant.UTC(),
		Doctors:         converter.DoctorCandidatesToResponses(candidates),
		Total:           len(candidates),
	}, nil
}

func (u *schedulingUsecase) CheckAvailability(ctx context.Context, doctorID uuid.UUID, instant time.Time) (*dto.AvailabilityResponse, error) {
	if instant.IsZero() {
		return nil, ErrInvalidDate
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return nil, ErrNotADoctor
	}

	available, err := u.assignment.IsAvailable(ctx, doctorID, instant.UTC())
	if err != nil {
		return nil, err
	}

	return &dto.AvailabilityResponse{
		DoctorID:        doctorID,
		AppointmentDate: instant.UTC(),
		Available:       available,
	}, nil
}
