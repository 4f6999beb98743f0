package service

import (
	"context"
	"sort"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"
	"github.com/VictorAraujo38/akkadian-test/pkg/clock"
	"github.com/VictorAraujo38/akkadian-test/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MaxAppointmentsPerDoctorPerDay = 8
	WorkingHourStart               = 8
	WorkingHourEnd                 = 17
)

type AssignmentStrategy string

const (
	StrategyPreferred AssignmentStrategy = "preferred"
	StrategySpecialty AssignmentStrategy = "specialty"
	StrategyAny       AssignmentStrategy = "any"
	StrategyNone      AssignmentStrategy = "none"
)

// AssignmentRequest describes the slot to fill. Exclude lists doctors that
// must not be picked, e.g. because another booking holds their slot.
type AssignmentRequest struct {
	SpecialtyID       *int
	PreferredDoctorID *uuid.UUID
	Instant           time.Time
	Exclude           []uuid.UUID
}

type AssignmentResult struct {
	DoctorID *uuid.UUID
	Strategy AssignmentStrategy
}

// DoctorCandidate is a credentialed doctor of a specialty as seen at one
// instant.
type DoctorCandidate struct {
	Doctor        entity.User
	IsPrimary     bool
	LicenseNumber string
	DayLoad       int64
	Available     bool
}

type DoctorAssignmentService interface {
	// Assign never fails. An empty result means the appointment stays
	// unassigned.
	Assign(ctx context.Context, req AssignmentRequest) *AssignmentResult
	IsAvailable(ctx context.Context, doctorID uuid.UUID, instant time.Time) (bool, error)
	HasConflict(ctx context.Context, doctorID uuid.UUID, instant time.Time) (bool, error)
	AnyDoctorFree(ctx context.Context, instant time.Time) (bool, error)
	AvailableDoctorsForSpecialty(ctx context.Context, specialtyID int, instant time.Time) ([]DoctorCandidate, error)
}

type doctorAssignmentService struct {
	db              *gorm.DB
	log             *logrus.Logger
	metrics         *metrics.SchedulingMetrics
	userRepo        repository.UserRepository
	credentialRepo  repository.DoctorCredentialRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorAssignmentService(
	db *gorm.DB,
	log *logrus.Logger,
	metrics *metrics.SchedulingMetrics,
	userRepo repository.UserRepository,
	credentialRepo repository.DoctorCredentialRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorAssignmentService {
	return &doctorAssignmentService{
		db:              db,
		log:             log,
		metrics:         metrics,
		userRepo:        userRepo,
		credentialRepo:  credentialRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *doctorAssignmentService) Assign(ctx context.Context, req AssignmentRequest) *AssignmentResult {
	result := s.assign(ctx, req)
	s.metrics.ObserveAssignment(string(result.Strategy))
	return result
}

func (s *doctorAssignmentService) assign(ctx context.Context, req AssignmentRequest) *AssignmentResult {
	db := s.db.WithContext(ctx)
	excluded := make(map[uuid.UUID]bool, len(req.Exclude))
	for _, id := range req.Exclude {
		excluded[id] = true
	}

	// 1. Explicitly requested doctor
	if req.PreferredDoctorID != nil && !excluded[*req.PreferredDoctorID] {
		if s.preferredAvailable(db, *req.PreferredDoctorID, req.Instant) {
			return &AssignmentResult{DoctorID: req.PreferredDoctorID, Strategy: StrategyPreferred}
		}
		s.log.Infof("Preferred doctor %s unavailable at %s, falling through", req.PreferredDoctorID, req.Instant.Format(time.RFC3339))
	}

	// 2. Best ranked doctor of the specialty
	if req.SpecialtyID != nil {
		candidates, err := s.rankedCandidates(db, *req.SpecialtyID, req.Instant)
		if err != nil {
			s.log.Warnf("Failed to rank doctors for specialty %d: %+v", *req.SpecialtyID, err)
		}
		for _, candidate := range candidates {
			if !candidate.Available || excluded[candidate.Doctor.ID] {
				continue
			}
			doctorID := candidate.Doctor.ID
			return &AssignmentResult{DoctorID: &doctorID, Strategy: StrategySpecialty}
		}
	}

	// 3. First active doctor with room that day
	doctors, err := s.userRepo.FindActiveDoctors(db)
	if err != nil {
		s.log.Warnf("Failed to find active doctors: %+v", err)
		return &AssignmentResult{Strategy: StrategyNone}
	}
	for _, doctor := range doctors {
		if excluded[doctor.ID] {
			continue
		}
		free, err := s.hasRoom(db, doctor.ID, req.Instant)
		if err != nil {
			continue
		}
		if free {
			doctorID := doctor.ID
			return &AssignmentResult{DoctorID: &doctorID, Strategy: StrategyAny}
		}
	}

	// 4. Nobody, the appointment stays unassigned
	s.log.Infof("No doctor available at %s", req.Instant.Format(time.RFC3339))
	return &AssignmentResult{Strategy: StrategyNone}
}

func (s *doctorAssignmentService) preferredAvailable(db *gorm.DB, doctorID uuid.UUID, instant time.Time) bool {
	doctor, err := s.userRepo.FindByID(db, doctorID)
	if err != nil {
		s.log.Warnf("Failed to find preferred doctor %s: %+v", doctorID, err)
		return false
	}
	if doctor == nil || !doctor.IsDoctor() || !doctor.Active() {
		return false
	}
	conflict, err := s.appointmentRepo.HasConflict(db, doctorID, instant)
	if err != nil {
		s.log.Warnf("Failed to check conflict for doctor %s: %+v", doctorID, err)
		return false
	}
	return !conflict
}

// rankedCandidates orders a specialty's doctors by primary credential, then
// same-day load, then id. Available is false only for a conflict at the
// instant.
func (s *doctorAssignmentService) rankedCandidates(db *gorm.DB, specialtyID int, instant time.Time) ([]DoctorCandidate, error) {
	credentials, err := s.credentialRepo.FindActiveBySpecialty(db, specialtyID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := clock.DayBounds(instant)
	candidates := make([]DoctorCandidate, 0, len(credentials))
	for _, credential := range credentials {
		conflict, err := s.appointmentRepo.HasConflict(db, credential.DoctorID, instant)
		if err != nil {
			return nil, err
		}
		load, err := s.appointmentRepo.CountByDoctorBetween(db, credential.DoctorID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, DoctorCandidate{
			Doctor:        credential.Doctor,
			IsPrimary:     credential.IsPrimary,
			LicenseNumber: credential.LicenseNumber,
			DayLoad:       load,
			Available:     !conflict,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsPrimary != b.IsPrimary {
			return a.IsPrimary
		}
		if a.DayLoad != b.DayLoad {
			return a.DayLoad < b.DayLoad
		}
		return a.Doctor.ID.String() < b.Doctor.ID.String()
	})
	return candidates, nil
}

// IsAvailable is the slot-discovery test: working hours on a weekday, no
// conflict at the instant and room under the daily cap.
func (s *doctorAssignmentService) IsAvailable(ctx context.Context, doctorID uuid.UUID, instant time.Time) (bool, error) {
	hour := instant.UTC().Hour()
	if hour < WorkingHourStart || hour > WorkingHourEnd || clock.IsWeekend(instant) {
		return false, nil
	}

	return s.hasRoom(s.db.WithContext(ctx), doctorID, instant)
}

// hasRoom reports no conflict at the instant and a day load under the cap.
func (s *doctorAssignmentService) hasRoom(db *gorm.DB, doctorID uuid.UUID, instant time.Time) (bool, error) {
	conflict, err := s.appointmentRepo.HasConflict(db, doctorID, instant)
	if err != nil {
		s.log.Warnf("Failed to check conflict for doctor %s: %+v", doctorID, err)
		return false, err
	}
	if conflict {
		return false, nil
	}

	dayStart, dayEnd := clock.DayBounds(instant)
	load, err := s.appointmentRepo.CountByDoctorBetween(db, doctorID, dayStart, dayEnd)
	if err != nil {
		s.log.Warnf("Failed to count appointments for doctor %s: %+v", doctorID, err)
		return false, err
	}
	return load < MaxAppointmentsPerDoctorPerDay, nil
}

func (s *doctorAssignmentService) HasConflict(ctx context.Context, doctorID uuid.UUID, instant time.Time) (bool, error) {
	conflict, err := s.appointmentRepo.HasConflict(s.db.WithContext(ctx), doctorID, instant)
	if err != nil {
		s.log.Warnf("Failed to check conflict for doctor %s: %+v", doctorID, err)
		return false, err
	}
	return conflict, nil
}

// AnyDoctorFree reports whether at least one active doctor has no
// appointment at the instant and is under the daily cap.
func (s *doctorAssignmentService) AnyDoctorFree(ctx context.Context, instant time.Time) (bool, error) {
	db := s.db.WithContext(ctx)
	doctors, err := s.userRepo.FindActiveDoctors(db)
	if err != nil {
		s.log.Warnf("Failed to find active doctors: %+v", err)
		return false, err
	}
	for _, doctor := range doctors {
		free, err := s.hasRoom(db, doctor.ID, instant)
		if err != nil {
			return false, err
		}
		if free {
			return true, nil
		}
	}
	return false, nil
}

// AvailableDoctorsForSpecialty lists every credentialed doctor in rank
// order with Available set by IsAvailable's rules.
func (s *doctorAssignmentService) AvailableDoctorsForSpecialty(ctx context.Context, specialtyID int, instant time.Time) ([]DoctorCandidate, error) {
	candidates, err := s.rankedCandidates(s.db.WithContext(ctx), specialtyID, instant)
	if err != nil {
		s.log.Warnf("Failed to list doctors for specialty %d: %+v", specialtyID, err)
		return nil, err
	}

	hour := instant.UTC().Hour()
	inHours := hour >= WorkingHourStart && hour <= WorkingHourEnd && !clock.IsWeekend(instant)
	for i := range candidates {
		c := &candidates[i]
		c.Available = c.Available && inHours && c.DayLoad < MaxAppointmentsPerDoctorPerDay
	}
	return candidates, nil
}
