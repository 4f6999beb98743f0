package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/VictorAraujo38/akkadian-test/internal/converter"
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/repository"
	"github.com/VictorAraujo38/akkadian-test/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCredentialExists = errors.New("doctor already holds a credential for this specialty")
)

const credentialConstraint = "idx_doctor_specialty"

type SpecialtyUsecase interface {
	ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	ListSpecialtiesWithDoctors(ctx context.Context) (*dto.SpecialtyWithDoctorsListResponse, error)
	AddCredential(ctx context.Context, actor Actor, doctorID uuid.UUID, req *dto.AddCredentialRequest) (*dto.CredentialResponse, error)
	ListCredentialsForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.CredentialListResponse, error)
}

type specialtyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	specialtyRepo  repository.SpecialtyRepository
	credentialRepo repository.DoctorCredentialRepository
	auditService   service.AuditService
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	specialtyRepo repository.SpecialtyRepository,
	credentialRepo repository.DoctorCredentialRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		specialtyRepo:  specialtyRepo,
		credentialRepo: credentialRepo,
		auditService:   auditService,
	}
}

func (u *specialtyUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	summaries, err := u.specialtyRepo.FindAllActiveWithDoctorCount(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}

	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtySummariesToResponses(summaries),
		Total:       len(summaries),
	}, nil
}

func (u *specialtyUsecase) ListSpecialtiesWithDoctors(ctx context.Context) (*dto.SpecialtyWithDoctorsListResponse, error) {
	db := u.db.WithContext(ctx)
	specialties, err := u.specialtyRepo.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to find specialties: %+v", err)
		return nil, err
	}

	responses := make([]dto.SpecialtyWithDoctorsResponse, len(specialties))
	for i := range specialties {
		credentials, err := u.credentialRepo.FindActiveBySpecialty(db, specialties[i].ID)
		if err != nil {
			u.log.Warnf("Failed to find doctors of specialty %d: %+v", specialties[i].ID, err)
			return nil, err
		}

		doctors := make([]dto.DoctorSummaryResponse, len(credentials))
		for j := range credentials {
			doctors[j] = converter.CredentialToDoctorSummary(&credentials[j])
		}
		count := len(doctors)
		responses[i] = dto.SpecialtyWithDoctorsResponse{
			SpecialtyResponse: *converter.SpecialtyToResponse(&specialties[i]),
			Doctors:           doctors,
		}
		responses[i].DoctorCount = &count
	}

	return &dto.SpecialtyWithDoctorsListResponse{
		Specialties: responses,
		Total:       len(responses),
	}, nil
}

// AddCredential links a doctor to a specialty. A new primary credential
// demotes the doctor's previous one in the same transaction.
//
// Flow:
// 1. Check the doctor and the specialty
// 2. Reject a second credential for the same pair
// 3. Demote and insert in one transaction, then audit
func (u *specialtyUsecase) AddCredential(ctx context.Context, actor Actor, doctorID uuid.UUID, req *dto.AddCredentialRequest) (*dto.CredentialResponse, error) {
	db := u.db.WithContext(ctx)

	// Step 1: Doctor and specialty
	doctor, err := u.userRepo.FindByID(db, doctorID)
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

	specialty, err := u.specialtyRepo.FindByID(db, req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", req.SpecialtyID, err)
		return nil, err
	}
	if specialty == nil || !specialty.IsActive {
		return nil, ErrSpecialtyNotFound
	}

	credential := &entity.DoctorCredential{
		DoctorID:      doctorID,
		SpecialtyID:   specialty.ID,
		IsPrimary:     req.IsPrimary,
		LicenseNumber: req.LicenseNumber,
		IsActive:      true,
	}
	if req.CertificationDate != "" {
		certified, err := time.Parse("2006-01-02", req.CertificationDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		credential.CertificationDate = &certified
	}

	// Step 2: Uniqueness
	existing, err := u.credentialRepo.FindByDoctorAndSpecialty(db, doctorID, specialty.ID)
	if err != nil {
		u.log.Warnf("Failed to find credential: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrCredentialExists
	}

	// Step 3: Persist
	tx := db.Begin()
	defer tx.Rollback()

	if credential.IsPrimary {
		if _, err := u.credentialRepo.DemotePrimary(tx, doctorID); err != nil {
			u.log.Warnf("Failed to demote primary credential of %s: %+v", doctorID, err)
			return nil, err
		}
	}

	if err := u.credentialRepo.Create(tx, credential); err != nil {
		u.log.Warnf("Failed to create credential: %+v", err)
		if isDuplicateKeyError(err, credentialConstraint) {
			return nil, ErrCredentialExists
		}
		return nil, err
	}

	credential.Specialty = *specialty
	response := converter.CredentialToResponse(credential)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, db, &actor.UserID, entity.AuditActionCredentialCreate, entity.AuditEntityCredential, strconv.Itoa(credential.ID), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Credential added: doctor=%s, specialty=%s, primary=%t", doctorID, specialty.Name, credential.IsPrimary)
	return response, nil
}

func (u *specialtyUsecase) ListCredentialsForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.CredentialListResponse, error) {
	db := u.db.WithContext(ctx)
	doctor, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	credentials, err := u.credentialRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find credentials of %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.CredentialListResponse{
		Credentials: converter.CredentialsToResponses(credentials),
		Total:       len(credentials),
	}, nil
}
