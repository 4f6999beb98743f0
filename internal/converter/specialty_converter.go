package converter

import (
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
)

func SpecialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}

	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		Department:  specialty.Department,
	}
}

func SpecialtySummariesToResponses(summaries []entity.SpecialtySummary) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(summaries))
	for i := range summaries {
		count := summaries[i].DoctorCount
		responses[i] = *SpecialtyToResponse(&summaries[i].Specialty)
		responses[i].DoctorCount = &count
	}
	return responses
}

// CredentialToResponse expects Specialty to be preloaded for the name and
// department fields.
func CredentialToResponse(credential *entity.DoctorCredential) *dto.CredentialResponse {
	if credential == nil {
		return nil
	}

	response := &dto.CredentialResponse{
		ID:            credential.ID,
		DoctorID:      credential.DoctorID,
		SpecialtyID:   credential.SpecialtyID,
		SpecialtyName: credential.Specialty.Name,
		Department:    credential.Specialty.Department,
		IsPrimary:     credential.IsPrimary,
		LicenseNumber: credential.LicenseNumber,
		IsActive:      credential.IsActive,
	}
	if credential.CertificationDate != nil {
		response.CertificationDate = credential.CertificationDate.Format("2006-01-02")
	}

	return response
}

func CredentialsToResponses(credentials []entity.DoctorCredential) []dto.CredentialResponse {
	responses := make([]dto.CredentialResponse, len(credentials))
	for i := range credentials {
		responses[i] = *CredentialToResponse(&credentials[i])
	}
	return responses
}

func CredentialToDoctorSummary(credential *entity.DoctorCredential) dto.DoctorSummaryResponse {
	license := credential.LicenseNumber
	if license == "" {
		license = credential.Doctor.LicenseNumber
	}
	return dto.DoctorSummaryResponse{
		ID:            credential.DoctorID,
		FullName:      credential.Doctor.FullName,
		LicenseNumber: license,
		IsPrimary:     credential.IsPrimary,
	}
}
