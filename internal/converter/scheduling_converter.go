package converter

import (
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/service"
)

func ValidationResultToResponse(result *entity.ValidationResult) *dto.ValidationResponse {
	if result == nil {
		return nil
	}

	return &dto.ValidationResponse{
		IsValid:  result.IsValid(),
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Metadata: result.Metadata,
	}
}

func TriageOutcomeToResponse(outcome *service.TriageOutcome) *dto.TriageResponse {
	if outcome == nil || outcome.Result == nil {
		return nil
	}

	response := &dto.TriageResponse{
		Specialty:  outcome.Result.Specialty,
		Confidence: string(outcome.Result.Confidence),
		Reasoning:  outcome.Reasoning,
		Score:      outcome.Result.Score.StringFixed(2),
		Source:     outcome.Result.Source,
	}
	if outcome.Specialty != nil {
		id := outcome.Specialty.ID
		response.SpecialtyID = &id
		response.Specialty = outcome.Specialty.Name
		response.Department = outcome.Specialty.Department
	}

	return response
}

func DoctorCandidatesToResponses(candidates []service.DoctorCandidate) []dto.DoctorAvailabilityResponse {
	responses := make([]dto.DoctorAvailabilityResponse, len(candidates))
	for i, candidate := range candidates {
		license := candidate.LicenseNumber
		if license == "" {
			license = candidate.Doctor.LicenseNumber
		}
		responses[i] = dto.DoctorAvailabilityResponse{
			DoctorID:      candidate.Doctor.ID,
			FullName:      candidate.Doctor.FullName,
			LicenseNumber: license,
			IsPrimary:     candidate.IsPrimary,
			DayLoad:       candidate.DayLoad,
			Available:     candidate.Available,
		}
	}
	return responses
}
