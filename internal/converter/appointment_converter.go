package converter

import (
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
)

// AppointmentToResponse flattens an appointment and whatever relations were
// preloaded. Status is rendered by name.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                   appointment.ID,
		PatientID:            appointment.PatientID,
		DoctorID:             appointment.DoctorID,
		SpecialtyID:          appointment.SpecialtyID,
		AppointmentDate:      appointment.AppointmentDate.UTC(),
		Symptoms:             appointment.Symptoms,
		RecommendedSpecialty: appointment.RecommendedSpecialty,
		TriageConfidence:     appointment.TriageConfidence,
		TriageReasoning:      appointment.TriageReasoning,
		Status:               appointment.Status.String(),
		Notes:                appointment.Notes,
		CreatedAt:            appointment.CreatedAt,
		UpdatedAt:            appointment.UpdatedAt,
	}

	if appointment.Patient.ID == appointment.PatientID {
		response.PatientName = appointment.Patient.FullName
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.FullName
		response.DoctorLicense = appointment.Doctor.LicenseNumber
	}
	if appointment.Specialty != nil {
		response.SpecialtyName = appointment.Specialty.Name
		response.Department = appointment.Specialty.Department
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
