package handler

import (
	"encoding/json"
	"net/http"

	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/usecase"
	"github.com/VictorAraujo38/akkadian-test/pkg/response"
	"github.com/VictorAraujo38/akkadian-test/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	schedulingUsecase  usecase.SchedulingUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, schedulingUsecase usecase.SchedulingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		schedulingUsecase:  schedulingUsecase,
		validator:          validator,
	}
}

// writeAppointmentError maps lifecycle errors to responses. fallback is the
// message for unexpected failures.
func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrNotAppointmentParticipant:
		response.Forbidden(w, "You are not allowed to access this appointment")
	case usecase.ErrInvalidDate:
		response.Error(w, http.StatusBadRequest, "A valid appointment date is required", nil)
	case usecase.ErrInvalidStatus:
		response.Error(w, http.StatusBadRequest, "Unknown appointment status", nil)
	case usecase.ErrAppointmentCompleted:
		response.Error(w, http.StatusConflict, "Completed appointments cannot be cancelled", nil)
	case usecase.ErrAppointmentAlreadyCancelled:
		response.Error(w, http.StatusConflict, "Appointment is already cancelled", nil)
	case usecase.ErrAppointmentClosed:
		response.Error(w, http.StatusConflict, "Appointment is completed or cancelled", nil)
	case usecase.ErrInvalidStatusTransition:
		response.Error(w, http.StatusConflict, "Status transition not allowed", nil)
	case usecase.ErrSlotTaken:
		response.Error(w, http.StatusConflict, "Doctor already has an appointment at this time", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

// CreateAppointment validates the booking first and rejects it with the full
// validation result when any rule fails.
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	validation, err := h.schedulingUsecase.ValidateBooking(r.Context(), actor, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to validate appointment")
		return
	}
	if !validation.IsValid {
		response.UnprocessableEntity(w, "Appointment violates scheduling rules", validation)
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), actor, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", dto.AppointmentWithWarningsResponse{
		Appointment: appointment,
		Warnings:    validation.Warnings,
	})
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), actor.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	date, err := parseInstant(r.URL.Query().Get("date"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	appointments, err := h.appointmentUsecase.ListForDoctorOnDate(r.Context(), actor.UserID, date)
	if err != nil {
		response.InternalServerError(w, "Failed to get agenda")
		return
	}

	response.Success(w, http.StatusOK, "Agenda retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuidVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointmentByID(r.Context(), actor, appointmentID)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuidVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	history, err := h.appointmentUsecase.GetHistory(r.Context(), actor, appointmentID)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment history")
		return
	}

	response.Success(w, http.StatusOK, "Appointment history retrieved successfully", history)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuidVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), actor, appointmentID, req.Status)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// CancelAppointment runs the cancellation rules and cancels only when they
// pass. Warnings are returned with the cancelled appointment.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuidVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	validation, err := h.schedulingUsecase.ValidateCancel(r.Context(), actor, appointmentID)
	if err != nil {
		writeAppointmentError(w, err, "Failed to validate cancellation")
		return
	}
	if !validation.IsValid {
		response.UnprocessableEntity(w, "Appointment cannot be cancelled", validation)
		return
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), actor, appointmentID)
	if err != nil {
		writeAppointmentError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", dto.AppointmentWithWarningsResponse{
		Appointment: appointment,
		Warnings:    validation.Warnings,
	})
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := uuidVar(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	validation, err := h.schedulingUsecase.ValidateUpdate(r.Context(), actor, appointmentID, &dto.ValidateUpdateRequest{
		NewAppointmentDate: req.NewAppointmentDate,
	})
	if err != nil {
		writeAppointmentError(w, err, "Failed to validate reschedule")
		return
	}
	if !validation.IsValid {
		response.UnprocessableEntity(w, "Appointment cannot be rescheduled", validation)
		return
	}

	appointment, err := h.appointmentUsecase.RescheduleAppointment(r.Context(), actor, appointmentID, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", dto.AppointmentWithWarningsResponse{
		Appointment: appointment,
		Warnings:    validation.Warnings,
	})
}
