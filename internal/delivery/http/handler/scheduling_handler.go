package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/usecase"
	"github.com/VictorAraujo38/akkadian-test/pkg/response"
	"github.com/VictorAraujo38/akkadian-test/pkg/validator"

	"github.com/gorilla/mux"
)

type SchedulingHandler struct {
	schedulingUsecase usecase.SchedulingUsecase
	validator         *validator.CustomValidator
}

func NewSchedulingHandler(schedulingUsecase usecase.SchedulingUsecase, validator *validator.CustomValidator) *SchedulingHandler {
	return &SchedulingHandler{
		schedulingUsecase: schedulingUsecase,
		validator:         validator,
	}
}

func (h *SchedulingHandler) Triage(w http.ResponseWriter, r *http.Request) {
	var req dto.TriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	response.Success(w, http.StatusOK, "Symptoms classified successfully", h.schedulingUsecase.Triage(r.Context(), &req))
}

func (h *SchedulingHandler) ValidateAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.ValidateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.schedulingUsecase.ValidateCreate(r.Context(), actor, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to validate appointment")
		return
	}

	response.Success(w, http.StatusOK, "Validation completed", result)
}

func (h *SchedulingHandler) ValidateUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ValidateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.schedulingUsecase.ValidateUpdate(r.Context(), actor, appointmentID, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to validate reschedule")
		return
	}

	response.Success(w, http.StatusOK, "Validation completed", result)
}

func (h *SchedulingHandler) ValidateCancel(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.schedulingUsecase.ValidateCancel(r.Context(), actor, appointmentID)
	if err != nil {
		response.InternalServerError(w, "Failed to validate cancellation")
		return
	}

	response.Success(w, http.StatusOK, "Validation completed", result)
}

func (h *SchedulingHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	date, err := parseInstant(query.Get("date"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		return
	}

	doctorID, err := optionalUUID(query.Get("doctorId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	slots, err := h.schedulingUsecase.ListAvailableSlots(r.Context(), date, doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *SchedulingHandler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assignment, err := h.schedulingUsecase.AssignDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "A valid appointment date is required", nil)
		default:
			response.InternalServerError(w, "Failed to assign doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor assignment computed", assignment)
}

func (h *SchedulingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	doctorID, err := optionalUUID(query.Get("doctorId"))
	if err != nil || doctorID == nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	instant, err := parseInstant(query.Get("date"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use RFC 3339", nil)
		return
	}

	availability, err := h.schedulingUsecase.CheckAvailability(r.Context(), *doctorID, instant)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrNotADoctor:
			response.Error(w, http.StatusBadRequest, "User is not a doctor", nil)
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "A valid date is required", nil)
		default:
			response.InternalServerError(w, "Failed to check availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability checked", availability)
}

func (h *SchedulingHandler) GetDoctorsBySpecialty(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	instant, err := parseInstant(r.URL.Query().Get("date"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date, use RFC 3339", nil)
		return
	}

	doctors, err := h.schedulingUsecase.DoctorsBySpecialty(r.Context(), specialtyID, instant)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "A valid date is required", nil)
		default:
			response.InternalServerError(w, "Failed to get doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
