package handler

import (
	"encoding/json"
	"net/http"

	"github.com/VictorAraujo38/akkadian-test/internal/delivery/dto"
	"github.com/VictorAraujo38/akkadian-test/internal/usecase"
	"github.com/VictorAraujo38/akkadian-test/pkg/response"
	"github.com/VictorAraujo38/akkadian-test/pkg/validator"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) GetSpecialtiesWithDoctors(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.ListSpecialtiesWithDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) AddCredential(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	doctorID, err := uuidVar(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.AddCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	credential, err := h.specialtyUsecase.AddCredential(r.Context(), actor, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrNotADoctor:
			response.Error(w, http.StatusBadRequest, "User is not a doctor", nil)
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid certification date, use YYYY-MM-DD", nil)
		case usecase.ErrCredentialExists:
			response.Error(w, http.StatusConflict, "Doctor already holds a credential for this specialty", nil)
		default:
			response.InternalServerError(w, "Failed to add credential")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Credential added successfully", credential)
}

func (h *SpecialtyHandler) GetDoctorCredentials(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuidVar(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	credentials, err := h.specialtyUsecase.ListCredentialsForDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get credentials")
		}
		return
	}

	response.Success(w, http.StatusOK, "Credentials retrieved successfully", credentials)
}
