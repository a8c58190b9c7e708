package handler

import (
	"encoding/json"
	"net/http"

	"hospital-dashboard/internal/converter"
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/usecase"
	"hospital-dashboard/pkg/response"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{appointmentUsecase: appointmentUsecase}
}

// CreateAppointment submits one draft. The body is always the outcome; only
// the status code differs per terminal state.
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	outcome := h.appointmentUsecase.Submit(r.Context(), converter.AppointmentRequestToDraft(&req))
	body := converter.OutcomeToResponse(outcome)

	switch outcome.State {
	case entity.SubmitStatePersisted:
		response.Success(w, http.StatusCreated, outcome.Message, body)
	case entity.SubmitStateRejected:
		response.Error(w, http.StatusUnprocessableEntity, outcome.Message, body)
	default:
		response.Error(w, http.StatusInternalServerError, outcome.Message, body)
	}
}
