package converter

import (
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
)

func AppointmentRequestToDraft(req *dto.CreateAppointmentRequest) entity.DraftAppointment {
	return entity.DraftAppointment{
		ProfessionalID: req.ProfessionalID,
		PatientID:      req.PatientID,
		Date:           req.Date,
		Time:           req.Time,
		Status:         req.Status,
	}
}

func OutcomeToResponse(outcome entity.SubmitOutcome) *dto.AppointmentOutcomeResponse {
	return &dto.AppointmentOutcomeResponse{
		State:         string(outcome.State),
		Reason:        outcome.Reason,
		Message:       outcome.Message,
		AppointmentID: outcome.AppointmentID,
		ScheduledAt:   outcome.ScheduledAt,
	}
}
