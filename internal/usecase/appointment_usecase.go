package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/domain/repository"
	"hospital-dashboard/internal/infrastructure/metrics"
	"hospital-dashboard/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// User-facing outcome messages.
const (
	MsgMissingFields     = "Completa todos los campos antes de guardar."
	MsgInvalidTimeFormat = "Formato de hora inválido (usa HH:MM, por ejemplo 14:30)."
	MsgPersisted         = "Turno registrado correctamente para %s."
	MsgFailedDetail      = "Error al guardar: %v"
	MsgFailedGeneric     = "Error al guardar el turno."
)

type AppointmentUsecase interface {
	Submit(ctx context.Context, draft entity.DraftAppointment) entity.SubmitOutcome
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	validator         *validator.CustomValidator
	appointmentRepo   repository.AppointmentRepository
	metrics           *metrics.Metrics
	exposeStoreErrors bool
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validator *validator.CustomValidator,
	appointmentRepo repository.AppointmentRepository,
	m *metrics.Metrics,
	exposeStoreErrors bool,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		validator:         validator,
		appointmentRepo:   appointmentRepo,
		metrics:           m,
		exposeStoreErrors: exposeStoreErrors,
	}
}

// Submit validates and persists one draft. It never returns an error: every
// path ends in a terminal outcome (rejected, persisted or failed).
//
// Flow:
// 1. All five fields present, else reject (missing fields)
// 2. Time shaped HH:MM, else reject (invalid time format)
// 3. Compose "<date> <time>:00" and insert it in one transaction
// 4. Report the persisted timestamp, or the store failure
func (u *appointmentUsecase) Submit(ctx context.Context, draft entity.DraftAppointment) entity.SubmitOutcome {
	if outcome, ok := u.validate(draft); !ok {
		u.metrics.ObserveSubmission(string(outcome.State))
		return outcome
	}

	timestamp := draft.Timestamp()
	outcome := u.persist(ctx, draft, timestamp)
	u.metrics.ObserveSubmission(string(outcome.State))
	return outcome
}

func (u *appointmentUsecase) validate(draft entity.DraftAppointment) (entity.SubmitOutcome, bool) {
	err := u.validator.Validate(&draft)
	if err == nil {
		return entity.SubmitOutcome{}, true
	}

	// Missing fields are reported before a malformed time.
	missing := u.validator.HasTag(err, "required") || u.validator.HasTag(err, validator.TagNotBlank)
	if u.validator.HasTag(err, validator.TagHHMM) && !missing {
		return entity.SubmitOutcome{
			State:   entity.SubmitStateRejected,
			Reason:  entity.ReasonInvalidTimeFormat,
			Message: MsgInvalidTimeFormat,
		}, false
	}
	return entity.SubmitOutcome{
		State:   entity.SubmitStateRejected,
		Reason:  entity.ReasonMissingFields,
		Message: MsgMissingFields,
	}, false
}

func (u *appointmentUsecase) persist(ctx context.Context, draft entity.DraftAppointment, timestamp string) entity.SubmitOutcome {
	scheduledAt, err := time.Parse(entity.TimestampLayout, timestamp)
	if err != nil {
		return u.failed(timestamp, err)
	}

	appointment := &entity.Appointment{
		ProfessionalID: draft.ProfessionalID,
		PatientID:      draft.PatientID,
		ScheduledAt:    scheduledAt,
		Status:         draft.Status,
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return u.failed(timestamp, tx.Error)
	}
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		return u.failed(timestamp, err)
	}

	if err := tx.Commit().Error; err != nil {
		return u.failed(timestamp, err)
	}

	u.log.Infof("Appointment created: id=%d, professional=%d, patient=%d, at=%s", appointment.ID, appointment.ProfessionalID, appointment.PatientID, timestamp)
	return entity.SubmitOutcome{
		State:         entity.SubmitStatePersisted,
		Message:       fmt.Sprintf(MsgPersisted, timestamp),
		AppointmentID: appointment.ID,
		ScheduledAt:   timestamp,
	}
}

func (u *appointmentUsecase) failed(timestamp string, err error) entity.SubmitOutcome {
	u.log.Errorf("Failed to save appointment at %s: %+v", timestamp, err)

	message := MsgFailedGeneric
	if u.exposeStoreErrors {
		message = fmt.Sprintf(MsgFailedDetail, err)
	}
	return entity.SubmitOutcome{
		State:       entity.SubmitStateFailed,
		Message:     message,
		ScheduledAt: timestamp,
	}
}
