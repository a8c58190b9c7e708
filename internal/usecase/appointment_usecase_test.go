package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() entity.DraftAppointment {
	return entity.DraftAppointment{
		ProfessionalID: 3,
		PatientID:      11,
		Date:           "2024-03-01",
		Time:           "14:30",
		Status:         "confirmado",
	}
}

func newAppointmentUsecase(t *testing.T, repo *mockAppointmentRepository, expose bool) (AppointmentUsecase, func() error) {
	db, mock := newMockDB(t)
	uc := NewAppointmentUsecase(db, quietLogger(), validator.NewValidator(), repo, nil, expose)
	return uc, mock.ExpectationsWereMet
}

func TestAppointmentUsecase_SubmitPersists(t *testing.T) {
	var saved *entity.Appointment
	repo := &mockAppointmentRepository{CreateFunc: func(a *entity.Appointment) error {
		a.ID = 42
		saved = a
		return nil
	}}
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	uc := NewAppointmentUsecase(db, quietLogger(), validator.NewValidator(), repo, nil, true)

	outcome := uc.Submit(context.Background(), validDraft())

	assert.Equal(t, entity.SubmitStatePersisted, outcome.State)
	assert.True(t, outcome.IsPersisted())
	assert.Equal(t, "Turno registrado correctamente para 2024-03-01 14:30:00.", outcome.Message)
	assert.Equal(t, "2024-03-01 14:30:00", outcome.ScheduledAt)
	assert.Equal(t, 42, outcome.AppointmentID)

	require.NotNil(t, saved)
	assert.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), saved.ScheduledAt)
	assert.Equal(t, "confirmado", saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_MissingFieldsNeverTouchStore(t *testing.T) {
	cases := map[string]func(d *entity.DraftAppointment){
		"professional": func(d *entity.DraftAppointment) { d.ProfessionalID = 0 },
		"patient":      func(d *entity.DraftAppointment) { d.PatientID = 0 },
		"date":         func(d *entity.DraftAppointment) { d.Date = "" },
		"time":         func(d *entity.DraftAppointment) { d.Time = "" },
		"status":       func(d *entity.DraftAppointment) { d.Status = "" },
		"blank status": func(d *entity.DraftAppointment) { d.Status = "   " },
		"blank date":   func(d *entity.DraftAppointment) { d.Date = "\t" },
		"blank time":   func(d *entity.DraftAppointment) { d.Time = "  " },
		"missing and malformed": func(d *entity.DraftAppointment) {
			d.Status = ""
			d.Time = "2:30pm"
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mockAppointmentRepository{}
			uc, verify := newAppointmentUsecase(t, repo, true)
			draft := validDraft()
			mutate(&draft)

			outcome := uc.Submit(context.Background(), draft)

			assert.Equal(t, entity.SubmitStateRejected, outcome.State)
			assert.Equal(t, entity.ReasonMissingFields, outcome.Reason)
			assert.Equal(t, MsgMissingFields, outcome.Message)
			assert.Zero(t, repo.CreateCallCount)
			assert.NoError(t, verify())
		})
	}
}

func TestAppointmentUsecase_InvalidTimeFormat(t *testing.T) {
	for _, raw := range []string{"9:30", "14:30:00", "2:30pm", "1430"} {
		t.Run(raw, func(t *testing.T) {
			repo := &mockAppointmentRepository{}
			uc, verify := newAppointmentUsecase(t, repo, true)
			draft := validDraft()
			draft.Time = raw

			outcome := uc.Submit(context.Background(), draft)

			assert.Equal(t, entity.SubmitStateRejected, outcome.State)
			assert.Equal(t, entity.ReasonInvalidTimeFormat, outcome.Reason)
			assert.Equal(t, MsgInvalidTimeFormat, outcome.Message)
			assert.Zero(t, repo.CreateCallCount)
			assert.NoError(t, verify())
		})
	}
}

func TestAppointmentUsecase_OutOfRangeTimeFailsAtStore(t *testing.T) {
	repo := &mockAppointmentRepository{}
	uc, verify := newAppointmentUsecase(t, repo, true)
	draft := validDraft()
	draft.Time = "25:00"

	outcome := uc.Submit(context.Background(), draft)

	assert.Equal(t, entity.SubmitStateFailed, outcome.State)
	assert.Contains(t, outcome.Message, "Error al guardar: ")
	assert.Equal(t, "2024-03-01 25:00:00", outcome.ScheduledAt)
	assert.Zero(t, repo.CreateCallCount)
	assert.NoError(t, verify())
}

func TestAppointmentUsecase_StoreErrorRollsBack(t *testing.T) {
	repo := &mockAppointmentRepository{CreateFunc: func(*entity.Appointment) error {
		return errors.New(`insert or update on table "turnos" violates foreign key constraint`)
	}}

	t.Run("detail exposed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		uc := NewAppointmentUsecase(db, quietLogger(), validator.NewValidator(), repo, nil, true)

		outcome := uc.Submit(context.Background(), validDraft())

		assert.Equal(t, entity.SubmitStateFailed, outcome.State)
		assert.Equal(t, `Error al guardar: insert or update on table "turnos" violates foreign key constraint`, outcome.Message)
		assert.Zero(t, outcome.AppointmentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("detail hidden", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		uc := NewAppointmentUsecase(db, quietLogger(), validator.NewValidator(), repo, nil, false)

		outcome := uc.Submit(context.Background(), validDraft())

		assert.Equal(t, entity.SubmitStateFailed, outcome.State)
		assert.Equal(t, MsgFailedGeneric, outcome.Message)
		assert.NotContains(t, outcome.Message, "turnos")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentUsecase_BeginFailure(t *testing.T) {
	repo := &mockAppointmentRepository{}
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
	uc := NewAppointmentUsecase(db, quietLogger(), validator.NewValidator(), repo, nil, true)

	outcome := uc.Submit(context.Background(), validDraft())

	assert.Equal(t, entity.SubmitStateFailed, outcome.State)
	assert.Equal(t, "Error al guardar: too many connections", outcome.Message)
	assert.Zero(t, repo.CreateCallCount)
}
