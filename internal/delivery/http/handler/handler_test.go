package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hospital-dashboard/internal/converter"
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/pkg/validator"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardUsecase struct {
	mu      sync.Mutex
	filters []entity.FilterState
	err     error
}

func (s *stubDashboardUsecase) Recompute(ctx context.Context, filter entity.FilterState) (entity.ChartSet, error) {
	s.mu.Lock()
	s.filters = append(s.filters, filter)
	s.mu.Unlock()
	if s.err != nil {
		return entity.ChartSet{}, s.err
	}
	if !filter.HasSpecialty() {
		return converter.EmptyChartSet(), nil
	}
	return entity.ChartSet{
		DailyCounts:        converter.DailyCountsChart([]entity.AggregateRow{{Label: "2024-03-01", Total: 2}}),
		TopProfessionals:   converter.TopProfessionalsChart(nil),
		StatusDistribution: converter.StatusDistributionChart(nil),
	}, nil
}

func (s *stubDashboardUsecase) Filters() []entity.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.FilterState(nil), s.filters...)
}

type stubAppointmentUsecase struct {
	outcome entity.SubmitOutcome
	got     entity.DraftAppointment
}

func (s *stubAppointmentUsecase) Submit(ctx context.Context, draft entity.DraftAppointment) entity.SubmitOutcome {
	s.got = draft
	return s.outcome
}

type stubCatalogUsecase struct {
	err error
}

func (s *stubCatalogUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return converter.SpecialtiesToResponse([]entity.Specialty{{ID: 1, Name: "Cardiología"}}), nil
}

func (s *stubCatalogUsecase) ListProfessionals(ctx context.Context) (*dto.CatalogListResponse, error) {
	return converter.CatalogItemsToResponse([]entity.CatalogItem{{ID: 2, DisplayName: "Pérez, Ana"}}), s.err
}

func (s *stubCatalogUsecase) ListPatients(ctx context.Context) (*dto.CatalogListResponse, error) {
	return converter.CatalogItemsToResponse(nil), s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	uc := &stubDashboardUsecase{}
	h := NewDashboardHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?specialty_id=3&start_date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	h.GetDashboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	var body dto.DashboardResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))

	assert.Equal(t, 3, *body.Filter.SpecialtyID)
	assert.Equal(t, "2024-03-01", *body.Filter.StartDate)
	assert.Nil(t, body.Filter.EndDate)
	require.Len(t, body.Charts, 3)
	assert.Equal(t, "bar", body.Charts[0].Kind)
	assert.Equal(t, int64(2), body.Charts[0].Points[0].Value)
}

func TestDashboardHandler_GetDashboardWithoutSpecialty(t *testing.T) {
	h := NewDashboardHandler(&stubDashboardUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.DashboardResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &body))
	for _, chart := range body.Charts {
		assert.Equal(t, "empty", chart.Kind)
		assert.Equal(t, converter.TitleEmpty, chart.Title)
	}
}

func TestDashboardHandler_RejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"non numeric specialty": "/api/v1/dashboard?specialty_id=abc",
		"zero specialty":        "/api/v1/dashboard?specialty_id=0",
		"bad date":              "/api/v1/dashboard?specialty_id=1&end_date=31/03/2024",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &stubDashboardUsecase{}
			h := NewDashboardHandler(uc, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, uc.Filters())
		})
	}
}

func TestDashboardHandler_RecomputeError(t *testing.T) {
	h := NewDashboardHandler(&stubDashboardUsecase{err: errors.New("boom")}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?specialty_id=1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAppointmentHandler_StatusPerOutcome(t *testing.T) {
	cases := []struct {
		state entity.SubmitState
		code  int
	}{
		{entity.SubmitStatePersisted, http.StatusCreated},
		{entity.SubmitStateRejected, http.StatusUnprocessableEntity},
		{entity.SubmitStateFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			uc := &stubAppointmentUsecase{outcome: entity.SubmitOutcome{State: tc.state, Message: "msg"}}
			h := NewAppointmentHandler(uc)

			body := `{"professional_id":3,"patient_id":11,"date":"2024-03-01","time":"14:30","status":"confirmado"}`
			rec := httptest.NewRecorder()
			h.CreateAppointment(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, "msg", decodeEnvelope(t, rec).Message)
			assert.Equal(t, entity.DraftAppointment{
				ProfessionalID: 3,
				PatientID:      11,
				Date:           "2024-03-01",
				Time:           "14:30",
				Status:         "confirmado",
			}, uc.got)
		})
	}
}

func TestAppointmentHandler_InvalidBody(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentUsecase{})

	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandler(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogUsecase{})

	rec := httptest.NewRecorder()
	h.GetSpecialties(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/specialties", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.SpecialtyListResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Equal(t, 1, *list.DefaultSpecialtyID)

	failing := NewCatalogHandler(&stubCatalogUsecase{err: errors.New("down")})
	rec = httptest.NewRecorder()
	failing.GetPatients(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/patients", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func dialLive(t *testing.T, h *LiveHandler, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeLive))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readLive(t *testing.T, conn *websocket.Conn) dto.LiveMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg dto.LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	return log
}

func TestLiveHandler_Session(t *testing.T) {
	uc := &stubDashboardUsecase{}
	h := NewLiveHandler(uc, validator.NewValidator(), quietLogger(), nil)
	conn := dialLive(t, h, "?specialty_id=2")

	initial := readLive(t, conn)
	assert.Equal(t, dto.LiveMessageCharts, initial.Type)
	assert.Equal(t, uint64(1), initial.Generation)
	require.Len(t, initial.Charts, 3)
	assert.Equal(t, "bar", initial.Charts[0].Kind)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	invalid := readLive(t, conn)
	assert.Equal(t, dto.LiveMessageInvalid, invalid.Type)

	require.NoError(t, conn.WriteJSON(map[string]any{"specialty_id": 0}))
	rejected := readLive(t, conn)
	assert.Equal(t, dto.LiveMessageInvalid, rejected.Type)
	assert.Contains(t, rejected.Fields, "specialty_id")

	require.NoError(t, conn.WriteJSON(map[string]any{"end_date": "2024-03-31"}))
	cleared := readLive(t, conn)
	assert.Equal(t, dto.LiveMessageCharts, cleared.Type)
	assert.Equal(t, uint64(2), cleared.Generation)
	assert.Nil(t, cleared.Filter.SpecialtyID)
	assert.Equal(t, "2024-03-31", *cleared.Filter.EndDate)
	assert.Equal(t, "empty", cleared.Charts[0].Kind)

	assert.Len(t, uc.Filters(), 2)
}

func TestLiveHandler_RecomputeErrorIsReported(t *testing.T) {
	h := NewLiveHandler(&stubDashboardUsecase{err: errors.New("statement timeout")}, validator.NewValidator(), quietLogger(), nil)
	conn := dialLive(t, h, "?specialty_id=1")

	msg := readLive(t, conn)
	assert.Equal(t, dto.LiveMessageError, msg.Type)
	assert.NotEmpty(t, msg.Error)
	assert.NotContains(t, msg.Error, "statement timeout")
}
