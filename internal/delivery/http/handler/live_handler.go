package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"hospital-dashboard/internal/converter"
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
	"hospital-dashboard/internal/infrastructure/metrics"
	"hospital-dashboard/internal/service"
	"hospital-dashboard/internal/usecase"
	"hospital-dashboard/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	liveWriteWait      = 10 * time.Second
	liveMaxMessageSize = 4096
	liveSendBuffer     = 16
)

var errSessionClosed = errors.New("live session closed")

// LiveHandler serves the interactive dashboard over a websocket. Each
// connection is one UI session with its own recompute controller: every
// inbound filter message is a trigger, every published view is written back.
type LiveHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
	metrics          *metrics.Metrics
	upgrader         websocket.Upgrader
}

func NewLiveHandler(
	dashboardUsecase usecase.DashboardUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
	m *metrics.Metrics,
) *LiveHandler {
	return &LiveHandler{
		dashboardUsecase: dashboardUsecase,
		validator:        validator,
		log:              log,
		metrics:          m,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeLive upgrades the connection and runs the session until the client
// goes away. The query string, if any, is the initial filter.
func (h *LiveHandler) ServeLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("Failed to upgrade live session: %+v", err)
		return
	}

	session := newLiveSession(conn)
	entry := h.log.WithField("session_id", session.id)
	entry.Info("Live session opened")

	ctx, cancel := context.WithCancel(r.Context())
	controller := service.NewRecomputeController(h.dashboardUsecase, session, h.log, h.metrics)
	go session.writePump()

	defer func() {
		cancel()
		controller.Wait()
		session.close()
		entry.Info("Live session closed")
	}()

	if initial, err := filterFromQuery(r.URL.Query()); err == nil {
		h.trigger(ctx, controller, session, initial)
	} else {
		session.enqueue(dto.LiveMessage{Type: dto.LiveMessageInvalid, Error: "Invalid specialty ID"})
	}

	conn.SetReadLimit(liveMaxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				entry.Warnf("Live session read failed: %+v", err)
			}
			return
		}

		var req dto.DashboardFilterRequest
		if err := json.Unmarshal(data, &req); err != nil {
			session.enqueue(dto.LiveMessage{Type: dto.LiveMessageInvalid, Error: "Invalid message body"})
			continue
		}
		h.trigger(ctx, controller, session, req)
	}
}

// trigger validates one filter message. Invalid input is reported to the
// client and leaves the current charts untouched.
func (h *LiveHandler) trigger(ctx context.Context, controller *service.RecomputeController, session *liveSession, req dto.DashboardFilterRequest) {
	if err := h.validator.Validate(&req); err != nil {
		session.enqueue(dto.LiveMessage{
			Type:   dto.LiveMessageInvalid,
			Error:  "Validation failed",
			Fields: h.validator.FormatValidationErrors(err),
		})
		return
	}

	filter, err := converter.FilterRequestToState(&req)
	if err != nil {
		session.enqueue(dto.LiveMessage{Type: dto.LiveMessageInvalid, Error: err.Error()})
		return
	}
	controller.Trigger(ctx, filter)
}

// liveSession owns the write side of one websocket. All writes go through
// send and a single writer goroutine.
type liveSession struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

func newLiveSession(conn *websocket.Conn) *liveSession {
	return &liveSession{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, liveSendBuffer),
		done: make(chan struct{}),
	}
}

// Publish implements service.ChartPublisher.
func (s *liveSession) Publish(view entity.DashboardView) error {
	return s.enqueue(converter.DashboardViewToMessage(view))
}

func (s *liveSession) enqueue(msg dto.LiveMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	select {
	case s.send <- data:
		return nil
	case <-s.done:
		return errSessionClosed
	}
}

func (s *liveSession) writePump() {
	defer func() {
		close(s.done)
		s.conn.Close()
	}()
	for data := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// close stops the writer once no more messages can be enqueued and waits for
// it to release the connection.
func (s *liveSession) close() {
	s.closeOnce.Do(func() { close(s.send) })
	<-s.done
}
