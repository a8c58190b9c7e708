package http

import (
	"context"
	"net/http"
	"time"

	"hospital-dashboard/internal/delivery/http/handler"
	"hospital-dashboard/internal/delivery/http/middleware"
	"hospital-dashboard/pkg/response"

	"github.com/gorilla/mux"
)

// Pinger reports store liveness for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Router struct {
	router             *mux.Router
	dashboardHandler   *handler.DashboardHandler
	liveHandler        *handler.LiveHandler
	appointmentHandler *handler.AppointmentHandler
	catalogHandler     *handler.CatalogHandler
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
	metricsHandler     http.Handler
	db                 Pinger
}

func NewRouter(
	dashboardHandler *handler.DashboardHandler,
	liveHandler *handler.LiveHandler,
	appointmentHandler *handler.AppointmentHandler,
	catalogHandler *handler.CatalogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsHandler http.Handler,
	db Pinger,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		dashboardHandler:   dashboardHandler,
		liveHandler:        liveHandler,
		appointmentHandler: appointmentHandler,
		catalogHandler:     catalogHandler,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
		metricsHandler:     metricsHandler,
		db:                 db,
	}
}

func (r *Router) Setup() *mux.Router {
	// Metrics
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Every route also answers OPTIONS so browser preflights reach the CORS middleware.

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet, http.MethodOptions)

	// Dashboard
	api.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/dashboard/live", r.liveHandler.ServeLive).Methods(http.MethodGet, http.MethodOptions)

	// Appointments
	api.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost, http.MethodOptions)

	// Selector catalogs. Kept on the api router itself; a nested subrouter
	// turns method mismatches into 404s.
	api.HandleFunc("/catalog/specialties", r.catalogHandler.GetSpecialties).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/catalog/professionals", r.catalogHandler.GetProfessionals).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/catalog/patients", r.catalogHandler.GetPatients).Methods(http.MethodGet, http.MethodOptions)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "Database unreachable", map[string]string{"status": "degraded"})
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
