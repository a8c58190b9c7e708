package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"hospital-dashboard/internal/converter"
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/usecase"
	"hospital-dashboard/pkg/response"
	"hospital-dashboard/pkg/validator"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	validator        *validator.CustomValidator
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, validator *validator.CustomValidator) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		validator:        validator,
	}
}

// GetDashboard runs one stateless recompute for the filter in the query string.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	req, err := filterFromQuery(r.URL.Query())
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	filter, err := converter.FilterRequestToState(&req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	set, err := h.dashboardUsecase.Recompute(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to compute dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard computed successfully", converter.DashboardToResponse(filter.Snapshot(), set))
}

func filterFromQuery(q url.Values) (dto.DashboardFilterRequest, error) {
	req := dto.DashboardFilterRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	if raw := q.Get("specialty_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return dto.DashboardFilterRequest{}, err
		}
		req.SpecialtyID = &id
	}
	return req, nil
}
