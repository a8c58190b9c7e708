package converter

import (
	"errors"
	"time"

	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
)

// ErrInvalidDate is returned for a filter date not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")

// FilterRequestToState parses the UI filter. Empty dates are absent bounds.
func FilterRequestToState(req *dto.DashboardFilterRequest) (entity.FilterState, error) {
	var filter entity.FilterState
	if req.SpecialtyID != nil {
		id := *req.SpecialtyID
		filter.SpecialtyID = &id
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return entity.FilterState{}, err
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return entity.FilterState{}, err
	}
	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &d, nil
}

func FilterToResponse(filter entity.FilterState) dto.FilterResponse {
	var response dto.FilterResponse
	if filter.SpecialtyID != nil {
		id := *filter.SpecialtyID
		response.SpecialtyID = &id
	}
	if filter.StartDate != nil {
		s := filter.StartDate.Format(entity.DateLayout)
		response.StartDate = &s
	}
	if filter.EndDate != nil {
		s := filter.EndDate.Format(entity.DateLayout)
		response.EndDate = &s
	}
	return response
}

func ChartToResponse(chart entity.ChartSpec) dto.ChartResponse {
	points := make([]dto.ChartPointResponse, len(chart.Points))
	for i, p := range chart.Points {
		points[i] = dto.ChartPointResponse{Label: p.Label, Value: p.Value}
		if p.Share != nil {
			share := p.Share.InexactFloat64()
			points[i].Share = &share
		}
	}
	return dto.ChartResponse{
		ID:     chart.ID,
		Kind:   string(chart.Kind),
		Title:  chart.Title,
		XLabel: chart.XLabel,
		YLabel: chart.YLabel,
		Points: points,
	}
}

func ChartSetToResponses(set entity.ChartSet) []dto.ChartResponse {
	charts := set.Charts()
	responses := make([]dto.ChartResponse, len(charts))
	for i, chart := range charts {
		responses[i] = ChartToResponse(chart)
	}
	return responses
}

func DashboardToResponse(filter entity.FilterState, set entity.ChartSet) *dto.DashboardResponse {
	return &dto.DashboardResponse{
		Filter: FilterToResponse(filter),
		Charts: ChartSetToResponses(set),
	}
}

// DashboardViewToMessage converts a published view for the live session.
// The error text of a failed recompute is not forwarded.
func DashboardViewToMessage(view entity.DashboardView) dto.LiveMessage {
	filter := FilterToResponse(view.Filter)
	if view.Err != nil {
		return dto.LiveMessage{
			Type:       dto.LiveMessageError,
			Generation: view.Generation,
			Filter:     &filter,
			Error:      "No se pudieron actualizar los gráficos.",
		}
	}
	return dto.LiveMessage{
		Type:       dto.LiveMessageCharts,
		Generation: view.Generation,
		Filter:     &filter,
		Charts:     ChartSetToResponses(view.Charts),
	}
}
