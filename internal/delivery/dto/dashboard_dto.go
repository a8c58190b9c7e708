package dto

// Request DTOs

// DashboardFilterRequest is the filter as sent by the UI, either as query
// parameters or as a live-session message.
type DashboardFilterRequest struct {
	SpecialtyID *int   `json:"specialty_id" validate:"omitempty,min=1"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type FilterResponse struct {
	SpecialtyID *int    `json:"specialty_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type ChartPointResponse struct {
	Label string   `json:"label"`
	Value int64    `json:"value"`
	Share *float64 `json:"share,omitempty"`
}

type ChartResponse struct {
	ID     string               `json:"id"`
	Kind   string               `json:"kind"`
	Title  string               `json:"title"`
	XLabel string               `json:"x_label,omitempty"`
	YLabel string               `json:"y_label,omitempty"`
	Points []ChartPointResponse `json:"points"`
}

type DashboardResponse struct {
	Filter FilterResponse  `json:"filter"`
	Charts []ChartResponse `json:"charts"`
}

// Live session message types.
const (
	LiveMessageCharts  = "charts"
	LiveMessageError   = "error"
	LiveMessageInvalid = "invalid"
)

type LiveMessage struct {
	Type       string            `json:"type"`
	Generation uint64            `json:"generation,omitempty"`
	Filter     *FilterResponse   `json:"filter,omitempty"`
	Charts     []ChartResponse   `json:"charts,omitempty"`
	Error      string            `json:"error,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}
