package dto

type SpecialtyResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SpecialtyListResponse struct {
	Specialties        []SpecialtyResponse `json:"specialties"`
	DefaultSpecialtyID *int                `json:"default_specialty_id"`
	Total              int                 `json:"total"`
}

type CatalogItemResponse struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
}

type CatalogListResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Total int                   `json:"total"`
}
