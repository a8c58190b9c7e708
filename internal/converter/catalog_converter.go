package converter

import (
	"hospital-dashboard/internal/delivery/dto"
	"hospital-dashboard/internal/domain/entity"
)

// SpecialtiesToResponse converts the specialty list. The first specialty is
// the selector's default; there is none when the list is empty.
func SpecialtiesToResponse(specialties []entity.Specialty) *dto.SpecialtyListResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i, s := range specialties {
		responses[i] = dto.SpecialtyResponse{ID: s.ID, Name: s.Name}
	}

	response := &dto.SpecialtyListResponse{
		Specialties: responses,
		Total:       len(responses),
	}
	if len(specialties) > 0 {
		id := specialties[0].ID
		response.DefaultSpecialtyID = &id
	}
	return response
}

// CatalogItemsToResponse converts a professional or patient list.
func CatalogItemsToResponse(items []entity.CatalogItem) *dto.CatalogListResponse {
	responses := make([]dto.CatalogItemResponse, len(items))
	for i, item := range items {
		responses[i] = dto.CatalogItemResponse{ID: item.ID, DisplayName: item.DisplayName}
	}
	return &dto.CatalogListResponse{
		Items: responses,
		Total: len(responses),
	}
}
