package handler

import (
	"net/http"

	"hospital-dashboard/internal/usecase"
	"hospital-dashboard/pkg/response"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

func (h *CatalogHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.catalogUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}
	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *CatalogHandler) GetProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.catalogUsecase.ListProfessionals(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get professionals")
		return
	}
	response.Success(w, http.StatusOK, "Professionals retrieved successfully", professionals)
}

func (h *CatalogHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.catalogUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}
	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
