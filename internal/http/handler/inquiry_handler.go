package handler

import (
	"net/http"

	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
)

// InquiryHandler serves customer inquiries sent from the public site
type InquiryHandler struct {
	inquiryService *service.InquiryService
	logger         *zap.Logger
}

// NewInquiryHandler creates a new inquiry handler instance
func NewInquiryHandler(inquiryService *service.InquiryService, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Send an inquiry
// @Description Public endpoint used by the contact form, optionally about one tour
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body domain.CreateInquiryRequest true "Inquiry"
// @Success 201 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse "Tour not found"
// @Router /inquiries [post]
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInquiryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	inquiry, err := h.inquiryService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create inquiry")
		return
	}
	respondJSON(w, http.StatusCreated, inquiry)
}

// List godoc
// @Summary List inquiries
// @Tags Inquiries
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(open, answered, closed)
// @Param tourId query string false "Filter by tour" format(uuid)
// @Param search query string false "Search by name, email or message"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.InquiryDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries [get]
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.InquiryFilters{
		Search: r.URL.Query().Get("search"),
		TourID: parseUUIDQuery(r, "tourId"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.InquiryStatus(status)
		filters.Status = &s
	}

	result, err := h.inquiryService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list inquiries")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get inquiry by ID
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID" format(uuid)
// @Success 200 {object} domain.InquiryDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id} [get]
func (h *InquiryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "inquiry")
	if !ok {
		return
	}

	inquiry, err := h.inquiryService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// Update godoc
// @Summary Update inquiry status
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID" format(uuid)
// @Param request body domain.UpdateInquiryRequest true "Status"
// @Success 200 {object} domain.InquiryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id} [put]
func (h *InquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "inquiry")
	if !ok {
		return
	}

	var req domain.UpdateInquiryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	inquiry, err := h.inquiryService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update inquiry")
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// Delete godoc
// @Summary Delete inquiry
// @Tags Inquiries
// @Param id path string true "Inquiry ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /inquiries/{id} [delete]
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "inquiry")
	if !ok {
		return
	}

	if err := h.inquiryService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete inquiry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
