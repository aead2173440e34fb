package handler

import (
	"net/http"

	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
)

// DiscountHandler serves offers and their applicability
type DiscountHandler struct {
	discountService *service.DiscountService
	logger          *zap.Logger
}

// NewDiscountHandler creates a new discount handler instance
func NewDiscountHandler(discountService *service.DiscountService, logger *zap.Logger) *DiscountHandler {
	return &DiscountHandler{
		discountService: discountService,
		logger:          logger,
	}
}

// List godoc
// @Summary List discounts
// @Description Admin listing of every offer regardless of applicability
// @Tags Discounts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Param discountType query string false "Filter by type" Enums(percentage, seasonal, exclusive, transportation, libert)
// @Param active query bool false "Filter by active flag"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, name, discountType, value, validFrom, validTo)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.DiscountDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /discounts [get]
func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.DiscountFilters{
		Search: r.URL.Query().Get("search"),
		Active: parseBoolQuery(r, "active"),
	}
	if t := r.URL.Query().Get("discountType"); t != "" {
		dt := domain.DiscountType(t)
		filters.DiscountType = &dt
	}

	result, err := h.discountService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list discounts")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ListApplicable godoc
// @Summary List offers applicable to the caller
// @Description Runs every offer through the applicability rules for the calling agent.
// @Description Anonymous callers never see exclusive offers. The fallback offer is shown only when nothing else is.
// @Tags Discounts
// @Produce json
// @Param hotelId query string false "Hotel the caller is looking at"
// @Success 200 {array} domain.DiscountDTO
// @Failure 500 {object} domain.ErrorResponse
// @Router /discounts/applicable [get]
func (h *DiscountHandler) ListApplicable(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.discountService.ListApplicable(r.Context(), r.URL.Query().Get("hotelId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list applicable discounts")
		return
	}
	respondJSON(w, http.StatusOK, discounts)
}

// GetByID godoc
// @Summary Get discount by ID
// @Tags Discounts
// @Produce json
// @Param id path string true "Discount ID" format(uuid)
// @Success 200 {object} domain.DiscountDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /discounts/{id} [get]
func (h *DiscountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "discount")
	if !ok {
		return
	}

	discount, err := h.discountService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get discount")
		return
	}
	respondJSON(w, http.StatusOK, discount)
}

// Explain godoc
// @Summary Explain applicability
// @Description Reports whether an offer applies and the first rule that rejected it.
// @Description Agents are evaluated as themselves; admins may name another agent.
// @Tags Discounts
// @Produce json
// @Param id path string true "Discount ID" format(uuid)
// @Param agentId query string false "Agent to evaluate (admins only)"
// @Param hotelId query string false "Selected hotel"
// @Success 200 {object} domain.DiscountExplanationDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /discounts/{id}/explain [get]
func (h *DiscountHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "discount")
	if !ok {
		return
	}

	agentID := auth.AgentIDFromContext(r.Context())
	if agent, ok := auth.FromContext(r.Context()); ok && agent.IsAdmin() {
		if requested := r.URL.Query().Get("agentId"); requested != "" {
			agentID = requested
		}
	}

	explanation, err := h.discountService.Explain(r.Context(), id, agentID, r.URL.Query().Get("hotelId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to explain discount")
		return
	}
	respondJSON(w, http.StatusOK, explanation)
}

// Create godoc
// @Summary Create discount
// @Tags Discounts
// @Accept json
// @Produce json
// @Param request body domain.DiscountRequest true "Discount data"
// @Success 201 {object} domain.DiscountDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /discounts [post]
func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.DiscountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	discount, err := h.discountService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create discount")
		return
	}

	w.Header().Set("Location", "/api/v1/discounts/"+discount.ID.String())
	respondJSON(w, http.StatusCreated, discount)
}

// Update godoc
// @Summary Update discount
// @Description Replaces the offer definition. Agents that already used an exclusive offer stay recorded.
// @Tags Discounts
// @Accept json
// @Produce json
// @Param id path string true "Discount ID" format(uuid)
// @Param request body domain.DiscountRequest true "Discount data"
// @Success 200 {object} domain.DiscountDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /discounts/{id} [put]
func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "discount")
	if !ok {
		return
	}

	var req domain.DiscountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	discount, err := h.discountService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update discount")
		return
	}
	respondJSON(w, http.StatusOK, discount)
}

// Delete godoc
// @Summary Delete discount
// @Tags Discounts
// @Param id path string true "Discount ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /discounts/{id} [delete]
func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "discount")
	if !ok {
		return
	}

	if err := h.discountService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete discount")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
