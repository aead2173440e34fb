package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
)

// TourHandler serves tours and the tour composer endpoints
type TourHandler struct {
	tourService *service.TourService
	logger      *zap.Logger
}

// NewTourHandler creates a new tour handler instance
func NewTourHandler(tourService *service.TourService, logger *zap.Logger) *TourHandler {
	return &TourHandler{
		tourService: tourService,
		logger:      logger,
	}
}

// List godoc
// @Summary List tours
// @Description Get paginated list of tours with optional filters
// @Tags Tours
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by title or summary"
// @Param country query string false "Filter by country"
// @Param market query string false "Filter by market"
// @Param validOn query string false "Only tours bookable on this day (YYYY-MM-DD)"
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, title, price, country)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.TourDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /tours [get]
func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	q := r.URL.Query()

	filters := &repository.TourFilters{
		Search:  q.Get("search"),
		Country: q.Get("country"),
		Market:  q.Get("market"),
	}
	if validOn := q.Get("validOn"); validOn != "" {
		day, err := domain.ParseDate(validOn)
		if err != nil {
			respondError(w, http.StatusBadRequest, "validOn must be YYYY-MM-DD")
			return
		}
		filters.ValidOn = &day
	}

	result, err := h.tourService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list tours")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get tour by ID
// @Tags Tours
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Success 200 {object} domain.TourDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /tours/{id} [get]
func (h *TourHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	tour, err := h.tourService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get tour")
		return
	}
	respondJSON(w, http.StatusOK, tour)
}

// Create godoc
// @Summary Create tour
// @Description Create a tour. Middle itinerary days are filled up to the largest nights key.
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body domain.TourRequest true "Tour data"
// @Success 201 {object} domain.TourDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours [post]
func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TourRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tour, err := h.tourService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create tour")
		return
	}

	w.Header().Set("Location", "/api/v1/tours/"+tour.ID.String())
	respondJSON(w, http.StatusCreated, tour)
}

// Update godoc
// @Summary Replace tour
// @Description Replaces every field of the tour. The last write wins.
// @Tags Tours
// @Accept json
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param request body domain.TourRequest true "Tour data"
// @Success 200 {object} domain.TourDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id} [put]
func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	var req domain.TourRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tour, err := h.tourService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update tour")
		return
	}
	respondJSON(w, http.StatusOK, tour)
}

// Delete godoc
// @Summary Delete tour
// @Tags Tours
// @Param id path string true "Tour ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id} [delete]
func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	if err := h.tourService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete tour")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmNights godoc
// @Summary Confirm nights count
// @Description Grows the itinerary to the given number of nights and selects that pricing key. Days are never removed here.
// @Tags Tour Composer
// @Accept json
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param request body domain.ConfirmNightsRequest true "Nights"
// @Success 200 {object} domain.TourDraftDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/nights/confirm [post]
func (h *TourHandler) ConfirmNights(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	var req domain.ConfirmNightsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := h.tourService.ConfirmNights(r.Context(), id, req.Nights)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to confirm nights")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// RemoveNightOption godoc
// @Summary Remove nights pricing key
// @Description Removing the largest key trims itinerary days past the new largest key. The last key cannot be removed.
// @Tags Tour Composer
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param key path string true "Nights key"
// @Success 200 {object} domain.TourDraftDTO
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Last nights key"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/nights/{key} [delete]
func (h *TourHandler) RemoveNightOption(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	draft, err := h.tourService.RemoveNightOption(r.Context(), id, chi.URLParam(r, "key"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to remove nights key")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// AddNightsOption godoc
// @Summary Add nights option
// @Tags Tour Composer
// @Accept json
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param key path string true "Nights key"
// @Param request body domain.NightsOption true "Option"
// @Success 200 {object} domain.TourDraftDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/nights/{key}/options [post]
func (h *TourHandler) AddNightsOption(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	var opt domain.NightsOption
	if err := json.NewDecoder(r.Body).Decode(&opt); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft, err := h.tourService.AddNightsOption(r.Context(), id, chi.URLParam(r, "key"), opt)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to add nights option")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// ReplaceNightsOption godoc
// @Summary Replace nights option
// @Description Replaces the first option equal to old
// @Tags Tour Composer
// @Accept json
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param key path string true "Nights key"
// @Param request body domain.ReplaceNightsOptionRequest true "Old and new option"
// @Success 200 {object} domain.TourDraftDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/nights/{key}/options [put]
func (h *TourHandler) ReplaceNightsOption(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	var req domain.ReplaceNightsOptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := h.tourService.ReplaceNightsOption(r.Context(), id, chi.URLParam(r, "key"), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to replace nights option")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// RemoveNightsOptionAt godoc
// @Summary Remove nights option by position
// @Tags Tour Composer
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param key path string true "Nights key"
// @Param index path int true "Option position"
// @Success 200 {object} domain.TourDraftDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/nights/{key}/options/{index} [delete]
func (h *TourHandler) RemoveNightsOptionAt(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}
	index, ok := parseIndex(w, r, "index")
	if !ok {
		return
	}

	draft, err := h.tourService.RemoveNightsOptionAt(r.Context(), id, chi.URLParam(r, "key"), index)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to remove nights option")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// SetFoodCategory godoc
// @Summary Edit a meal plan
// @Description Updates the fields present in the body for one of the categories 0, 1 or 2
// @Tags Tour Composer
// @Accept json
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param category path string true "Category" Enums(0, 1, 2)
// @Param request body domain.UpdateFoodCategoryRequest true "Fields to change"
// @Success 200 {object} domain.TourDraftDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tours/{id}/food-categories/{category} [patch]
func (h *TourHandler) SetFoodCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	var req domain.UpdateFoodCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := h.tourService.SetFoodCategory(r.Context(), id, chi.URLParam(r, "category"), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update meal plan")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// Quote godoc
// @Summary Price a tour selection
// @Tags Tours
// @Accept json
// @Produce json
// @Param id path string true "Tour ID" format(uuid)
// @Param request body domain.QuoteRequest true "Selection"
// @Success 200 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Router /tours/{id}/quote [post]
func (h *TourHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "tour")
	if !ok {
		return
	}

	var req domain.QuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if _, err := strconv.Atoi(req.NightsKey); err != nil {
		respondError(w, http.StatusBadRequest, "nightsKey must be a number of nights")
		return
	}

	quote, err := h.tourService.Quote(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to price tour")
		return
	}
	respondJSON(w, http.StatusOK, quote)
}
