package handler

import (
	"net/http"

	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
)

// BookingHandler serves agent bookings
type BookingHandler struct {
	bookingService *service.BookingService
	logger         *zap.Logger
}

// NewBookingHandler creates a new booking handler instance
func NewBookingHandler(bookingService *service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// List godoc
// @Summary List bookings
// @Description Agents see their own bookings; admins see all and may filter by agent.
// @Tags Bookings
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param agentId query string false "Filter by agent (admins only)"
// @Param status query string false "Filter by status" Enums(pending, confirmed, cancelled)
// @Param tourId query string false "Filter by tour" format(uuid)
// @Param hotelId query string false "Filter by hotel" format(uuid)
// @Param search query string false "Search by customer"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.BookingDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bookings [get]
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	q := r.URL.Query()

	filters := &repository.BookingFilters{
		AgentID: q.Get("agentId"),
		TourID:  parseUUIDQuery(r, "tourId"),
		HotelID: parseUUIDQuery(r, "hotelId"),
		Search:  q.Get("search"),
	}
	if status := q.Get("status"); status != "" {
		s := domain.BookingStatus(status)
		filters.Status = &s
	}

	result, err := h.bookingService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list bookings")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get booking by ID
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID" format(uuid)
// @Success 200 {object} domain.BookingDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "booking")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get booking")
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

// Create godoc
// @Summary Create booking
// @Description Books a tour or a hotel stay for a customer. Tour bookings are priced from the
// @Description selected nights option and meal plan. A discount must be applicable to the agent;
// @Description exclusive offers are consumed.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body domain.CreateBookingRequest true "Booking data"
// @Success 201 {object} domain.BookingDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse "Discount not applicable"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.bookingService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create booking")
		return
	}

	w.Header().Set("Location", "/api/v1/bookings/"+booking.ID.String())
	respondJSON(w, http.StatusCreated, booking)
}

// UpdateStatus godoc
// @Summary Update booking status
// @Description Cancelled bookings cannot change status again
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID" format(uuid)
// @Param request body domain.UpdateBookingStatusRequest true "Status"
// @Success 200 {object} domain.BookingDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "booking")
	if !ok {
		return
	}

	var req domain.UpdateBookingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update booking status")
		return
	}
	respondJSON(w, http.StatusOK, booking)
}
