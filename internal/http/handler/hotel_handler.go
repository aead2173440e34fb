package handler

import (
	"net/http"

	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
)

// HotelHandler serves hotels and their rooms
type HotelHandler struct {
	hotelService *service.HotelService
	logger       *zap.Logger
}

// NewHotelHandler creates a new hotel handler instance
func NewHotelHandler(hotelService *service.HotelService, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelService,
		logger:       logger,
	}
}

// List godoc
// @Summary List hotels
// @Tags Hotels
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Param country query string false "Filter by country"
// @Param city query string false "Filter by city"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.HotelDTO}
// @Router /hotels [get]
func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	q := r.URL.Query()

	filters := &repository.HotelFilters{
		Search:  q.Get("search"),
		Country: q.Get("country"),
		City:    q.Get("city"),
		Active:  parseBoolQuery(r, "active"),
	}

	result, err := h.hotelService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list hotels")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get hotel by ID
// @Tags Hotels
// @Produce json
// @Param id path string true "Hotel ID" format(uuid)
// @Success 200 {object} domain.HotelDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /hotels/{id} [get]
func (h *HotelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "hotel")
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get hotel")
		return
	}
	respondJSON(w, http.StatusOK, hotel)
}

// Create godoc
// @Summary Create hotel
// @Tags Hotels
// @Accept json
// @Produce json
// @Param request body domain.HotelRequest true "Hotel data"
// @Success 201 {object} domain.HotelDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /hotels [post]
func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.HotelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hotel, err := h.hotelService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create hotel")
		return
	}

	w.Header().Set("Location", "/api/v1/hotels/"+hotel.ID.String())
	respondJSON(w, http.StatusCreated, hotel)
}

// Update godoc
// @Summary Update hotel
// @Tags Hotels
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID" format(uuid)
// @Param request body domain.HotelRequest true "Hotel data"
// @Success 200 {object} domain.HotelDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /hotels/{id} [put]
func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "hotel")
	if !ok {
		return
	}

	var req domain.HotelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hotel, err := h.hotelService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update hotel")
		return
	}
	respondJSON(w, http.StatusOK, hotel)
}

// Delete godoc
// @Summary Delete hotel and its rooms
// @Tags Hotels
// @Param id path string true "Hotel ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /hotels/{id} [delete]
func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "hotel")
	if !ok {
		return
	}

	if err := h.hotelService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete hotel")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRooms godoc
// @Summary List rooms of a hotel
// @Tags Rooms
// @Produce json
// @Param id path string true "Hotel ID" format(uuid)
// @Success 200 {array} domain.RoomDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /hotels/{id}/rooms [get]
func (h *HotelHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "hotel")
	if !ok {
		return
	}

	rooms, err := h.hotelService.ListRooms(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list rooms")
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary Add a room to a hotel
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID" format(uuid)
// @Param request body domain.RoomRequest true "Room data"
// @Success 201 {object} domain.RoomDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /hotels/{id}/rooms [post]
func (h *HotelHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "hotel")
	if !ok {
		return
	}

	var req domain.RoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.hotelService.CreateRoom(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create room")
		return
	}

	w.Header().Set("Location", "/api/v1/rooms/"+room.ID.String())
	respondJSON(w, http.StatusCreated, room)
}

// GetRoom godoc
// @Summary Get room by ID
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID" format(uuid)
// @Success 200 {object} domain.RoomDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /rooms/{id} [get]
func (h *HotelHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "room")
	if !ok {
		return
	}

	room, err := h.hotelService.GetRoom(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get room")
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// UpdateRoom godoc
// @Summary Update room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID" format(uuid)
// @Param request body domain.RoomRequest true "Room data"
// @Success 200 {object} domain.RoomDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /rooms/{id} [put]
func (h *HotelHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "room")
	if !ok {
		return
	}

	var req domain.RoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := h.hotelService.UpdateRoom(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update room")
		return
	}
	respondJSON(w, http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete room
// @Tags Rooms
// @Param id path string true "Room ID" format(uuid)
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /rooms/{id} [delete]
func (h *HotelHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "room")
	if !ok {
		return
	}

	if err := h.hotelService.DeleteRoom(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete room")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
