package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/repository"
	"go.uber.org/zap"
)

// HotelService handles hotels and their rooms
type HotelService struct {
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
	logger    *zap.Logger
}

// NewHotelService creates a new HotelService instance
func NewHotelService(hotelRepo *repository.HotelRepository, roomRepo *repository.RoomRepository, logger *zap.Logger) *HotelService {
	return &HotelService{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
		logger:    logger,
	}
}

func (s *HotelService) Create(ctx context.Context, req *domain.HotelRequest) (*domain.HotelDTO, error) {
	hotel := &domain.Hotel{Active: true}
	applyHotelRequest(hotel, req)

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	dto := mapper.ToHotelDTO(hotel)
	return &dto, nil
}

func (s *HotelService) GetByID(ctx context.Context, id uuid.UUID) (*domain.HotelDTO, error) {
	hotel, err := s.loadHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToHotelDTO(hotel)
	return &dto, nil
}

func (s *HotelService) Update(ctx context.Context, id uuid.UUID, req *domain.HotelRequest) (*domain.HotelDTO, error) {
	hotel, err := s.loadHotel(ctx, id)
	if err != nil {
		return nil, err
	}
	applyHotelRequest(hotel, req)

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	dto := mapper.ToHotelDTO(hotel)
	return &dto, nil
}

// Delete removes the hotel together with its rooms
func (s *HotelService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadHotel(ctx, id); err != nil {
		return err
	}
	if err := s.hotelRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	s.logger.Info("hotel deleted", zap.String("hotel_id", id.String()))
	return nil
}

func (s *HotelService) List(ctx context.Context, page, pageSize int, filters *repository.HotelFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)

	hotels, total, err := s.hotelRepo.ListWithSortConfig(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	dtos := make([]domain.HotelDTO, len(hotels))
	for i := range hotels {
		dtos[i] = mapper.ToHotelDTO(&hotels[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

// ListRooms returns the rooms of a hotel ordered by name
func (s *HotelService) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]domain.RoomDTO, error) {
	if err := s.requireHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	dtos := make([]domain.RoomDTO, len(rooms))
	for i := range rooms {
		dtos[i] = mapper.ToRoomDTO(&rooms[i])
	}
	return dtos, nil
}

// CreateRoom adds a room to a hotel. Rooms are available unless the request says otherwise.
func (s *HotelService) CreateRoom(ctx context.Context, hotelID uuid.UUID, req *domain.RoomRequest) (*domain.RoomDTO, error) {
	if err := s.requireHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	room := &domain.Room{HotelID: hotelID, Available: true}
	applyRoomRequest(room, req)

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	dto := mapper.ToRoomDTO(room)
	return &dto, nil
}

func (s *HotelService) GetRoom(ctx context.Context, id uuid.UUID) (*domain.RoomDTO, error) {
	room, err := s.loadRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToRoomDTO(room)
	return &dto, nil
}

func (s *HotelService) UpdateRoom(ctx context.Context, id uuid.UUID, req *domain.RoomRequest) (*domain.RoomDTO, error) {
	room, err := s.loadRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	applyRoomRequest(room, req)

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	dto := mapper.ToRoomDTO(room)
	return &dto, nil
}

func (s *HotelService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadRoom(ctx, id); err != nil {
		return err
	}
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *HotelService) requireHotel(ctx context.Context, id uuid.UUID) error {
	exists, err := s.hotelRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check hotel: %w", err)
	}
	if !exists {
		return ErrHotelNotFound
	}
	return nil
}

func (s *HotelService) loadHotel(ctx context.Context, id uuid.UUID) (*domain.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrHotelNotFound, "get hotel")
	}
	return hotel, nil
}

func (s *HotelService) loadRoom(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrRoomNotFound, "get room")
	}
	return room, nil
}

func applyHotelRequest(hotel *domain.Hotel, req *domain.HotelRequest) {
	hotel.Name = req.Name
	hotel.Country = req.Country
	hotel.City = req.City
	hotel.Stars = req.Stars
	hotel.Description = req.Description
	hotel.Images = domain.StringList(req.Images)
	if req.Active != nil {
		hotel.Active = *req.Active
	}
}

func applyRoomRequest(room *domain.Room, req *domain.RoomRequest) {
	room.Name = req.Name
	room.Capacity = req.Capacity
	room.PricePerNight = req.PricePerNight
	room.Images = domain.StringList(req.Images)
	if req.Available != nil {
		room.Available = *req.Available
	}
}
