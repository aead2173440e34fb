package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/tourplan"
	"go.uber.org/zap"
)

// BookingService creates and tracks agent bookings
type BookingService struct {
	bookingRepo     *repository.BookingRepository
	tourRepo        *repository.TourRepository
	hotelRepo       *repository.HotelRepository
	roomRepo        *repository.RoomRepository
	discountService *DiscountService
	stats           BookingCounter
	logger          *zap.Logger
}

// NewBookingService creates a new BookingService instance
func NewBookingService(
	bookingRepo *repository.BookingRepository,
	tourRepo *repository.TourRepository,
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	discountService *DiscountService,
	stats BookingCounter,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:     bookingRepo,
		tourRepo:        tourRepo,
		hotelRepo:       hotelRepo,
		roomRepo:        roomRepo,
		discountService: discountService,
		stats:           stats,
		logger:          logger,
	}
}

// Create books a tour or a hotel stay for the calling agent. Tour bookings are
// priced with the tour quote; room bookings with the nightly rate. A named discount
// must be applicable to the agent, and exclusive ones are consumed.
func (s *BookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.BookingDTO, error) {
	agent, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	checkIn, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		return nil, invalidInput(err)
	}
	checkOut, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		return nil, invalidInput(err)
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	stayNights := int(checkOut.Sub(checkIn).Hours() / 24)

	if req.TourID == nil && req.HotelID == nil {
		return nil, ErrBookingTargetRequired
	}

	booking := &domain.Booking{
		AgentID:       agent.AgentID,
		AgentName:     agent.DisplayName,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: req.CustomerEmail,
		HotelID:       req.HotelID,
		RoomID:        req.RoomID,
		TourID:        req.TourID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		Status:        domain.BookingStatusPending,
		Notes:         req.Notes,
	}

	if req.TourID != nil {
		if err := s.priceTour(ctx, booking, req, stayNights); err != nil {
			return nil, err
		}
	}
	if req.HotelID != nil {
		if err := s.priceStay(ctx, booking, req, stayNights); err != nil {
			return nil, err
		}
	}

	var discount *domain.Discount
	if req.DiscountID != nil {
		hotelID := ""
		if req.HotelID != nil {
			hotelID = req.HotelID.String()
		}
		discount, err = s.discountService.CheckApplicable(ctx, *req.DiscountID, agent.AgentID, hotelID)
		if err != nil {
			return nil, err
		}
		booking.DiscountID = &discount.ID
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if discount != nil && discount.DiscountType == domain.DiscountTypeExclusive {
		if err := s.discountService.MarkUsed(ctx, discount.ID, agent.AgentID); err != nil {
			s.logger.Error("booking created but exclusive discount not marked used",
				zap.String("booking_id", booking.ID.String()),
				zap.String("discount_id", discount.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("agent_id", booking.AgentID),
		zap.Float64("total_price", booking.TotalPrice),
	)

	dto := mapper.ToBookingDTO(booking)
	return &dto, nil
}

// GetByID returns a booking. Agents only see their own.
func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingDTO, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToBookingDTO(booking)
	return &dto, nil
}

// List returns bookings; non-admin callers are limited to their own
func (s *BookingService) List(ctx context.Context, page, pageSize int, filters *repository.BookingFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	agent, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if filters == nil {
		filters = &repository.BookingFilters{}
	}
	if !agent.IsAdmin() {
		filters.AgentID = agent.AgentID
	}

	page, pageSize = repository.NormalizePagination(page, pageSize)
	bookings, total, err := s.bookingRepo.ListWithSortConfig(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]domain.BookingDTO, len(bookings))
	for i := range bookings {
		dtos[i] = mapper.ToBookingDTO(&bookings[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

// UpdateStatus moves a booking between pending and confirmed, or cancels it.
// Cancelled bookings are final.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.BookingDTO, error) {
	if !status.IsValid() {
		return nil, invalidInput(fmt.Errorf("unknown booking status %q", status))
	}

	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == status {
		dto := mapper.ToBookingDTO(booking)
		return &dto, nil
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: %w", ErrConflict, ErrBookingCancelled)
	}

	previous := booking.Status
	booking.Status = status
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	dto := mapper.ToBookingDTO(booking)
	return &dto, nil
}

// Cancel cancels a booking
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) (*domain.BookingDTO, error) {
	return s.UpdateStatus(ctx, id, domain.BookingStatusCancelled)
}

// CountForAgent returns the agent's booking count as used by offer rules
func (s *BookingService) CountForAgent(ctx context.Context, agentID string) (int, error) {
	return s.stats.BookingCount(ctx, agentID)
}

func (s *BookingService) load(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrBookingNotFound, "get booking")
	}
	if agent, ok := auth.FromContext(ctx); ok && !agent.IsAdmin() && booking.AgentID != agent.AgentID {
		// other agents' bookings are reported as missing
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// priceTour fills the totals from the tour quote. Without an explicit nights key the
// stay length picks the pricing group.
func (s *BookingService) priceTour(ctx context.Context, booking *domain.Booking, req *domain.CreateBookingRequest, stayNights int) error {
	tour, err := s.tourRepo.GetByID(ctx, *req.TourID)
	if err != nil {
		return lookupError(err, ErrTourNotFound, "get tour")
	}

	key := req.NightsKey
	if key == "" {
		key = strconv.Itoa(stayNights)
	}

	q, err := tourplan.ComputeTotal(tour, tourplan.Selection{
		NightsKey:    key,
		OptionIndex:  req.OptionIndex,
		FoodCategory: req.FoodCategory,
	})
	if err != nil {
		if errors.Is(err, tourplan.ErrUnknownNightsKey) {
			return invalidInput(fmt.Errorf("tour has no pricing for %s nights", key))
		}
		return invalidInput(err)
	}

	booking.NightsKey = key
	booking.OptionIndex = req.OptionIndex
	booking.FoodCategory = req.FoodCategory
	booking.TotalPrice = q.Total.InexactFloat64()
	booking.OldTotalPrice = q.OldTotal.InexactFloat64()
	return nil
}

// priceStay checks the hotel and room and adds nightly room charges
func (s *BookingService) priceStay(ctx context.Context, booking *domain.Booking, req *domain.CreateBookingRequest, stayNights int) error {
	hotel, err := s.hotelRepo.GetByID(ctx, *req.HotelID)
	if err != nil {
		return lookupError(err, ErrHotelNotFound, "get hotel")
	}
	if !hotel.Active {
		return invalidInput(errors.New("hotel is not bookable"))
	}
	if req.RoomID == nil {
		return nil
	}

	room, err := s.roomRepo.GetByID(ctx, *req.RoomID)
	if err != nil {
		return lookupError(err, ErrRoomNotFound, "get room")
	}
	if room.HotelID != hotel.ID {
		return invalidInput(ErrRoomNotInHotel)
	}
	if !room.Available {
		return invalidInput(errors.New("room is not available"))
	}
	if req.Guests > room.Capacity {
		return invalidInput(fmt.Errorf("room sleeps %d guests", room.Capacity))
	}

	charge := decimal.NewFromFloat(room.PricePerNight).Mul(decimal.NewFromInt(int64(stayNights)))
	booking.TotalPrice = decimal.NewFromFloat(booking.TotalPrice).Add(charge).Round(2).InexactFloat64()
	booking.OldTotalPrice = decimal.NewFromFloat(booking.OldTotalPrice).Add(charge).Round(2).InexactFloat64()
	return nil
}
