package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// BookingFilters defines filter options for booking listing
type BookingFilters struct {
	AgentID string
	Status  *domain.BookingStatus
	TourID  *uuid.UUID
	HotelID *uuid.UUID
	Search  string
}

var bookingSortableFields = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"checkIn":      "check_in",
	"checkOut":     "check_out",
	"totalPrice":   "total_price",
	"status":       "status",
	"customerName": "customer_name",
}

// BookingRepository handles booking data access operations
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// ListWithSortConfig returns a paginated list of bookings with filter and sort options
func (r *BookingRepository) ListWithSortConfig(ctx context.Context, page, pageSize int, filters *BookingFilters, sort SortConfig) ([]domain.Booking, int64, error) {
	var bookings []domain.Booking
	var total int64

	page, pageSize = NormalizePagination(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Booking{})

	if filters != nil {
		if filters.AgentID != "" {
			query = query.Where("agent_id = ?", filters.AgentID)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.TourID != nil {
			query = query.Where("tour_id = ?", *filters.TourID)
		}
		if filters.HotelID != nil {
			query = query.Where("hotel_id = ?", *filters.HotelID)
		}
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?", searchPattern, searchPattern)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, bookingSortableFields, "created_at")
	err := paginate(query, page, pageSize).Order(orderClause).Find(&bookings).Error

	return bookings, total, err
}

// CountByAgent counts an agent's bookings that were not cancelled
func (r *BookingRepository) CountByAgent(ctx context.Context, agentID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("agent_id = ? AND status <> ?", agentID, domain.BookingStatusCancelled).
		Count(&count).Error
	return int(count), err
}
