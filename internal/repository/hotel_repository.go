package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// HotelFilters defines filter options for hotel listing
type HotelFilters struct {
	Search  string
	Country string
	City    string
	Active  *bool
}

var hotelSortableFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"country":   "country",
	"city":      "city",
	"stars":     "stars",
}

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *HotelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error) {
	var hotel domain.Hotel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) Update(ctx context.Context, hotel *domain.Hotel) error {
	return r.db.WithContext(ctx).Omit("Rooms").Save(hotel).Error
}

// Delete removes the hotel together with its rooms
func (r *HotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Room{}, "hotel_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Hotel{}, "id = ?", id).Error
	})
}

func (r *HotelRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *HotelRepository) ListWithSortConfig(ctx context.Context, page, pageSize int, filters *HotelFilters, sort SortConfig) ([]domain.Hotel, int64, error) {
	var hotels []domain.Hotel
	var total int64

	page, pageSize = NormalizePagination(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Hotel{})

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", searchPattern, searchPattern)
		}
		if filters.Country != "" {
			query = query.Where("LOWER(country) = LOWER(?)", filters.Country)
		}
		if filters.City != "" {
			query = query.Where("LOWER(city) = LOWER(?)", filters.City)
		}
		if filters.Active != nil {
			query = query.Where("active = ?", *filters.Active)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, hotelSortableFields, "updated_at")
	err := paginate(query, page, pageSize).Order(orderClause).Find(&hotels).Error

	return hotels, total, err
}
