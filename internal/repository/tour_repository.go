package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// TourFilters defines filter options for tour listing
type TourFilters struct {
	Search  string
	Country string
	Market  string
	// ValidOn keeps tours whose validity window and expiry date include this day
	ValidOn *time.Time
}

// tourSortableFields maps API field names to database column names for tours
var tourSortableFields = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"price":      "price",
	"country":    "country",
	"expiryDate": "expiry_date",
}

// TourRepository handles tour data access operations
type TourRepository struct {
	db *gorm.DB
}

// NewTourRepository creates a new tour repository instance
func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Create(ctx context.Context, tour *domain.Tour) error {
	return r.db.WithContext(ctx).Create(tour).Error
}

func (r *TourRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	var tour domain.Tour
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tour).Error
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

// Update writes every column of the tour; concurrent edits are last-write-wins
func (r *TourRepository) Update(ctx context.Context, tour *domain.Tour) error {
	return r.db.WithContext(ctx).Save(tour).Error
}

func (r *TourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Tour{}, "id = ?", id).Error
}

// Exists reports whether a tour with id exists
func (r *TourRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Tour{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListWithSortConfig returns a paginated list of tours with filter and sort options
func (r *TourRepository) ListWithSortConfig(ctx context.Context, page, pageSize int, filters *TourFilters, sort SortConfig) ([]domain.Tour, int64, error) {
	var tours []domain.Tour
	var total int64

	page, pageSize = NormalizePagination(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Tour{})

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(tour_summary) LIKE ?", searchPattern, searchPattern)
		}
		if filters.Country != "" {
			query = query.Where("LOWER(country) = LOWER(?)", filters.Country)
		}
		if filters.Market != "" {
			query = whereArrayContains(query, "markets", filters.Market)
		}
		if filters.ValidOn != nil {
			day := *filters.ValidOn
			query = query.
				Where("valid_from IS NULL OR valid_from <= ?", day).
				Where("valid_to IS NULL OR valid_to >= ?", day).
				Where("expiry_date IS NULL OR expiry_date >= ?", day)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, tourSortableFields, "updated_at")
	err := paginate(query, page, pageSize).Order(orderClause).Find(&tours).Error

	return tours, total, err
}

// ListExpired returns tours whose expiry date is before the given time
func (r *TourRepository) ListExpired(ctx context.Context, before time.Time) ([]domain.Tour, error) {
	var tours []domain.Tour
	err := r.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date < ?", before).
		Order("expiry_date ASC").
		Find(&tours).Error
	return tours, err
}
