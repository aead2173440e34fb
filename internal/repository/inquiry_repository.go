package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// InquiryFilters defines filter options for inquiry listing
type InquiryFilters struct {
	Search string
	Status *domain.InquiryStatus
	TourID *uuid.UUID
}

var inquirySortableFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
}

type InquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *InquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *InquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	return r.db.WithContext(ctx).Save(inquiry).Error
}

func (r *InquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Inquiry{}, "id = ?", id).Error
}

func (r *InquiryRepository) ListWithSortConfig(ctx context.Context, page, pageSize int, filters *InquiryFilters, sort SortConfig) ([]domain.Inquiry, int64, error) {
	var inquiries []domain.Inquiry
	var total int64

	page, pageSize = NormalizePagination(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Inquiry{})

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(message) LIKE ?",
				searchPattern, searchPattern, searchPattern)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.TourID != nil {
			query = query.Where("tour_id = ?", *filters.TourID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, inquirySortableFields, "created_at")
	err := paginate(query, page, pageSize).Order(orderClause).Find(&inquiries).Error

	return inquiries, total, err
}
