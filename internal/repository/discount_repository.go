package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// DiscountFilters defines filter options for discount listing
type DiscountFilters struct {
	Search       string
	DiscountType *domain.DiscountType
	Active       *bool
}

var discountSortableFields = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"name":         "name",
	"discountType": "discount_type",
	"value":        "value",
	"validFrom":    "valid_from",
	"validTo":      "valid_to",
}

// DiscountRepository handles discount data access operations
type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) Create(ctx context.Context, discount *domain.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *DiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Discount, error) {
	var discount domain.Discount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *DiscountRepository) Update(ctx context.Context, discount *domain.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *DiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Discount{}, "id = ?", id).Error
}

// ListWithSortConfig returns a paginated list of discounts with filter and sort options
func (r *DiscountRepository) ListWithSortConfig(ctx context.Context, page, pageSize int, filters *DiscountFilters, sort SortConfig) ([]domain.Discount, int64, error) {
	var discounts []domain.Discount
	var total int64

	page, pageSize = NormalizePagination(page, pageSize)

	query := r.db.WithContext(ctx).Model(&domain.Discount{})

	if filters != nil {
		if filters.Search != "" {
			searchPattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchPattern, searchPattern)
		}
		if filters.DiscountType != nil {
			query = query.Where("discount_type = ?", *filters.DiscountType)
		}
		if filters.Active != nil {
			query = query.Where("active = ?", *filters.Active)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, discountSortableFields, "updated_at")
	err := paginate(query, page, pageSize).Order(orderClause).Find(&discounts).Error

	return discounts, total, err
}

// ListAll returns every discount in creation order. The evaluator needs the full
// candidate set to decide fallback offers.
func (r *DiscountRepository) ListAll(ctx context.Context) ([]domain.Discount, error) {
	var discounts []domain.Discount
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&discounts).Error
	return discounts, err
}

// DeactivateExpired switches off active discounts whose validTo is before the given day
func (r *DiscountRepository) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Discount{}).
		Where("active = ? AND valid_to IS NOT NULL AND valid_to < ?", true, before).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// AddUsedAgent records that agentID consumed the discount. Returns false when the
// agent was already recorded.
func (r *DiscountRepository) AddUsedAgent(ctx context.Context, id uuid.UUID, agentID string) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var discount domain.Discount
		if err := tx.Where("id = ?", id).First(&discount).Error; err != nil {
			return err
		}
		if discount.UsedAgents.Contains(agentID) {
			return nil
		}
		used := append(domain.StringList{}, discount.UsedAgents...)
		used = append(used, agentID)
		added = true
		return tx.Model(&domain.Discount{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"used_agents": used,
				"updated_at":  time.Now().UTC(),
			}).Error
	})
	return added, err
}
