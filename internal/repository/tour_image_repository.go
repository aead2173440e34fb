package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// TourImageRepository stores image slots of tours
type TourImageRepository struct {
	db *gorm.DB
}

func NewTourImageRepository(db *gorm.DB) *TourImageRepository {
	return &TourImageRepository{db: db}
}

func (r *TourImageRepository) Create(ctx context.Context, img *domain.TourImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *TourImageRepository) Update(ctx context.Context, img *domain.TourImage) error {
	return r.db.WithContext(ctx).Save(img).Error
}

func (r *TourImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TourImage, error) {
	var img domain.TourImage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *TourImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.TourImage{}, "id = ?", id).Error
}

// ListByTour returns a tour's slots in display order. An empty group returns all groups.
func (r *TourImageRepository) ListByTour(ctx context.Context, tourID uuid.UUID, group domain.ImageGroup) ([]domain.TourImage, error) {
	var images []domain.TourImage
	query := r.db.WithContext(ctx).Where("tour_id = ?", tourID)
	if group != "" {
		query = query.Where("image_group = ?", group)
	}
	err := query.Order("image_group ASC, position ASC, created_at ASC").Find(&images).Error
	return images, err
}

// NextPosition returns the position after the last slot of a group
func (r *TourImageRepository) NextPosition(ctx context.Context, tourID uuid.UUID, group domain.ImageGroup) (int, error) {
	var maxPos *int
	err := r.db.WithContext(ctx).
		Model(&domain.TourImage{}).
		Where("tour_id = ? AND image_group = ?", tourID, group).
		Select("MAX(position)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, err
	}
	if maxPos == nil {
		return 0, nil
	}
	return *maxPos + 1, nil
}

// DeleteByTour removes every slot of a tour
func (r *TourImageRepository) DeleteByTour(ctx context.Context, tourID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.TourImage{}, "tour_id = ?", tourID).Error
}

// ListStalePending returns slots still pending that were created before the cutoff
func (r *TourImageRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.TourImage, error) {
	var images []domain.TourImage
	err := r.db.WithContext(ctx).
		Where("state = ? AND created_at < ?", domain.ImageStatePending, cutoff).
		Order("created_at ASC").
		Find(&images).Error
	return images, err
}
