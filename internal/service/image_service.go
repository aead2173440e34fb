package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	applog "github.com/voyagedesk/travel-api/internal/logger"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/storage"
	"github.com/voyagedesk/travel-api/internal/tourplan"
	"go.uber.org/zap"
)

const defaultThumbnailWidth = 300

var errStaleUpload = errors.New("upload did not finish in time")

var thumbnailContentType = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// ImageUpload is one file of a multipart upload
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        io.Reader
}

// ImageService stores tour images and keeps the tour's image lists in step with
// the committed slots
type ImageService struct {
	tourRepo       *repository.TourRepository
	imageRepo      *repository.TourImageRepository
	storage        storage.Storage
	thumbnailWidth int
	logger         *zap.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(
	tourRepo *repository.TourRepository,
	imageRepo *repository.TourImageRepository,
	store storage.Storage,
	thumbnailWidth int,
	logger *zap.Logger,
) *ImageService {
	if thumbnailWidth <= 0 {
		thumbnailWidth = defaultThumbnailWidth
	}
	return &ImageService{
		tourRepo:       tourRepo,
		imageRepo:      imageRepo,
		storage:        store,
		thumbnailWidth: thumbnailWidth,
		logger:         logger,
	}
}

// Upload stores each file in its own slot. A file that cannot be decoded or stored
// fails its slot only; the others carry on. When no file succeeds the result is
// returned together with ErrAllImagesFailed.
func (s *ImageService) Upload(ctx context.Context, tourID uuid.UUID, group domain.ImageGroup, dayKey string, files []ImageUpload) (*domain.ImageUploadResultDTO, error) {
	if len(files) == 0 {
		return nil, invalidInput(ErrNoImages)
	}
	if err := tourplan.ValidateImageTarget(group, dayKey); err != nil {
		return nil, invalidInput(err)
	}

	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return nil, lookupError(err, ErrTourNotFound, "get tour")
	}
	if n, ok := domain.ParseDayKey(dayKey); ok && group == domain.ImageGroupItinerary {
		if _, exists := tour.Itinerary.Data().MiddleDays[dayKey]; !exists {
			return nil, invalidInput(fmt.Errorf("tour has no itinerary day %d", n))
		}
	}

	position, err := s.imageRepo.NextPosition(ctx, tourID, group)
	if err != nil {
		return nil, fmt.Errorf("failed to read image positions: %w", err)
	}

	log := applog.WithTour(s.logger, tourID.String()).With(zap.String("group", string(group)))
	result := &domain.ImageUploadResultDTO{Images: make([]domain.TourImageDTO, 0, len(files))}
	var committed []domain.TourImage

	for _, file := range files {
		slot, err := tourplan.NewImageSlot(tourID, group, dayKey, file.FileName)
		if err != nil {
			return nil, invalidInput(err)
		}
		slot.Position = position
		position++

		if err := s.imageRepo.Create(ctx, &slot); err != nil {
			return nil, fmt.Errorf("failed to create image slot: %w", err)
		}

		if err := s.store(ctx, &slot, file); err != nil {
			log.Warn("image upload failed",
				zap.String("image_id", slot.ID.String()),
				zap.String("file_name", file.FileName),
				zap.Error(err),
			)
			_ = tourplan.FailImage(&slot, err)
			result.Failed++
		} else {
			result.Committed++
			committed = append(committed, slot)
		}

		if err := s.imageRepo.Update(ctx, &slot); err != nil {
			return nil, fmt.Errorf("failed to save image slot: %w", err)
		}
		result.Images = append(result.Images, mapper.ToTourImageDTO(&slot))
	}

	if len(committed) > 0 {
		tourplan.AddTourImages(tour, committed)
		if err := s.tourRepo.Update(ctx, tour); err != nil {
			return nil, fmt.Errorf("failed to update tour images: %w", err)
		}
	}

	log.Info("images uploaded", zap.Int("committed", result.Committed), zap.Int("failed", result.Failed))

	if result.Committed == 0 {
		return result, ErrAllImagesFailed
	}
	return result, nil
}

// List returns the slots of a tour, optionally for one group
func (s *ImageService) List(ctx context.Context, tourID uuid.UUID, group domain.ImageGroup) ([]domain.TourImageDTO, error) {
	if group != "" && !group.IsValid() {
		return nil, invalidInput(fmt.Errorf("unknown image group %q", group))
	}
	exists, err := s.tourRepo.Exists(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("failed to check tour: %w", err)
	}
	if !exists {
		return nil, ErrTourNotFound
	}

	images, err := s.imageRepo.ListByTour(ctx, tourID, group)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	dtos := make([]domain.TourImageDTO, len(images))
	for i := range images {
		dtos[i] = mapper.ToTourImageDTO(&images[i])
	}
	return dtos, nil
}

// Delete removes the slot with imageID from the tour
func (s *ImageService) Delete(ctx context.Context, tourID, imageID uuid.UUID) error {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return lookupError(err, ErrImageNotFound, "get image")
	}
	if img.TourID != tourID {
		return ErrImageNotFound
	}

	return s.remove(ctx, tourID, img.Group, func(images []domain.TourImage) ([]domain.TourImage, domain.TourImage, error) {
		return tourplan.RemoveImage(images, imageID)
	})
}

// DeleteAt removes the slot at index of the group's ordered list
func (s *ImageService) DeleteAt(ctx context.Context, tourID uuid.UUID, group domain.ImageGroup, index int) error {
	if !group.IsValid() {
		return invalidInput(fmt.Errorf("unknown image group %q", group))
	}
	return s.remove(ctx, tourID, group, func(images []domain.TourImage) ([]domain.TourImage, domain.TourImage, error) {
		return tourplan.RemoveImageAt(images, index)
	})
}

// FailStalePending fails slots left pending for longer than ttl, e.g. after a crash
// mid-upload. Returns how many slots were failed.
func (s *ImageService) FailStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	stale, err := s.imageRepo.ListStalePending(ctx, time.Now().UTC().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to list pending images: %w", err)
	}

	failed := 0
	for i := range stale {
		img := &stale[i]
		if err := tourplan.FailImage(img, errStaleUpload); err != nil {
			continue
		}
		if err := s.imageRepo.Update(ctx, img); err != nil {
			return failed, fmt.Errorf("failed to save image slot: %w", err)
		}
		failed++
	}
	return failed, nil
}

type removeFunc func([]domain.TourImage) ([]domain.TourImage, domain.TourImage, error)

func (s *ImageService) remove(ctx context.Context, tourID uuid.UUID, group domain.ImageGroup, fn removeFunc) error {
	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return lookupError(err, ErrTourNotFound, "get tour")
	}

	images, err := s.imageRepo.ListByTour(ctx, tourID, group)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}

	_, removed, err := fn(images)
	if err != nil {
		if errors.Is(err, tourplan.ErrImageNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if err := s.imageRepo.Delete(ctx, removed.ID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	s.deleteObjects(ctx, &removed)

	tourplan.RemoveTourImage(tour, removed)
	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return fmt.Errorf("failed to update tour images: %w", err)
	}
	return nil
}

// store writes the original and a thumbnail, then commits the slot
func (s *ImageService) store(ctx context.Context, slot *domain.TourImage, file ImageUpload) error {
	data, err := io.ReadAll(file.Data)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("not a supported image: %w", err)
	}

	format, err := imaging.FormatFromFilename(file.FileName)
	if err != nil {
		format = imaging.JPEG
	}
	thumbType := thumbnailContentType[format]
	var thumb bytes.Buffer
	if err := imaging.Encode(&thumb, imaging.Resize(img, s.thumbnailWidth, 0, imaging.Lanczos), format, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}

	key, thumbKey := objectKeys(slot)
	if _, err := s.storage.Put(ctx, key, file.ContentType, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	if _, err := s.storage.Put(ctx, thumbKey, thumbType, &thumb); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up image after thumbnail error",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		return fmt.Errorf("store thumbnail: %w", err)
	}

	return tourplan.CommitImage(slot, s.storage.URL(key), s.storage.URL(thumbKey))
}

func (s *ImageService) deleteObjects(ctx context.Context, img *domain.TourImage) {
	if img.State != domain.ImageStateCommitted {
		return
	}
	key, thumbKey := objectKeys(img)
	for _, k := range []string{key, thumbKey} {
		if err := s.storage.Delete(ctx, k); err != nil {
			s.logger.Warn("failed to delete stored image", zap.String("key", k), zap.Error(err))
		}
	}
}

// PruneItineraryDays deletes the slots and stored files of middle days the
// tour's itinerary no longer has. Returns how many slots were removed.
func (s *ImageService) PruneItineraryDays(ctx context.Context, tour *domain.Tour) (int, error) {
	images, err := s.imageRepo.ListByTour(ctx, tour.ID, domain.ImageGroupItinerary)
	if err != nil {
		return 0, fmt.Errorf("failed to list images: %w", err)
	}

	orphans := tourplan.OrphanedDaySlots(tour, images)
	for i := range orphans {
		if err := s.imageRepo.Delete(ctx, orphans[i].ID); err != nil {
			return i, fmt.Errorf("failed to delete image: %w", err)
		}
		s.deleteObjects(ctx, &orphans[i])
	}

	if len(orphans) > 0 {
		s.logger.Info("removed images of dropped itinerary days",
			zap.String("tour_id", tour.ID.String()),
			zap.Int("images_removed", len(orphans)),
		)
	}
	return len(orphans), nil
}

func objectKeys(img *domain.TourImage) (string, string) {
	tourID, group, id := img.TourID.String(), string(img.Group), img.ID.String()
	return storage.ObjectKey(tourID, group, id, img.FileName),
		storage.ObjectKey(tourID, group, id+"_thumb", thumbnailName(img.FileName))
}

// thumbnailName keeps the upload's extension when imaging can encode it;
// other thumbnails are written as JPEG
func thumbnailName(fileName string) string {
	if _, err := imaging.FormatFromFilename(fileName); err != nil {
		return "thumb.jpg"
	}
	return fileName
}
