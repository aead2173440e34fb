package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/tourplan"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ItineraryImagePruner removes the image slots and files of itinerary days a tour no longer has
type ItineraryImagePruner interface {
	PruneItineraryDays(ctx context.Context, tour *domain.Tour) (int, error)
}

// TourService handles tour CRUD and the pricing and itinerary edit operations
type TourService struct {
	tourRepo  *repository.TourRepository
	imageRepo *repository.TourImageRepository
	images    ItineraryImagePruner
	logger    *zap.Logger
}

// NewTourService creates a new TourService instance
func NewTourService(
	tourRepo *repository.TourRepository,
	imageRepo *repository.TourImageRepository,
	logger *zap.Logger,
) *TourService {
	return &TourService{
		tourRepo:  tourRepo,
		imageRepo: imageRepo,
		logger:    logger,
	}
}

// SetImagePruner lets the service delete stored files when itinerary days are
// dropped. Without one only the slot rows are deleted.
func (s *TourService) SetImagePruner(p ItineraryImagePruner) {
	s.images = p
}

// Create stores a new tour. Missing middle days up to the largest nights key are
// added as empty placeholders.
func (s *TourService) Create(ctx context.Context, req *domain.TourRequest) (*domain.TourDTO, error) {
	tour := &domain.Tour{}
	if err := applyTourRequest(tour, req); err != nil {
		return nil, err
	}

	draft := tourplan.NewDraft(tour)
	if n, ok := domain.ParseNightsKey(draft.Selected); ok && n > 0 {
		if err := draft.ConfirmNights(n); err != nil {
			return nil, planError(err)
		}
		draft.Apply(tour)
	}

	if err := s.tourRepo.Create(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}

	s.logger.Info("tour created", zap.String("tour_id", tour.ID.String()), zap.String("title", tour.Title))

	dto := mapper.ToTourDTO(tour)
	return &dto, nil
}

func (s *TourService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TourDTO, error) {
	tour, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToTourDTO(tour)
	return &dto, nil
}

// Update replaces every field of the tour. Concurrent edits are last-write-wins.
func (s *TourService) Update(ctx context.Context, id uuid.UUID, req *domain.TourRequest) (*domain.TourDTO, error) {
	tour, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTourRequest(tour, req); err != nil {
		return nil, err
	}
	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}

	dto := mapper.ToTourDTO(tour)
	return &dto, nil
}

// Delete removes the tour and its image slots
func (s *TourService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.tourRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check tour: %w", err)
	}
	if !exists {
		return ErrTourNotFound
	}

	if err := s.imageRepo.DeleteByTour(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tour images: %w", err)
	}
	if err := s.tourRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tour: %w", err)
	}

	s.logger.Info("tour deleted", zap.String("tour_id", id.String()))
	return nil
}

// List returns a paginated list of tours
func (s *TourService) List(ctx context.Context, page, pageSize int, filters *repository.TourFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)

	tours, total, err := s.tourRepo.ListWithSortConfig(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	dtos := make([]domain.TourDTO, len(tours))
	for i := range tours {
		dtos[i] = mapper.ToTourDTO(&tours[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

// ListExpired returns tours whose expiry date is before the given time
func (s *TourService) ListExpired(ctx context.Context, before time.Time) ([]domain.TourDTO, error) {
	tours, err := s.tourRepo.ListExpired(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired tours: %w", err)
	}
	dtos := make([]domain.TourDTO, len(tours))
	for i := range tours {
		dtos[i] = mapper.ToTourDTO(&tours[i])
	}
	return dtos, nil
}

// ConfirmNights grows the itinerary to n nights and selects that pricing group
func (s *TourService) ConfirmNights(ctx context.Context, id uuid.UUID, nights int) (*domain.TourDraftDTO, error) {
	return s.edit(ctx, id, func(d *tourplan.Draft) error {
		return d.ConfirmNights(nights)
	})
}

// RemoveNightOption deletes a nights pricing group. Images of middle days
// trimmed with it are deleted too.
func (s *TourService) RemoveNightOption(ctx context.Context, id uuid.UUID, key string) (*domain.TourDraftDTO, error) {
	tour, draft, err := s.editTour(ctx, id, func(d *tourplan.Draft) error {
		return d.RemoveNightOption(key)
	})
	if err != nil {
		return nil, err
	}

	if err := s.pruneDayImages(ctx, tour); err != nil {
		return nil, err
	}

	dto := mapper.ToTourDraftDTO(tour, draft.Selected)
	return &dto, nil
}

func (s *TourService) pruneDayImages(ctx context.Context, tour *domain.Tour) error {
	if s.images != nil {
		if _, err := s.images.PruneItineraryDays(ctx, tour); err != nil {
			return fmt.Errorf("failed to remove images of dropped days: %w", err)
		}
		return nil
	}

	images, err := s.imageRepo.ListByTour(ctx, tour.ID, domain.ImageGroupItinerary)
	if err != nil {
		return fmt.Errorf("failed to list images: %w", err)
	}
	for _, img := range tourplan.OrphanedDaySlots(tour, images) {
		if err := s.imageRepo.Delete(ctx, img.ID); err != nil {
			return fmt.Errorf("failed to delete image: %w", err)
		}
	}
	return nil
}

// AddNightsOption appends an option to a nights pricing group
func (s *TourService) AddNightsOption(ctx context.Context, id uuid.UUID, key string, option domain.NightsOption) (*domain.TourDraftDTO, error) {
	return s.edit(ctx, id, func(d *tourplan.Draft) error {
		return d.AddNightsOption(key, option)
	})
}

// ReplaceNightsOption swaps the first option equal to req.Old with req.New
func (s *TourService) ReplaceNightsOption(ctx context.Context, id uuid.UUID, key string, req *domain.ReplaceNightsOptionRequest) (*domain.TourDraftDTO, error) {
	return s.edit(ctx, id, func(d *tourplan.Draft) error {
		return d.ReplaceNightsOption(key, req.Old, req.New)
	})
}

// RemoveNightsOptionAt drops the option at index from a nights pricing group
func (s *TourService) RemoveNightsOptionAt(ctx context.Context, id uuid.UUID, key string, index int) (*domain.TourDraftDTO, error) {
	return s.edit(ctx, id, func(d *tourplan.Draft) error {
		return d.RemoveNightsOptionAt(key, index)
	})
}

// SetFoodCategory edits one meal plan of the tour
func (s *TourService) SetFoodCategory(ctx context.Context, id uuid.UUID, category string, req *domain.UpdateFoodCategoryRequest) (*domain.TourDraftDTO, error) {
	return s.edit(ctx, id, func(d *tourplan.Draft) error {
		return d.SetFoodCategory(category, tourplan.FoodCategoryEdit{
			AddPrice:    req.AddPrice,
			OldAddPrice: req.OldAddPrice,
			Available:   req.Available,
		})
	})
}

// Quote prices a customer's selection for the tour
func (s *TourService) Quote(ctx context.Context, id uuid.UUID, req *domain.QuoteRequest) (*domain.QuoteDTO, error) {
	tour, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	q, err := tourplan.ComputeTotal(tour, tourplan.Selection{
		NightsKey:    req.NightsKey,
		OptionIndex:  req.OptionIndex,
		FoodCategory: req.FoodCategory,
	})
	if err != nil {
		return nil, planError(err)
	}

	dto := mapper.ToQuoteDTO(tour, q)
	return &dto, nil
}

// edit loads the tour, applies fn to its draft and saves the result
func (s *TourService) edit(ctx context.Context, id uuid.UUID, fn func(*tourplan.Draft) error) (*domain.TourDraftDTO, error) {
	tour, draft, err := s.editTour(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToTourDraftDTO(tour, draft.Selected)
	return &dto, nil
}

func (s *TourService) editTour(ctx context.Context, id uuid.UUID, fn func(*tourplan.Draft) error) (*domain.Tour, *tourplan.Draft, error) {
	tour, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	draft := tourplan.NewDraft(tour)
	if err := fn(draft); err != nil {
		return nil, nil, planError(err)
	}
	draft.Apply(tour)

	if err := s.tourRepo.Update(ctx, tour); err != nil {
		return nil, nil, fmt.Errorf("failed to update tour: %w", err)
	}

	s.logger.Debug("tour draft saved",
		zap.String("tour_id", tour.ID.String()),
		zap.String("selected_nights", draft.Selected),
	)
	return tour, draft, nil
}

func (s *TourService) load(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrTourNotFound, "get tour")
	}
	return tour, nil
}

// planError classifies composer errors for the handlers
func planError(err error) error {
	switch {
	case errors.Is(err, tourplan.ErrUnknownNightsKey),
		errors.Is(err, tourplan.ErrNightsOptionNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, tourplan.ErrLastNightOption):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return invalidInput(err)
	}
}

func applyTourRequest(tour *domain.Tour, req *domain.TourRequest) error {
	dates, err := parseDates(req.ExpiryDate, req.ValidFrom, req.ValidTo)
	if err != nil {
		return err
	}
	if err := checkWindow(dates[1], dates[2]); err != nil {
		return err
	}
	for key := range req.Nights {
		if n, ok := domain.ParseNightsKey(key); !ok || n < 1 {
			return invalidInput(fmt.Errorf("nights key %q is not a positive number", key))
		}
	}
	for key := range req.FoodCategory {
		if !domain.IsFoodCategoryKey(key) {
			return invalidInput(fmt.Errorf("%w: %q", tourplan.ErrUnknownFoodCategory, key))
		}
	}

	food := domain.FoodCategories{}
	for _, key := range domain.FoodCategoryKeys {
		food[key] = req.FoodCategory[key]
	}

	tour.Title = req.Title
	tour.Price = req.Price
	tour.OldPrice = req.OldPrice
	tour.PersonCount = req.PersonCount
	tour.Nights = datatypes.NewJSONType(req.Nights)
	tour.FoodCategory = datatypes.NewJSONType(food)
	tour.Country = req.Country
	tour.Markets = domain.StringList(req.Markets)
	tour.TourSummary = req.TourSummary
	tour.TourImage = req.TourImage
	tour.DestinationImages = domain.StringList(req.DestinationImages)
	tour.ActivityImages = domain.StringList(req.ActivityImages)
	tour.HotelImages = domain.StringList(req.HotelImages)
	tour.Inclusions = domain.StringList(req.Inclusions)
	tour.Exclusions = domain.StringList(req.Exclusions)
	tour.Facilities = domain.StringList(req.Facilities)
	tour.ExpiryDate = dates[0]
	tour.ValidFrom = dates[1]
	tour.ValidTo = dates[2]

	if req.Itinerary != nil {
		tour.Itinerary = datatypes.NewJSONType(*req.Itinerary)
	}
	if req.ItineraryImages != nil {
		tour.ItineraryImages = datatypes.NewJSONType(*req.ItineraryImages)
	}
	if req.ItineraryTitles != nil {
		tour.ItineraryTitles = datatypes.NewJSONType(*req.ItineraryTitles)
	}
	return nil
}

