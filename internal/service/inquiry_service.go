package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/repository"
	"go.uber.org/zap"
)

// InquiryService handles questions sent from the public site
type InquiryService struct {
	inquiryRepo *repository.InquiryRepository
	tourRepo    *repository.TourRepository
	logger      *zap.Logger
}

// NewInquiryService creates a new InquiryService instance
func NewInquiryService(inquiryRepo *repository.InquiryRepository, tourRepo *repository.TourRepository, logger *zap.Logger) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		tourRepo:    tourRepo,
		logger:      logger,
	}
}

// Create stores an inquiry in the open state
func (s *InquiryService) Create(ctx context.Context, req *domain.CreateInquiryRequest) (*domain.InquiryDTO, error) {
	if req.TourID != nil {
		exists, err := s.tourRepo.Exists(ctx, *req.TourID)
		if err != nil {
			return nil, fmt.Errorf("failed to check tour: %w", err)
		}
		if !exists {
			return nil, ErrTourNotFound
		}
	}

	inquiry := &domain.Inquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: req.Message,
		TourID:  req.TourID,
		Status:  domain.InquiryStatusOpen,
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.logger.Info("inquiry received", zap.String("inquiry_id", inquiry.ID.String()))

	dto := mapper.ToInquiryDTO(inquiry)
	return &dto, nil
}

func (s *InquiryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InquiryDTO, error) {
	inquiry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToInquiryDTO(inquiry)
	return &dto, nil
}

// UpdateStatus sets the handling state of an inquiry
func (s *InquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.InquiryDTO, error) {
	if !status.IsValid() {
		return nil, invalidInput(fmt.Errorf("unknown inquiry status %q", status))
	}

	inquiry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	inquiry.Status = status

	if err := s.inquiryRepo.Update(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	dto := mapper.ToInquiryDTO(inquiry)
	return &dto, nil
}

func (s *InquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return nil
}

func (s *InquiryService) List(ctx context.Context, page, pageSize int, filters *repository.InquiryFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)

	inquiries, total, err := s.inquiryRepo.ListWithSortConfig(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}

	dtos := make([]domain.InquiryDTO, len(inquiries))
	for i := range inquiries {
		dtos[i] = mapper.ToInquiryDTO(&inquiries[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

func (s *InquiryService) load(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrInquiryNotFound, "get inquiry")
	}
	return inquiry, nil
}
