package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/offers"
	"github.com/voyagedesk/travel-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DiscountService manages offers and decides which of them an agent may see
type DiscountService struct {
	discountRepo *repository.DiscountRepository
	stats        BookingCounter
	now          Clock
	logger       *zap.Logger
}

// NewDiscountService creates a new DiscountService instance
func NewDiscountService(discountRepo *repository.DiscountRepository, stats BookingCounter, logger *zap.Logger) *DiscountService {
	return NewDiscountServiceWithClock(discountRepo, stats, utcNow, logger)
}

// NewDiscountServiceWithClock creates a DiscountService evaluating offers at now()
func NewDiscountServiceWithClock(discountRepo *repository.DiscountRepository, stats BookingCounter, now Clock, logger *zap.Logger) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		stats:        stats,
		now:          now,
		logger:       logger,
	}
}

// Create stores a new offer. Offers are active unless the request says otherwise.
func (s *DiscountService) Create(ctx context.Context, req *domain.DiscountRequest) (*domain.DiscountDTO, error) {
	discount := &domain.Discount{Active: true}
	if err := applyDiscountRequest(discount, req); err != nil {
		return nil, err
	}

	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to create discount: %w", err)
	}

	s.logger.Info("discount created",
		zap.String("discount_id", discount.ID.String()),
		zap.String("type", string(discount.DiscountType)),
	)

	dto := mapper.ToDiscountDTO(discount)
	return &dto, nil
}

func (s *DiscountService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DiscountDTO, error) {
	discount, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToDiscountDTO(discount)
	return &dto, nil
}

// Update replaces the offer's definition. The used agents list is kept.
func (s *DiscountService) Update(ctx context.Context, id uuid.UUID, req *domain.DiscountRequest) (*domain.DiscountDTO, error) {
	discount, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDiscountRequest(discount, req); err != nil {
		return nil, err
	}

	if err := s.discountRepo.Update(ctx, discount); err != nil {
		return nil, fmt.Errorf("failed to update discount: %w", err)
	}

	dto := mapper.ToDiscountDTO(discount)
	return &dto, nil
}

func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.discountRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}
	return nil
}

// List returns a paginated list of offers for the admin screens
func (s *DiscountService) List(ctx context.Context, page, pageSize int, filters *repository.DiscountFilters, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)

	discounts, total, err := s.discountRepo.ListWithSortConfig(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	dtos := make([]domain.DiscountDTO, len(discounts))
	for i := range discounts {
		dtos[i] = mapper.ToDiscountDTO(&discounts[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

// ListApplicable returns the offers the caller may see right now, in creation order.
// Anonymous callers never see exclusive offers.
func (s *DiscountService) ListApplicable(ctx context.Context, hotelID string) ([]domain.DiscountDTO, error) {
	candidates, err := s.discountRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	evalCtx, err := s.evaluationContext(ctx, auth.AgentIDFromContext(ctx), hotelID)
	if err != nil {
		return nil, err
	}

	eligible := offers.Filter(candidates, s.now(), evalCtx)

	dtos := make([]domain.DiscountDTO, len(eligible))
	for i := range eligible {
		dtos[i] = mapper.ToDiscountDTO(&eligible[i])
	}
	return dtos, nil
}

// Explain reports the first rule that hides the offer from agentID, or "eligible"
func (s *DiscountService) Explain(ctx context.Context, id uuid.UUID, agentID, hotelID string) (*domain.DiscountExplanationDTO, error) {
	discount, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates, err := s.discountRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	evalCtx, err := s.evaluationContext(ctx, agentID, hotelID)
	if err != nil {
		return nil, err
	}
	evalCtx.Candidates = candidates

	reason := offers.Explain(discount, s.now(), evalCtx)
	return &domain.DiscountExplanationDTO{
		DiscountID: discount.ID,
		Eligible:   reason == offers.ReasonEligible,
		Reason:     string(reason),
		AgentID:    agentID,
		HotelID:    hotelID,
		Bookings:   evalCtx.BookingCount,
	}, nil
}

// DeactivateExpired switches off active offers whose validTo day has passed
func (s *DiscountService) DeactivateExpired(ctx context.Context) (int64, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	n, err := s.discountRepo.DeactivateExpired(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired discounts: %w", err)
	}
	if n > 0 {
		s.logger.Info("expired discounts deactivated", zap.Int64("count", n))
	}
	return n, nil
}

// CheckApplicable returns the offer when agentID may use it for hotelID
func (s *DiscountService) CheckApplicable(ctx context.Context, id uuid.UUID, agentID, hotelID string) (*domain.Discount, error) {
	explanation, err := s.Explain(ctx, id, agentID, hotelID)
	if err != nil {
		return nil, err
	}
	if !explanation.Eligible {
		return nil, fmt.Errorf("%w: %s", ErrDiscountNotApplicable, explanation.Reason)
	}
	return s.load(ctx, id)
}

// MarkUsed records that agentID consumed an exclusive offer. Marking twice is a no-op.
func (s *DiscountService) MarkUsed(ctx context.Context, id uuid.UUID, agentID string) error {
	if agentID == "" {
		return invalidInput(errors.New("agent id is required"))
	}

	added, err := s.discountRepo.AddUsedAgent(ctx, id, agentID)
	if err != nil {
		return lookupError(err, ErrDiscountNotFound, "mark discount used")
	}
	if added {
		s.logger.Info("exclusive discount consumed",
			zap.String("discount_id", id.String()),
			zap.String("agent_id", agentID),
		)
	}
	return nil
}

func (s *DiscountService) evaluationContext(ctx context.Context, agentID, hotelID string) (offers.Context, error) {
	evalCtx := offers.Context{AgentID: agentID, SelectedHotelID: hotelID}
	if agentID == "" || s.stats == nil {
		return evalCtx, nil
	}

	count, err := s.stats.BookingCount(ctx, agentID)
	if err != nil {
		return offers.Context{}, fmt.Errorf("failed to load agent booking count: %w", err)
	}
	evalCtx.BookingCount = count
	return evalCtx, nil
}

func (s *DiscountService) load(ctx context.Context, id uuid.UUID) (*domain.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to get discount: %w", err)
	}
	return discount, nil
}

func applyDiscountRequest(discount *domain.Discount, req *domain.DiscountRequest) error {
	if !req.DiscountType.IsValid() {
		return invalidInput(fmt.Errorf("unknown discount type %q", req.DiscountType))
	}
	if req.DiscountType == domain.DiscountTypePercentage && req.Value > 100 {
		return invalidInput(errors.New("percentage value must not exceed 100"))
	}
	for _, m := range req.Conditions.SeasonalMonths {
		if m < 1 || m > 12 {
			return invalidInput(fmt.Errorf("seasonal month %d is out of range", m))
		}
	}
	for _, r := range []*domain.DateRange{req.Conditions.BookingWindow, req.Conditions.StayPeriod} {
		if r.IsSet() && r.End.Before(*r.Start) {
			return invalidInput(errors.New("date range ends before it starts"))
		}
	}

	dates, err := parseDates(req.ValidFrom, req.ValidTo)
	if err != nil {
		return err
	}
	if err := checkWindow(dates[0], dates[1]); err != nil {
		return err
	}

	discount.Name = req.Name
	discount.Description = req.Description
	discount.DiscountType = req.DiscountType
	discount.Value = req.Value
	discount.Conditions = datatypes.NewJSONType(req.Conditions)
	discount.ValidFrom = dates[0]
	discount.ValidTo = dates[1]
	discount.EligibleAgents = domain.StringList(req.EligibleAgents)
	discount.ApplicableHotels = domain.StringList(req.ApplicableHotels)
	if req.Active != nil {
		discount.Active = *req.Active
	}
	return nil
}
