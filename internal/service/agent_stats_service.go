package service

import (
	"context"
	"fmt"

	"github.com/voyagedesk/travel-api/internal/datawarehouse"
	"github.com/voyagedesk/travel-api/internal/repository"
	"go.uber.org/zap"
)

// BookingCounter reports how many bookings an agent has made
type BookingCounter interface {
	BookingCount(ctx context.Context, agentID string) (int, error)
}

// AgentStatsProvider counts an agent's bookings from the local bookings table and,
// when configured, the historical bookings held in the reporting warehouse.
type AgentStatsProvider struct {
	bookingRepo *repository.BookingRepository
	warehouse   *datawarehouse.Client
	logger      *zap.Logger
}

// NewAgentStatsProvider creates a provider. warehouse may be nil.
func NewAgentStatsProvider(bookingRepo *repository.BookingRepository, warehouse *datawarehouse.Client, logger *zap.Logger) *AgentStatsProvider {
	return &AgentStatsProvider{
		bookingRepo: bookingRepo,
		warehouse:   warehouse,
		logger:      logger,
	}
}

// BookingCount returns the agent's non-cancelled bookings. A warehouse failure is
// logged and the local count is returned alone.
func (p *AgentStatsProvider) BookingCount(ctx context.Context, agentID string) (int, error) {
	if agentID == "" {
		return 0, nil
	}

	local, err := p.bookingRepo.CountByAgent(ctx, agentID)
	if err != nil {
		return 0, fmt.Errorf("failed to count agent bookings: %w", err)
	}

	if !p.warehouse.IsEnabled() {
		return local, nil
	}

	historical, err := p.warehouse.AgentBookingCount(ctx, agentID)
	if err != nil {
		p.logger.Warn("warehouse booking count unavailable, using local count",
			zap.String("agent_id", agentID),
			zap.Int("local_count", local),
			zap.Error(err),
		)
		return local, nil
	}
	return local + historical, nil
}
