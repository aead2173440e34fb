package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedNow is the "today" used by offer rules in these tests
var fixedNow = time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func agentContext(agentID string, roles ...auth.Role) context.Context {
	if len(roles) == 0 {
		roles = []auth.Role{auth.RoleAgent}
	}
	return auth.WithAgentContext(context.Background(), &auth.AgentContext{
		AgentID:     agentID,
		DisplayName: "Agent " + agentID,
		Roles:       roles,
	})
}

func adminContext() context.Context {
	return agentContext("admin-1", auth.RoleAdmin)
}

type services struct {
	tours     *service.TourService
	discounts *service.DiscountService
	bookings  *service.BookingService
	hotels    *service.HotelService
	inquiries *service.InquiryService
	stats     *service.AgentStatsProvider
}

func newServices(t *testing.T, db *gorm.DB) services {
	t.Helper()
	logger := zap.NewNop()

	tourRepo := repository.NewTourRepository(db)
	imageRepo := repository.NewTourImageRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	stats := service.NewAgentStatsProvider(bookingRepo, nil, logger)
	discounts := service.NewDiscountServiceWithClock(discountRepo, stats, fixedClock, logger)

	return services{
		tours:     service.NewTourService(tourRepo, imageRepo, logger),
		discounts: discounts,
		bookings:  service.NewBookingService(bookingRepo, tourRepo, hotelRepo, roomRepo, discounts, stats, logger),
		hotels:    service.NewHotelService(hotelRepo, roomRepo, logger),
		inquiries: service.NewInquiryService(inquiryRepo, tourRepo, logger),
		stats:     stats,
	}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string      { return &v }
func boolPtr(v bool) *bool         { return &v }
func intPtr(v int) *int            { return &v }
