package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/auth"
	"github.com/voyagedesk/travel-api/internal/http/handler"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/service"
	"github.com/voyagedesk/travel-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)

type handlers struct {
	tours     *handler.TourHandler
	discounts *handler.DiscountHandler
	bookings  *handler.BookingHandler
	hotels    *handler.HotelHandler
	inquiries *handler.InquiryHandler
	images    *handler.ImageHandler
}

func newHandlers(t *testing.T, db *gorm.DB) handlers {
	t.Helper()
	logger := zap.NewNop()

	tourRepo := repository.NewTourRepository(db)
	imageRepo := repository.NewTourImageRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)

	store, err := storage.NewLocalStorage(t.TempDir(), "https://cdn.example.com/assets")
	require.NoError(t, err)

	stats := service.NewAgentStatsProvider(bookingRepo, nil, logger)
	discounts := service.NewDiscountServiceWithClock(discountRepo, stats, func() time.Time { return fixedNow }, logger)

	return handlers{
		tours:     handler.NewTourHandler(service.NewTourService(tourRepo, imageRepo, logger), logger),
		discounts: handler.NewDiscountHandler(discounts, logger),
		bookings: handler.NewBookingHandler(
			service.NewBookingService(bookingRepo, tourRepo, hotelRepo, roomRepo, discounts, stats, logger), logger),
		hotels:    handler.NewHotelHandler(service.NewHotelService(hotelRepo, roomRepo, logger), logger),
		inquiries: handler.NewInquiryHandler(service.NewInquiryService(repository.NewInquiryRepository(db), tourRepo, logger), logger),
		images:    handler.NewImageHandler(service.NewImageService(tourRepo, imageRepo, store, 120, logger), 1, logger),
	}
}

func agentCtx(agentID string, roles ...auth.Role) context.Context {
	if len(roles) == 0 {
		roles = []auth.Role{auth.RoleAgent}
	}
	return auth.WithAgentContext(context.Background(), &auth.AgentContext{
		AgentID:     agentID,
		DisplayName: "Agent " + agentID,
		Roles:       roles,
	})
}

func adminCtx() context.Context {
	return agentCtx("admin-1", auth.RoleAdmin)
}

// newRequest builds a request with a JSON body and chi URL params
func newRequest(t *testing.T, ctx context.Context, method, target string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return withParams(req.WithContext(ctx), params)
}

func withParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func strPtr(v string) *string { return &v }
