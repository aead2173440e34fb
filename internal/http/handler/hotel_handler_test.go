package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/testutil"
)

func TestHotelHandler_HotelsAndRooms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).hotels

	rr := serve(h.Create, newRequest(t, adminCtx(), http.MethodPost, "/hotels",
		domain.HotelRequest{Name: "Fjord Hotel", Country: "Norway", City: "Bergen", Stars: 4}, nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	hotel := decode[domain.HotelDTO](t, rr)
	hotelParams := map[string]string{"id": hotel.ID.String()}

	rr = serve(h.Create, newRequest(t, adminCtx(), http.MethodPost, "/hotels", domain.HotelRequest{Name: "Six", Stars: 6}, nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(h.CreateRoom, newRequest(t, adminCtx(), http.MethodPost, "/",
		domain.RoomRequest{Name: "Double", Capacity: 2, PricePerNight: 150}, hotelParams))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	room := decode[domain.RoomDTO](t, rr)
	assert.Equal(t, hotel.ID, room.HotelID)
	assert.Equal(t, "/api/v1/rooms/"+room.ID.String(), rr.Header().Get("Location"))

	rr = serve(h.ListRooms, newRequest(t, context.Background(), http.MethodGet, "/", nil, hotelParams))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]domain.RoomDTO](t, rr), 1)

	roomParams := map[string]string{"id": room.ID.String()}
	rr = serve(h.UpdateRoom, newRequest(t, adminCtx(), http.MethodPut, "/",
		domain.RoomRequest{Name: "Double deluxe", Capacity: 3, PricePerNight: 190}, roomParams))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 3, decode[domain.RoomDTO](t, rr).Capacity)

	rr = serve(h.List, newRequest(t, context.Background(), http.MethodGet, "/hotels?city=Bergen", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), decode[domain.PaginatedResponse](t, rr).Total)

	rr = serve(h.Delete, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, hotelParams))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h.GetRoom, newRequest(t, context.Background(), http.MethodGet, "/", nil, roomParams))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHotelHandler_CreateRoomUnknownHotel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).hotels

	rr := serve(h.CreateRoom, newRequest(t, adminCtx(), http.MethodPost, "/",
		domain.RoomRequest{Name: "Single", Capacity: 1}, map[string]string{"id": uuid.NewString()}))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

type inquiryPage struct {
	Data  []domain.InquiryDTO `json:"data"`
	Total int64               `json:"total"`
}

func TestInquiryHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).inquiries
	tour := testutil.CreateTestTour(t, db, "Rome")

	t.Run("public create", func(t *testing.T) {
		rr := serve(h.Create, newRequest(t, context.Background(), http.MethodPost, "/inquiries", domain.CreateInquiryRequest{
			Name:    "Ola",
			Email:   "ola@example.com",
			Message: "Is the Rome tour available in October?",
			TourID:  &tour.ID,
		}, nil))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.Equal(t, domain.InquiryStatusOpen, decode[domain.InquiryDTO](t, rr).Status)
	})

	t.Run("invalid email", func(t *testing.T) {
		rr := serve(h.Create, newRequest(t, context.Background(), http.MethodPost, "/inquiries",
			domain.CreateInquiryRequest{Name: "Ola", Email: "nope", Message: "Hi"}, nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decode[domain.APIError](t, rr).Errors, "email")
	})

	t.Run("unknown tour", func(t *testing.T) {
		missing := uuid.New()
		rr := serve(h.Create, newRequest(t, context.Background(), http.MethodPost, "/inquiries",
			domain.CreateInquiryRequest{Name: "Ola", Email: "ola@example.com", Message: "Hi", TourID: &missing}, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("admin answers", func(t *testing.T) {
		rr := serve(h.List, newRequest(t, adminCtx(), http.MethodGet, "/inquiries?status=open", nil, nil))
		require.Equal(t, http.StatusOK, rr.Code)

		page := decode[inquiryPage](t, rr)
		require.Equal(t, int64(1), page.Total)

		params := map[string]string{"id": page.Data[0].ID.String()}
		rr = serve(h.Update, newRequest(t, adminCtx(), http.MethodPut, "/",
			domain.UpdateInquiryRequest{Status: domain.InquiryStatusAnswered}, params))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, domain.InquiryStatusAnswered, decode[domain.InquiryDTO](t, rr).Status)

		rr = serve(h.Delete, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, params))
		assert.Equal(t, http.StatusNoContent, rr.Code)

		rr = serve(h.GetByID, newRequest(t, adminCtx(), http.MethodGet, "/", nil, params))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
