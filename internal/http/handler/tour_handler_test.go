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

func TestTourHandler_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).tours

	testutil.CreateTestTour(t, db, "Rome")
	testutil.CreateTestTour(t, db, "Alps")

	t.Run("lists all", func(t *testing.T) {
		rr := serve(h.List, newRequest(t, context.Background(), http.MethodGet, "/tours", nil, nil))
		require.Equal(t, http.StatusOK, rr.Code)

		res := decode[domain.PaginatedResponse](t, rr)
		assert.Equal(t, int64(2), res.Total)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 20, res.PageSize)
	})

	t.Run("search", func(t *testing.T) {
		rr := serve(h.List, newRequest(t, context.Background(), http.MethodGet, "/tours?search=rom", nil, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(1), decode[domain.PaginatedResponse](t, rr).Total)
	})

	t.Run("bad validOn", func(t *testing.T) {
		rr := serve(h.List, newRequest(t, context.Background(), http.MethodGet, "/tours?validOn=15.07.2026", nil, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTourHandler_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).tours
	tour := testutil.CreateTestTour(t, db, "Rome")

	rr := serve(h.GetByID, newRequest(t, context.Background(), http.MethodGet, "/tours/x", nil, map[string]string{"id": tour.ID.String()}))
	require.Equal(t, http.StatusOK, rr.Code)
	dto := decode[domain.TourDTO](t, rr)
	assert.Equal(t, "Rome", dto.Title)
	assert.Equal(t, "Arrival", dto.Itinerary.FirstDay)

	rr = serve(h.GetByID, newRequest(t, context.Background(), http.MethodGet, "/tours/x", nil, map[string]string{"id": uuid.NewString()}))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(h.GetByID, newRequest(t, context.Background(), http.MethodGet, "/tours/x", nil, map[string]string{"id": "not-a-uuid"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid tour ID format", decode[domain.ErrorResponse](t, rr).Message)
}

func TestTourHandler_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).tours

	t.Run("valid", func(t *testing.T) {
		add, old := 100.0, 150.0
		body := domain.TourRequest{
			Title:       "Lofoten",
			Price:       900,
			OldPrice:    1100,
			PersonCount: 2,
			Nights:      domain.NightsPricing{"4": {{Option: "Cabin", AddPrice: &add, OldAddPrice: &old}}},
			Country:     "Norway",
		}
		rr := serve(h.Create, newRequest(t, adminCtx(), http.MethodPost, "/tours", body, nil))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		dto := decode[domain.TourDTO](t, rr)
		assert.Equal(t, "/api/v1/tours/"+dto.ID.String(), rr.Header().Get("Location"))
		assert.Contains(t, dto.Nights, "4")
	})

	t.Run("validation errors name fields", func(t *testing.T) {
		rr := serve(h.Create, newRequest(t, adminCtx(), http.MethodPost, "/tours", domain.TourRequest{PersonCount: 1}, nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)

		apiErr := decode[domain.APIError](t, rr)
		assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
		assert.Contains(t, apiErr.Errors, "title")
		assert.Contains(t, apiErr.Errors, "nights")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := newRequest(t, adminCtx(), http.MethodPost, "/tours", nil, nil)
		rr := serve(h.Create, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTourHandler_Composer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).tours
	tour := testutil.CreateTestTour(t, db, "Composer")
	id := tour.ID.String()

	rr := serve(h.ConfirmNights, newRequest(t, adminCtx(), http.MethodPost, "/", domain.ConfirmNightsRequest{Nights: 5}, map[string]string{"id": id}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	draft := decode[domain.TourDraftDTO](t, rr)
	assert.Equal(t, "5", draft.SelectedNights)
	assert.Len(t, draft.Itinerary.MiddleDays, 4)

	rr = serve(h.ConfirmNights, newRequest(t, adminCtx(), http.MethodPost, "/", domain.ConfirmNightsRequest{Nights: 0}, map[string]string{"id": id}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(h.RemoveNightOption, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, map[string]string{"id": id, "key": "5"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "3", decode[domain.TourDraftDTO](t, rr).SelectedNights)

	rr = serve(h.RemoveNightOption, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, map[string]string{"id": id, "key": "3"}))
	assert.Equal(t, http.StatusConflict, rr.Code)

	add, old := 200.0, 260.0
	rr = serve(h.AddNightsOption, newRequest(t, adminCtx(), http.MethodPost, "/",
		domain.NightsOption{Option: "Deluxe", AddPrice: &add, OldAddPrice: &old},
		map[string]string{"id": id, "key": "3"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[domain.TourDraftDTO](t, rr).Nights["3"], 2)

	rr = serve(h.RemoveNightsOptionAt, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, map[string]string{"id": id, "key": "3", "index": "1"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[domain.TourDraftDTO](t, rr).Nights["3"], 1)

	rr = serve(h.RemoveNightsOptionAt, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, map[string]string{"id": id, "key": "3", "index": "-1"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	price := 45.0
	rr = serve(h.SetFoodCategory, newRequest(t, adminCtx(), http.MethodPatch, "/",
		domain.UpdateFoodCategoryRequest{AddPrice: &price},
		map[string]string{"id": id, "category": "0"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 45.0, decode[domain.TourDraftDTO](t, rr).FoodCategory["0"].AddPrice)
}

func TestTourHandler_Quote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).tours
	tour := testutil.CreateTestTour(t, db, "Quote")
	params := map[string]string{"id": tour.ID.String()}

	t.Run("prices the selection", func(t *testing.T) {
		rr := serve(h.Quote, newRequest(t, context.Background(), http.MethodPost, "/",
			domain.QuoteRequest{NightsKey: "3", FoodCategory: strPtr("0")}, params))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		q := decode[domain.QuoteDTO](t, rr)
		assert.Equal(t, 1220.0, q.Total)
		assert.Equal(t, 1630.0, q.OldTotal)
		assert.Equal(t, 410.0, q.Savings)
	})

	t.Run("nights key must be numeric", func(t *testing.T) {
		rr := serve(h.Quote, newRequest(t, context.Background(), http.MethodPost, "/", domain.QuoteRequest{NightsKey: "three"}, params))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unavailable meal plan", func(t *testing.T) {
		rr := serve(h.Quote, newRequest(t, context.Background(), http.MethodPost, "/",
			domain.QuoteRequest{NightsKey: "3", FoodCategory: strPtr("2")}, params))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown nights key", func(t *testing.T) {
		rr := serve(h.Quote, newRequest(t, context.Background(), http.MethodPost, "/", domain.QuoteRequest{NightsKey: "7"}, params))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTourHandler_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).tours
	tour := testutil.CreateTestTour(t, db, "Gone")
	params := map[string]string{"id": tour.ID.String()}

	rr := serve(h.Delete, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, params))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h.GetByID, newRequest(t, context.Background(), http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
