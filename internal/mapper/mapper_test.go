package mapper_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/mapper"
	"github.com/voyagedesk/travel-api/internal/tourplan"
	"gorm.io/datatypes"
)

func TestToTourDTO(t *testing.T) {
	now := time.Now()
	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	add, old := 100.0, 150.0
	tour := &domain.Tour{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       "Dolomites",
		Price:       1000,
		OldPrice:    1300,
		PersonCount: 2,
		Nights: datatypes.NewJSONType(domain.NightsPricing{
			"3": {{Option: "Std", AddPrice: &add, OldAddPrice: &old}},
		}),
		FoodCategory: datatypes.NewJSONType(domain.FoodCategories{
			"0": {AddPrice: 20, OldAddPrice: 30, Available: true},
			"1": {AddPrice: 40, OldAddPrice: 45, Available: false},
		}),
		Country:    "Italy",
		Markets:    domain.StringList{"NO", "SE"},
		ExpiryDate: &expiry,
	}

	dto := mapper.ToTourDTO(tour)

	assert.Equal(t, tour.ID, dto.ID)
	assert.Equal(t, "Dolomites", dto.Title)
	assert.Equal(t, []string{"0"}, dto.AvailableFoodCategories)
	assert.Equal(t, []string{"NO", "SE"}, dto.Markets)
	assert.Equal(t, []string{}, dto.Inclusions)
	require.NotNil(t, dto.ExpiryDate)
	assert.Equal(t, "2026-12-31", *dto.ExpiryDate)
	assert.Nil(t, dto.ValidFrom)
	assert.NotNil(t, dto.Itinerary.MiddleDays)
	assert.NotEmpty(t, dto.CreatedAt)
}

func TestToTourDTO_JSONContract(t *testing.T) {
	add, old := 100.0, 150.0
	tour := &domain.Tour{
		Title:       "Alps",
		PersonCount: 2,
		Nights: datatypes.NewJSONType(domain.NightsPricing{
			"3": {{Option: "Std", AddPrice: &add, OldAddPrice: &old}},
		}),
		FoodCategory: datatypes.NewJSONType(domain.FoodCategories{
			"0": {AddPrice: 20, OldAddPrice: 30, Available: true},
		}),
	}

	raw, err := json.Marshal(mapper.ToTourDTO(tour))
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	for _, key := range []string{"title", "price", "oldPrice", "person_count", "nights", "food_category",
		"tour_summary", "tour_image", "destination_images", "itinerary", "itinerary_images", "itinerary_titles"} {
		assert.Contains(t, body, key)
	}
	assert.JSONEq(t, `{"0":[20,30,true]}`, string(body["food_category"]))
	assert.JSONEq(t, `{"3":[{"option":"Std","add_price":100,"old_add_price":150}]}`, string(body["nights"]))
}

func TestToQuoteDTO(t *testing.T) {
	tour := &domain.Tour{BaseModel: domain.BaseModel{ID: uuid.New()}}
	q := tourplan.Quote{
		NightsKey:   "3",
		Nights:      3,
		PersonCount: 2,
		Option:      "Std",
		Total:       decimal.RequireFromString("1220"),
		OldTotal:    decimal.RequireFromString("1630"),
	}

	dto := mapper.ToQuoteDTO(tour, q)

	assert.Equal(t, tour.ID, dto.TourID)
	assert.Equal(t, 1220.0, dto.Total)
	assert.Equal(t, 1630.0, dto.OldTotal)
	assert.Equal(t, 410.0, dto.Savings)
}

func TestToDiscountDTO(t *testing.T) {
	minBookings := 3
	validTo := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	discount := &domain.Discount{
		BaseModel:    domain.BaseModel{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Loyal agents",
		DiscountType: domain.DiscountTypeExclusive,
		Value:        15,
		Conditions:   datatypes.NewJSONType(domain.DiscountConditions{MinBookings: &minBookings}),
		ValidTo:      &validTo,
		Active:       true,
		EligibleAgents: domain.StringList{
			"agent-1",
		},
	}

	dto := mapper.ToDiscountDTO(discount)

	assert.Equal(t, discount.ID, dto.ID)
	assert.Equal(t, domain.DiscountTypeExclusive, dto.DiscountType)
	assert.Equal(t, 3, *dto.Conditions.MinBookings)
	assert.Equal(t, "2026-08-31", *dto.ValidTo)
	assert.Equal(t, []string{"agent-1"}, dto.EligibleAgents)
	assert.Equal(t, []string{}, dto.UsedAgents)
	assert.Equal(t, []string{}, dto.ApplicableHotels)
}

func TestToTourImageDTO_UsesDisplayRef(t *testing.T) {
	slot, err := tourplan.NewImageSlot(uuid.New(), domain.ImageGroupHotel, "", "pool.jpg")
	require.NoError(t, err)

	dto := mapper.ToTourImageDTO(&slot)
	assert.Equal(t, slot.LocalRef, dto.Ref)
	assert.Equal(t, domain.ImageStatePending, dto.State)

	require.NoError(t, tourplan.CommitImage(&slot, "https://cdn/pool.jpg", "https://cdn/pool_thumb.jpg"))
	dto = mapper.ToTourImageDTO(&slot)
	assert.Equal(t, "https://cdn/pool.jpg", dto.Ref)
	assert.Equal(t, "https://cdn/pool_thumb.jpg", dto.ThumbnailRef)
}

func TestToBookingDTO(t *testing.T) {
	tourID := uuid.New()
	booking := &domain.Booking{
		BaseModel:    domain.BaseModel{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		AgentID:      "agent-1",
		CustomerName: "Kari Nordmann",
		TourID:       &tourID,
		CheckIn:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:     time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		Guests:       2,
		NightsKey:    "3",
		TotalPrice:   1220,
		Status:       domain.BookingStatusPending,
	}

	dto := mapper.ToBookingDTO(booking)

	assert.Equal(t, "2026-09-01", dto.CheckIn)
	assert.Equal(t, "2026-09-04", dto.CheckOut)
	assert.Equal(t, &tourID, dto.TourID)
	assert.Equal(t, 1220.0, dto.TotalPrice)
}
