package tourplan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/tourplan"
	"gorm.io/datatypes"
)

func pricedTour() *domain.Tour {
	return &domain.Tour{
		Price:       1000,
		OldPrice:    1300,
		PersonCount: 2,
		Nights: datatypes.NewJSONType(domain.NightsPricing{
			"3": {option("Std", 100, 150), option("Deluxe", 240.5, 300.25)},
		}),
		FoodCategory: datatypes.NewJSONType(domain.FoodCategories{
			"0": {AddPrice: 20, OldAddPrice: 30, Available: true},
			"1": {AddPrice: 35, OldAddPrice: 45, Available: false},
		}),
	}
}

func strPtr(s string) *string { return &s }

func TestComputeTotal_ExampleScenario(t *testing.T) {
	q, err := tourplan.ComputeTotal(pricedTour(), tourplan.Selection{
		NightsKey:    "3",
		OptionIndex:  0,
		FoodCategory: strPtr("0"),
	})

	require.NoError(t, err)
	assert.Equal(t, "1220", q.Total.String())
	assert.Equal(t, "1630", q.OldTotal.String())
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, "Std", q.Option)
}

func TestComputeTotal_WithoutFood(t *testing.T) {
	q, err := tourplan.ComputeTotal(pricedTour(), tourplan.Selection{NightsKey: "3", OptionIndex: 1})

	require.NoError(t, err)
	assert.Equal(t, "1240.5", q.Total.String())
	assert.Equal(t, "1600.25", q.OldTotal.String())
}

func TestComputeTotal_OldTotalOnlySwapsAddPrices(t *testing.T) {
	tour := pricedTour()
	tour.OldPrice = tour.Price

	q, err := tourplan.ComputeTotal(tour, tourplan.Selection{NightsKey: "3", FoodCategory: strPtr("0")})
	require.NoError(t, err)

	// 1000 + 150 + 30*3*2
	assert.Equal(t, "1330", q.OldTotal.String())
}

func TestComputeTotal_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sel     tourplan.Selection
		wantErr error
	}{
		{"unknown nights key", tourplan.Selection{NightsKey: "4"}, tourplan.ErrUnknownNightsKey},
		{"non numeric nights key", tourplan.Selection{NightsKey: "three"}, tourplan.ErrUnknownNightsKey},
		{"option index out of range", tourplan.Selection{NightsKey: "3", OptionIndex: 2}, tourplan.ErrOptionIndexOutOfRange},
		{"negative option index", tourplan.Selection{NightsKey: "3", OptionIndex: -1}, tourplan.ErrOptionIndexOutOfRange},
		{"unknown food category", tourplan.Selection{NightsKey: "3", FoodCategory: strPtr("7")}, tourplan.ErrUnknownFoodCategory},
		{"unavailable food category", tourplan.Selection{NightsKey: "3", FoodCategory: strPtr("1")}, tourplan.ErrFoodCategoryDisabled},
		{"unset food category", tourplan.Selection{NightsKey: "3", FoodCategory: strPtr("2")}, tourplan.ErrFoodCategoryDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tourplan.ComputeTotal(pricedTour(), tt.sel)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
