package tourplan

import (
	"github.com/shopspring/decimal"
	"github.com/voyagedesk/travel-api/internal/domain"
)

// Selection is what a customer picked on the tour page
type Selection struct {
	NightsKey   string
	OptionIndex int
	// FoodCategory is nil when no meal plan is selected
	FoodCategory *string
}

// Quote is the computed price of a selection
type Quote struct {
	NightsKey    string
	Nights       int
	PersonCount  int
	Option       string
	FoodCategory *string
	Total        decimal.Decimal
	OldTotal     decimal.Decimal
}

// ComputeTotal prices a selection:
//
//	total    = price    + add_price     + food.add_price     * nights * person_count
//	oldTotal = oldPrice + old_add_price + food.old_add_price * nights * person_count
//
// The food term is left out when no category is selected.
func ComputeTotal(t *domain.Tour, sel Selection) (Quote, error) {
	nights, ok := domain.ParseNightsKey(sel.NightsKey)
	if !ok {
		return Quote{}, ErrUnknownNightsKey
	}
	group, ok := t.Nights.Data()[sel.NightsKey]
	if !ok {
		return Quote{}, ErrUnknownNightsKey
	}
	if sel.OptionIndex < 0 || sel.OptionIndex >= len(group) {
		return Quote{}, ErrOptionIndexOutOfRange
	}
	option := group[sel.OptionIndex]

	total := decimal.NewFromFloat(t.Price).Add(optionalDecimal(option.AddPrice))
	oldTotal := decimal.NewFromFloat(t.OldPrice).Add(optionalDecimal(option.OldAddPrice))

	if sel.FoodCategory != nil {
		if !domain.IsFoodCategoryKey(*sel.FoodCategory) {
			return Quote{}, ErrUnknownFoodCategory
		}
		fc, ok := t.FoodCategory.Data()[*sel.FoodCategory]
		if !ok || !fc.Available {
			return Quote{}, ErrFoodCategoryDisabled
		}
		factor := decimal.NewFromInt(int64(nights) * int64(t.PersonCount))
		total = total.Add(decimal.NewFromFloat(fc.AddPrice).Mul(factor))
		oldTotal = oldTotal.Add(decimal.NewFromFloat(fc.OldAddPrice).Mul(factor))
	}

	return Quote{
		NightsKey:    sel.NightsKey,
		Nights:       nights,
		PersonCount:  t.PersonCount,
		Option:       option.Option,
		FoodCategory: sel.FoodCategory,
		Total:        total.Round(2),
		OldTotal:     oldTotal.Round(2),
	}, nil
}

func optionalDecimal(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
