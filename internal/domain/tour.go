package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FoodCategoryKeys are the fixed meal plan slots of a tour
var FoodCategoryKeys = []string{"0", "1", "2"}

// IsFoodCategoryKey reports whether key is one of the fixed meal plan slots
func IsFoodCategoryKey(key string) bool {
	for _, k := range FoodCategoryKeys {
		if k == key {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the category as [add_price, old_add_price, available]
func (f FoodCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{f.AddPrice, f.OldAddPrice, f.Available})
}

// UnmarshalJSON accepts [add_price, old_add_price, available]. Prices may arrive
// as numbers or numeric strings; the flag as a bool or "true"/"false".
func (f *FoodCategory) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("food category must be an array: %w", err)
	}
	*f = FoodCategory{}
	if len(raw) > 0 {
		v, err := toFloat(raw[0])
		if err != nil {
			return fmt.Errorf("food category add_price: %w", err)
		}
		f.AddPrice = v
	}
	if len(raw) > 1 {
		v, err := toFloat(raw[1])
		if err != nil {
			return fmt.Errorf("food category old_add_price: %w", err)
		}
		f.OldAddPrice = v
	}
	if len(raw) > 2 {
		switch b := raw[2].(type) {
		case bool:
			f.Available = b
		case string:
			f.Available = strings.EqualFold(b, "true")
		case nil:
		default:
			return fmt.Errorf("food category available flag has type %T", raw[2])
		}
	}
	return nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, nil
		}
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// UnmarshalJSON accepts prices as numbers or numeric strings; "" leaves a price unset
func (o *NightsOption) UnmarshalJSON(data []byte) error {
	var raw struct {
		Option      string      `json:"option"`
		AddPrice    interface{} `json:"add_price"`
		OldAddPrice interface{} `json:"old_add_price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	addPrice, err := toOptionalFloat(raw.AddPrice)
	if err != nil {
		return fmt.Errorf("add_price: %w", err)
	}
	oldAddPrice, err := toOptionalFloat(raw.OldAddPrice)
	if err != nil {
		return fmt.Errorf("old_add_price: %w", err)
	}
	*o = NightsOption{Option: raw.Option, AddPrice: addPrice, OldAddPrice: oldAddPrice}
	return nil
}

func toOptionalFloat(v interface{}) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// IsComplete reports whether option text and both prices are present
func (o NightsOption) IsComplete() bool {
	return strings.TrimSpace(o.Option) != "" && o.AddPrice != nil && o.OldAddPrice != nil
}

// Equal compares two options field by field
func (o NightsOption) Equal(other NightsOption) bool {
	return o.Option == other.Option &&
		floatPtrEqual(o.AddPrice, other.AddPrice) &&
		floatPtrEqual(o.OldAddPrice, other.OldAddPrice)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DayKey returns the middle-day key for day n ("day_3")
func DayKey(n int) string {
	return "day_" + strconv.Itoa(n)
}

// ParseDayKey returns the day index of a "day_N" key
func ParseDayKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "day_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNightsKey returns the night count encoded in a nights key
func ParseNightsKey(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
