// Package tourplan keeps a tour's nights pricing, meal plans and itinerary
// consistent while an administrator edits it, and computes customer totals.
package tourplan

import (
	"errors"
	"maps"
	"slices"
	"sort"
	"strconv"

	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/datatypes"
)

var (
	ErrLastNightOption       = errors.New("a tour must keep at least one nights option")
	ErrInvalidNights         = errors.New("nights must be a positive number")
	ErrUnknownNightsKey      = errors.New("nights key not found")
	ErrInvalidNightsOption   = errors.New("option, add_price and old_add_price are required")
	ErrNightsOptionNotFound  = errors.New("nights option not found")
	ErrUnknownFoodCategory   = errors.New("unknown food category")
	ErrFoodCategoryDisabled  = errors.New("food category is not available")
	ErrOptionIndexOutOfRange = errors.New("option index out of range")
)

// Draft is the editable pricing and itinerary state of one tour
type Draft struct {
	Nights       domain.NightsPricing
	FoodCategory domain.FoodCategories
	Itinerary    domain.Itinerary
	Images       domain.ItineraryImages
	Titles       domain.ItineraryTitles

	// Selected is the confirmed nights key
	Selected string
}

// NewDraft copies the editable parts of t. The selection starts at the largest nights key.
func NewDraft(t *domain.Tour) *Draft {
	d := &Draft{
		Nights:       copyNights(t.Nights.Data()),
		FoodCategory: maps.Clone(t.FoodCategory.Data()),
		Itinerary:    copyItinerary(t.Itinerary.Data()),
		Images:       copyImages(t.ItineraryImages.Data()),
		Titles:       copyTitles(t.ItineraryTitles.Data()),
	}
	if d.FoodCategory == nil {
		d.FoodCategory = domain.FoodCategories{}
	}
	if n, ok := d.maxNights(); ok {
		d.Selected = strconv.Itoa(n)
	}
	return d
}

// Apply writes the draft back onto t
func (d *Draft) Apply(t *domain.Tour) {
	t.Nights = datatypes.NewJSONType(copyNights(d.Nights))
	t.FoodCategory = datatypes.NewJSONType(maps.Clone(d.FoodCategory))
	t.Itinerary = datatypes.NewJSONType(copyItinerary(d.Itinerary))
	t.ItineraryImages = datatypes.NewJSONType(copyImages(d.Images))
	t.ItineraryTitles = datatypes.NewJSONType(copyTitles(d.Titles))
}

// ConfirmNights grows the middle days up to day_n and makes n the selected key.
// Existing days are never removed here, and no other pricing group is touched.
func (d *Draft) ConfirmNights(n int) error {
	if n < 1 {
		return ErrInvalidNights
	}

	for i := d.maxMiddleDay() + 1; i <= n; i++ {
		key := domain.DayKey(i)
		d.Itinerary.MiddleDays[key] = ""
		d.Titles.MiddleDays[key] = ""
		d.Images.MiddleDays[key] = []string{}
	}

	key := strconv.Itoa(n)
	if _, ok := d.Nights[key]; !ok {
		d.Nights[key] = []domain.NightsOption{}
	}
	d.Selected = key
	return nil
}

// RemoveNightOption deletes a nights pricing group. Removing the largest key also
// trims middle days beyond the new largest key and moves the selection there.
func (d *Draft) RemoveNightOption(key string) error {
	if _, ok := d.Nights[key]; !ok {
		return ErrUnknownNightsKey
	}
	if len(d.Nights) <= 1 {
		return ErrLastNightOption
	}

	oldMax, _ := d.maxNights()
	delete(d.Nights, key)
	newMax, ok := d.maxNights()

	removed, _ := domain.ParseNightsKey(key)
	if ok && removed == oldMax && removed > newMax {
		d.trimDaysAfter(newMax)
		d.Selected = strconv.Itoa(newMax)
	} else if d.Selected == key && ok {
		d.Selected = strconv.Itoa(newMax)
	}
	return nil
}

// AddNightsOption appends a complete option to the group for key
func (d *Draft) AddNightsOption(key string, option domain.NightsOption) error {
	if n, ok := domain.ParseNightsKey(key); !ok || n < 1 {
		return ErrUnknownNightsKey
	}
	if !option.IsComplete() {
		return ErrInvalidNightsOption
	}
	d.Nights[key] = append(d.Nights[key], option)
	return nil
}

// ReplaceNightsOption swaps the first option in key's group that equals old
func (d *Draft) ReplaceNightsOption(key string, old, replacement domain.NightsOption) error {
	group, ok := d.Nights[key]
	if !ok {
		return ErrUnknownNightsKey
	}
	if !replacement.IsComplete() {
		return ErrInvalidNightsOption
	}
	i := slices.IndexFunc(group, old.Equal)
	if i < 0 {
		return ErrNightsOptionNotFound
	}
	group[i] = replacement
	return nil
}

// RemoveNightsOptionAt drops the option at index from key's group
func (d *Draft) RemoveNightsOptionAt(key string, index int) error {
	group, ok := d.Nights[key]
	if !ok {
		return ErrUnknownNightsKey
	}
	if index < 0 || index >= len(group) {
		return ErrNightsOptionNotFound
	}
	d.Nights[key] = slices.Delete(group, index, index+1)
	return nil
}

// FoodCategoryEdit carries the fields to change; nil fields are left as they are
type FoodCategoryEdit struct {
	AddPrice    *float64
	OldAddPrice *float64
	Available   *bool
}

// SetFoodCategory edits one meal plan slot
func (d *Draft) SetFoodCategory(key string, edit FoodCategoryEdit) error {
	if !domain.IsFoodCategoryKey(key) {
		return ErrUnknownFoodCategory
	}
	fc := d.FoodCategory[key]
	if edit.AddPrice != nil {
		fc.AddPrice = *edit.AddPrice
	}
	if edit.OldAddPrice != nil {
		fc.OldAddPrice = *edit.OldAddPrice
	}
	if edit.Available != nil {
		fc.Available = *edit.Available
	}
	d.FoodCategory[key] = fc
	return nil
}

// AvailableFoodCategories lists the meal plan keys offered on the public page
func (d *Draft) AvailableFoodCategories() []string {
	return AvailableFoodCategories(d.FoodCategory)
}

// AvailableFoodCategories lists the keys of categories whose flag is set, in key order
func AvailableFoodCategories(categories domain.FoodCategories) []string {
	keys := []string{}
	for _, k := range domain.FoodCategoryKeys {
		if fc, ok := categories[k]; ok && fc.Available {
			keys = append(keys, k)
		}
	}
	return keys
}

// MiddleDayKeys returns the middle day keys in day order
func (d *Draft) MiddleDayKeys() []string {
	type entry struct {
		key string
		n   int
	}
	entries := make([]entry, 0, len(d.Itinerary.MiddleDays))
	for k := range d.Itinerary.MiddleDays {
		if n, ok := domain.ParseDayKey(k); ok {
			entries = append(entries, entry{k, n})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].n < entries[j].n })

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}

// maxMiddleDay is the largest day index across the three parallel maps, at least 1
func (d *Draft) maxMiddleDay() int {
	highest := 1
	for _, m := range []map[string]struct{}{
		keySet(d.Itinerary.MiddleDays),
		keySet(d.Titles.MiddleDays),
		keySet(d.Images.MiddleDays),
	} {
		for k := range m {
			if n, ok := domain.ParseDayKey(k); ok && n > highest {
				highest = n
			}
		}
	}
	return highest
}

func (d *Draft) maxNights() (int, bool) {
	highest, found := 0, false
	for k := range d.Nights {
		if n, ok := domain.ParseNightsKey(k); ok && (!found || n > highest) {
			highest, found = n, true
		}
	}
	return highest, found
}

func (d *Draft) trimDaysAfter(n int) {
	for k := range d.Itinerary.MiddleDays {
		if i, ok := domain.ParseDayKey(k); ok && i > n {
			delete(d.Itinerary.MiddleDays, k)
		}
	}
	for k := range d.Titles.MiddleDays {
		if i, ok := domain.ParseDayKey(k); ok && i > n {
			delete(d.Titles.MiddleDays, k)
		}
	}
	for k := range d.Images.MiddleDays {
		if i, ok := domain.ParseDayKey(k); ok && i > n {
			delete(d.Images.MiddleDays, k)
		}
	}
}

func keySet[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func copyNights(in domain.NightsPricing) domain.NightsPricing {
	out := make(domain.NightsPricing, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
		if out[k] == nil {
			out[k] = []domain.NightsOption{}
		}
	}
	return out
}

func copyItinerary(in domain.Itinerary) domain.Itinerary {
	out := in
	out.MiddleDays = maps.Clone(in.MiddleDays)
	if out.MiddleDays == nil {
		out.MiddleDays = map[string]string{}
	}
	return out
}

func copyTitles(in domain.ItineraryTitles) domain.ItineraryTitles {
	out := in
	out.MiddleDays = maps.Clone(in.MiddleDays)
	if out.MiddleDays == nil {
		out.MiddleDays = map[string]string{}
	}
	return out
}

func copyImages(in domain.ItineraryImages) domain.ItineraryImages {
	out := domain.ItineraryImages{
		FirstDay:   slices.Clone(in.FirstDay),
		LastDay:    slices.Clone(in.LastDay),
		MiddleDays: make(map[string][]string, len(in.MiddleDays)),
	}
	for k, v := range in.MiddleDays {
		out.MiddleDays[k] = slices.Clone(v)
	}
	return out
}
