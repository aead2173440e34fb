package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/database"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory SQLite database with the schema migrated.
// Every call gets its own database, so tests do not need cleanup between runs.
func SetupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "Failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func floatPtr(v float64) *float64 { return &v }

// CreateTestHotel creates a hotel and returns it
func CreateTestHotel(t *testing.T, db *gorm.DB, name string) *domain.Hotel {
	hotel := &domain.Hotel{
		Name:    name,
		Country: "Norway",
		City:    "Bergen",
		Stars:   4,
		Active:  true,
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

// CreateTestRoom creates a room in hotel and returns it
func CreateTestRoom(t *testing.T, db *gorm.DB, hotelID uuid.UUID, name string) *domain.Room {
	room := &domain.Room{
		HotelID:       hotelID,
		Name:          name,
		Capacity:      2,
		PricePerNight: 120,
		Available:     true,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

// NewTestTour builds the reference tour: 3 nights with one option, meal plan 0
// available, two persons, price 1000 / 1300, middle days day_2 and day_3.
func NewTestTour(title string) *domain.Tour {
	return &domain.Tour{
		Title:       title,
		Price:       1000,
		OldPrice:    1300,
		PersonCount: 2,
		Nights: datatypes.NewJSONType(domain.NightsPricing{
			"3": {{Option: "Std", AddPrice: floatPtr(100), OldAddPrice: floatPtr(150)}},
		}),
		FoodCategory: datatypes.NewJSONType(domain.FoodCategories{
			"0": {AddPrice: 20, OldAddPrice: 30, Available: true},
			"1": {AddPrice: 0, OldAddPrice: 0, Available: false},
			"2": {AddPrice: 0, OldAddPrice: 0, Available: false},
		}),
		Country: "Italy",
		Markets: domain.StringList{"NO"},
		Itinerary: datatypes.NewJSONType(domain.Itinerary{
			FirstDay:   "Arrival",
			MiddleDays: map[string]string{"day_2": "Hike", "day_3": "Lake"},
			LastDay:    "Departure",
		}),
		ItineraryTitles: datatypes.NewJSONType(domain.ItineraryTitles{
			MiddleDays: map[string]string{"day_2": "Hike", "day_3": "Lake"},
		}),
		ItineraryImages: datatypes.NewJSONType(domain.ItineraryImages{
			FirstDay:   []string{},
			MiddleDays: map[string][]string{"day_2": {}, "day_3": {}},
			LastDay:    []string{},
		}),
	}
}

// CreateTestTour persists NewTestTour(title)
func CreateTestTour(t *testing.T, db *gorm.DB, title string) *domain.Tour {
	tour := NewTestTour(title)
	require.NoError(t, db.Create(tour).Error)
	return tour
}

// CreateTestDiscount creates an active discount of the given type
func CreateTestDiscount(t *testing.T, db *gorm.DB, name string, discountType domain.DiscountType, cond domain.DiscountConditions) *domain.Discount {
	discount := &domain.Discount{
		Name:         name,
		DiscountType: discountType,
		Value:        10,
		Conditions:   datatypes.NewJSONType(cond),
		Active:       true,
	}
	require.NoError(t, db.Create(discount).Error)
	return discount
}

// CreateTestBooking creates a confirmed booking for agentID
func CreateTestBooking(t *testing.T, db *gorm.DB, agentID string) *domain.Booking {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		AgentID:      agentID,
		CustomerName: "Test Customer",
		CheckIn:      checkIn,
		CheckOut:     checkIn.AddDate(0, 0, 3),
		Guests:       2,
		TotalPrice:   500,
		Status:       domain.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}
