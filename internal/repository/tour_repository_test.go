package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/testutil"
	"gorm.io/gorm"
)

func setupTourTestDB(t *testing.T) *gorm.DB {
	return testutil.SetupTestDB(t)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestTourRepository_CreateAndGet(t *testing.T) {
	db := setupTourTestDB(t)
	repo := repository.NewTourRepository(db)
	ctx := context.Background()

	tour := testutil.NewTestTour("Dolomites")
	require.NoError(t, repo.Create(ctx, tour))
	assert.NotEqual(t, uuid.Nil, tour.ID)

	found, err := repo.GetByID(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dolomites", found.Title)
	assert.Equal(t, 2, found.PersonCount)
	assert.Equal(t, domain.StringList{"NO"}, found.Markets)

	nights := found.Nights.Data()
	require.Contains(t, nights, "3")
	require.Len(t, nights["3"], 1)
	assert.Equal(t, "Std", nights["3"][0].Option)
	require.NotNil(t, nights["3"][0].AddPrice)
	assert.Equal(t, 100.0, *nights["3"][0].AddPrice)

	food := found.FoodCategory.Data()
	assert.True(t, food["0"].Available)
	assert.False(t, food["1"].Available)

	itin := found.Itinerary.Data()
	assert.Equal(t, "Hike", itin.MiddleDays["day_2"])
}

func TestTourRepository_GetByID_NotFound(t *testing.T) {
	db := setupTourTestDB(t)
	repo := repository.NewTourRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTourRepository_UpdateAndDelete(t *testing.T) {
	db := setupTourTestDB(t)
	repo := repository.NewTourRepository(db)
	ctx := context.Background()

	tour := testutil.CreateTestTour(t, db, "Lakes")
	tour.Title = "Lakes and Hills"
	tour.Inclusions = domain.StringList{"Breakfast", "Guide"}
	require.NoError(t, repo.Update(ctx, tour))

	found, err := repo.GetByID(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lakes and Hills", found.Title)
	assert.Equal(t, domain.StringList{"Breakfast", "Guide"}, found.Inclusions)

	exists, err := repo.Exists(ctx, tour.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, tour.ID))
	exists, err = repo.Exists(ctx, tour.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTourRepository_ListWithSortConfig(t *testing.T) {
	db := setupTourTestDB(t)
	repo := repository.NewTourRepository(db)
	ctx := context.Background()

	a := testutil.NewTestTour("Alpine Trail")
	a.Country = "Austria"
	a.Price = 900
	a.Markets = domain.StringList{"NO", "SE"}
	require.NoError(t, repo.Create(ctx, a))

	b := testutil.NewTestTour("Coastal Walk")
	b.Country = "Portugal"
	b.Price = 1500
	b.Markets = domain.StringList{"DK"}
	require.NoError(t, repo.Create(ctx, b))

	c := testutil.NewTestTour("Old Town")
	c.Country = "Austria"
	c.Price = 1200
	c.ValidFrom = dayPtr(2026, 1, 1)
	c.ValidTo = dayPtr(2026, 3, 31)
	require.NoError(t, repo.Create(ctx, c))

	t.Run("all sorted by price ascending", func(t *testing.T) {
		tours, total, err := repo.ListWithSortConfig(ctx, 1, 10, nil, repository.SortConfig{Field: "price", Order: repository.SortOrderAsc})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, tours, 3)
		assert.Equal(t, "Alpine Trail", tours[0].Title)
		assert.Equal(t, "Coastal Walk", tours[2].Title)
	})

	t.Run("filter by country", func(t *testing.T) {
		tours, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.TourFilters{Country: "austria"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, tours, 2)
	})

	t.Run("filter by search", func(t *testing.T) {
		tours, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.TourFilters{Search: "coastal"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tours, 1)
		assert.Equal(t, b.ID, tours[0].ID)
	})

	t.Run("filter by market", func(t *testing.T) {
		tours, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.TourFilters{Market: "SE"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tours, 1)
		assert.Equal(t, a.ID, tours[0].ID)
	})

	t.Run("filter by valid day", func(t *testing.T) {
		tours, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.TourFilters{ValidOn: dayPtr(2026, 6, 1)}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, tour := range tours {
			assert.NotEqual(t, c.ID, tour.ID)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		tours, total, err := repo.ListWithSortConfig(ctx, 2, 2, nil, repository.SortConfig{Field: "title", Order: repository.SortOrderAsc})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, tours, 1)
		assert.Equal(t, "Old Town", tours[0].Title)
	})
}

func TestTourRepository_ListExpired(t *testing.T) {
	db := setupTourTestDB(t)
	repo := repository.NewTourRepository(db)
	ctx := context.Background()

	expired := testutil.NewTestTour("Expired")
	expired.ExpiryDate = dayPtr(2026, 5, 1)
	require.NoError(t, repo.Create(ctx, expired))

	current := testutil.NewTestTour("Current")
	current.ExpiryDate = dayPtr(2026, 12, 1)
	require.NoError(t, repo.Create(ctx, current))

	testutil.CreateTestTour(t, db, "No expiry")

	tours, err := repo.ListExpired(ctx, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, expired.ID, tours[0].ID)
}
