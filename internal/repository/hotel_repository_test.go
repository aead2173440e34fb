package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/testutil"
	"gorm.io/gorm"
)

func TestHotelRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewHotelRepository(db)
	ctx := context.Background()

	hotel := &domain.Hotel{
		Name:    "Grand Alpine",
		Country: "Switzerland",
		City:    "Zermatt",
		Stars:   5,
		Images:  domain.StringList{"https://cdn.example.com/a.jpg"},
		Active:  true,
	}
	require.NoError(t, repo.Create(ctx, hotel))

	found, err := repo.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand Alpine", found.Name)
	assert.Equal(t, domain.StringList{"https://cdn.example.com/a.jpg"}, found.Images)

	found.Active = false
	require.NoError(t, repo.Update(ctx, found))

	found, err = repo.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)

	testutil.CreateTestRoom(t, db, hotel.ID, "Double")
	require.NoError(t, repo.Delete(ctx, hotel.ID))

	_, err = repo.GetByID(ctx, hotel.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rooms, err := repository.NewRoomRepository(db).ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestHotelRepository_ListWithSortConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewHotelRepository(db)
	ctx := context.Background()

	testutil.CreateTestHotel(t, db, "Bryggen Inn")
	testutil.CreateTestHotel(t, db, "Fløyen Lodge")
	oslo := testutil.CreateTestHotel(t, db, "Opera Suites")
	oslo.City = "Oslo"
	oslo.Active = false
	require.NoError(t, repo.Update(ctx, oslo))

	t.Run("by city", func(t *testing.T) {
		hotels, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.HotelFilters{City: "bergen"}, repository.SortConfig{Field: "name", Order: repository.SortOrderAsc})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, hotels, 2)
		assert.Equal(t, "Bryggen Inn", hotels[0].Name)
	})

	t.Run("active only", func(t *testing.T) {
		active := true
		_, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.HotelFilters{Active: &active}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("search", func(t *testing.T) {
		hotels, _, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.HotelFilters{Search: "opera"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, oslo.ID, hotels[0].ID)
	})
}

func TestRoomRepository_ListByHotel(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRoomRepository(db)
	ctx := context.Background()

	hotel := testutil.CreateTestHotel(t, db, "Harbour")
	other := testutil.CreateTestHotel(t, db, "Other")
	testutil.CreateTestRoom(t, db, hotel.ID, "Suite")
	testutil.CreateTestRoom(t, db, hotel.ID, "Double")
	testutil.CreateTestRoom(t, db, other.ID, "Single")

	rooms, err := repo.ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Double", rooms[0].Name)
	assert.Equal(t, "Suite", rooms[1].Name)

	rooms[0].Available = false
	require.NoError(t, repo.Update(ctx, &rooms[0]))
	found, err := repo.GetByID(ctx, rooms[0].ID)
	require.NoError(t, err)
	assert.False(t, found.Available)

	require.NoError(t, repo.Delete(ctx, rooms[0].ID))
	rooms, err = repo.ListByHotel(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}
