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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestDiscountRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewDiscountRepository(db)
	ctx := context.Background()

	minNights := 4
	hotelID := uuid.NewString()
	discount := &domain.Discount{
		Name:             "Summer",
		DiscountType:     domain.DiscountTypeExclusive,
		Value:            15,
		Active:           false,
		EligibleAgents:   domain.StringList{"agent-1"},
		ApplicableHotels: domain.StringList{hotelID},
	}
	discount.Conditions = datatypes.NewJSONType(domain.DiscountConditions{
		MinNights:      &minNights,
		SeasonalMonths: []int{6, 7},
	})
	require.NoError(t, repo.Create(ctx, discount))

	found, err := repo.GetByID(ctx, discount.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountTypeExclusive, found.DiscountType)
	assert.False(t, found.Active)
	assert.Equal(t, domain.StringList{"agent-1"}, found.EligibleAgents)
	assert.Equal(t, domain.StringList{hotelID}, found.ApplicableHotels)
	assert.Empty(t, found.UsedAgents)

	cond := found.Conditions.Data()
	require.NotNil(t, cond.MinNights)
	assert.Equal(t, 4, *cond.MinNights)
	assert.Equal(t, []int{6, 7}, cond.SeasonalMonths)
}

func TestDiscountRepository_ListWithSortConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewDiscountRepository(db)
	ctx := context.Background()

	testutil.CreateTestDiscount(t, db, "Early bird", domain.DiscountTypePercentage, domain.DiscountConditions{})
	testutil.CreateTestDiscount(t, db, "Winter sale", domain.DiscountTypeSeasonal, domain.DiscountConditions{SeasonalMonths: []int{12, 1}})
	inactive := testutil.CreateTestDiscount(t, db, "Retired", domain.DiscountTypePercentage, domain.DiscountConditions{})
	inactive.Active = false
	require.NoError(t, repo.Update(ctx, inactive))

	t.Run("by type", func(t *testing.T) {
		dt := domain.DiscountTypePercentage
		discounts, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.DiscountFilters{DiscountType: &dt}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, discounts, 2)
	})

	t.Run("active only", func(t *testing.T) {
		active := true
		_, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.DiscountFilters{Active: &active}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("search sorted by name", func(t *testing.T) {
		discounts, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.DiscountFilters{Search: "r"}, repository.SortConfig{Field: "name", Order: repository.SortOrderAsc})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, discounts, 3)
		assert.Equal(t, "Early bird", discounts[0].Name)
	})
}

func TestDiscountRepository_ListAll_CreationOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewDiscountRepository(db)
	ctx := context.Background()

	first := testutil.CreateTestDiscount(t, db, "First", domain.DiscountTypeLibert, domain.DiscountConditions{IsDefault: true})
	require.NoError(t, db.Model(first).Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)
	second := testutil.CreateTestDiscount(t, db, "Second", domain.DiscountTypePercentage, domain.DiscountConditions{})

	discounts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, discounts, 2)
	assert.Equal(t, first.ID, discounts[0].ID)
	assert.Equal(t, second.ID, discounts[1].ID)
}

func TestDiscountRepository_DeactivateExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewDiscountRepository(db)
	ctx := context.Background()

	expired := testutil.CreateTestDiscount(t, db, "Expired", domain.DiscountTypePercentage, domain.DiscountConditions{})
	expired.ValidTo = dayPtr(2026, 5, 31)
	require.NoError(t, repo.Update(ctx, expired))

	current := testutil.CreateTestDiscount(t, db, "Current", domain.DiscountTypePercentage, domain.DiscountConditions{})
	current.ValidTo = dayPtr(2026, 12, 31)
	require.NoError(t, repo.Update(ctx, current))

	testutil.CreateTestDiscount(t, db, "Open ended", domain.DiscountTypePercentage, domain.DiscountConditions{})

	count, err := repo.DeactivateExpired(ctx, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	found, err := repo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)

	found, err = repo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.True(t, found.Active)
}

func TestDiscountRepository_AddUsedAgent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewDiscountRepository(db)
	ctx := context.Background()

	discount := testutil.CreateTestDiscount(t, db, "Exclusive", domain.DiscountTypeExclusive, domain.DiscountConditions{})

	added, err := repo.AddUsedAgent(ctx, discount.ID, "agent-1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddUsedAgent(ctx, discount.ID, "agent-1")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = repo.AddUsedAgent(ctx, discount.ID, "agent-2")
	require.NoError(t, err)
	assert.True(t, added)

	found, err := repo.GetByID(ctx, discount.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StringList{"agent-1", "agent-2"}, found.UsedAgents)

	_, err = repo.AddUsedAgent(ctx, uuid.New(), "agent-1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
