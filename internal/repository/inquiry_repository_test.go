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

func TestInquiryRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInquiryRepository(db)
	ctx := context.Background()

	tour := testutil.CreateTestTour(t, db, "Northern Lights")

	first := &domain.Inquiry{Name: "Ola", Email: "ola@example.com", Message: "Is the tour family friendly?", TourID: &tour.ID, Status: domain.InquiryStatusOpen}
	second := &domain.Inquiry{Name: "Eva", Email: "eva@example.com", Message: "Group prices?", Status: domain.InquiryStatusOpen}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	second.Status = domain.InquiryStatusAnswered
	require.NoError(t, repo.Update(ctx, second))

	t.Run("by status", func(t *testing.T) {
		status := domain.InquiryStatusOpen
		inquiries, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.InquiryFilters{Status: &status}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, inquiries, 1)
		assert.Equal(t, first.ID, inquiries[0].ID)
	})

	t.Run("by tour", func(t *testing.T) {
		_, total, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.InquiryFilters{TourID: &tour.ID}, repository.DefaultSortConfig())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("search message", func(t *testing.T) {
		inquiries, _, err := repo.ListWithSortConfig(ctx, 1, 10, &repository.InquiryFilters{Search: "group"}, repository.DefaultSortConfig())
		require.NoError(t, err)
		require.Len(t, inquiries, 1)
		assert.Equal(t, second.ID, inquiries[0].ID)
	})

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err := repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
