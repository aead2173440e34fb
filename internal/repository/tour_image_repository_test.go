package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/repository"
	"github.com/voyagedesk/travel-api/internal/testutil"
)

func TestTourImageRepository_PositionsAndListing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTourImageRepository(db)
	ctx := context.Background()

	tour := testutil.CreateTestTour(t, db, "Gallery")

	pos, err := repo.NextPosition(ctx, tour.ID, domain.ImageGroupDestination)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	for i, name := range []string{"a.jpg", "b.jpg"} {
		img := &domain.TourImage{
			TourID:   tour.ID,
			Group:    domain.ImageGroupDestination,
			Position: i,
			FileName: name,
			State:    domain.ImageStatePending,
		}
		require.NoError(t, repo.Create(ctx, img))
	}
	require.NoError(t, repo.Create(ctx, &domain.TourImage{
		TourID: tour.ID, Group: domain.ImageGroupHotel, FileName: "h.jpg", State: domain.ImageStatePending,
	}))

	pos, err = repo.NextPosition(ctx, tour.ID, domain.ImageGroupDestination)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	images, err := repo.ListByTour(ctx, tour.ID, domain.ImageGroupDestination)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "a.jpg", images[0].FileName)
	assert.Equal(t, "b.jpg", images[1].FileName)

	all, err := repo.ListByTour(ctx, tour.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	images[0].State = domain.ImageStateCommitted
	images[0].RemoteRef = "https://cdn.example.com/a.jpg"
	require.NoError(t, repo.Update(ctx, &images[0]))
	found, err := repo.GetByID(ctx, images[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ImageStateCommitted, found.State)

	require.NoError(t, repo.Delete(ctx, images[1].ID))
	require.NoError(t, repo.DeleteByTour(ctx, tour.ID))
	all, err = repo.ListByTour(ctx, tour.ID, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTourImageRepository_ListStalePending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTourImageRepository(db)
	ctx := context.Background()

	tour := testutil.CreateTestTour(t, db, "Stale")
	old := &domain.TourImage{TourID: tour.ID, Group: domain.ImageGroupTour, FileName: "old.jpg", State: domain.ImageStatePending}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, db.Model(old).Update("created_at", time.Now().UTC().Add(-2*time.Hour)).Error)

	fresh := &domain.TourImage{TourID: tour.ID, Group: domain.ImageGroupTour, FileName: "fresh.jpg", State: domain.ImageStatePending}
	require.NoError(t, repo.Create(ctx, fresh))

	done := &domain.TourImage{TourID: tour.ID, Group: domain.ImageGroupTour, FileName: "done.jpg", State: domain.ImageStateCommitted}
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, db.Model(done).Update("created_at", time.Now().UTC().Add(-2*time.Hour)).Error)

	stale, err := repo.ListStalePending(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID, stale[0].ID)
}
