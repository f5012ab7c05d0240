package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/testutil"
)

func TestDashboardService_GetChannelStats(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dashService := service.NewDashboardService(repos.User, repos.Video, repos.Subscription, repos.Like, repos.Comment)
	likeService := service.NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	viewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// A brand-new channel reports zeros across the board
	stats, err := dashService.GetChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalVideos)
	assert.Equal(t, int64(0), stats.TotalSubscribers)
	assert.Equal(t, int64(0), stats.TotalLikes)
	assert.Equal(t, int64(0), stats.TotalViews)
	assert.Equal(t, int64(0), stats.TotalComments)

	// Seed activity
	first := testutil.NewVideoBuilder().WithOwner(owner).WithViews(100).Build(t, testDB.DB)
	second := testutil.NewVideoBuilder().WithOwner(owner).WithViews(50).Build(t, testDB.DB)
	testutil.SeedSubscription(t, testDB.DB, viewer, owner)
	testutil.SeedComment(t, testDB.DB, viewer, first, "great")
	testutil.SeedComment(t, testDB.DB, viewer, second, "also great")

	_, err = likeService.ToggleVideoLike(ctx, owner.ID, first.ID)
	require.NoError(t, err)

	stats, err = dashService.GetChannelStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.TotalSubscribers)
	assert.Equal(t, int64(1), stats.TotalLikes)
	assert.Equal(t, int64(150), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalComments)

	// Unknown channel
	_, err = dashService.GetChannelStats(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrChannelNotFound)
}

func TestDashboardService_GetChannelVideos(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	dashService := service.NewDashboardService(repos.User, repos.Video, repos.Subscription, repos.Like, repos.Comment)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.NewVideoBuilder().WithOwner(owner).Build(t, testDB.DB)
	unpublished := testutil.NewVideoBuilder().WithOwner(owner).Unpublished().Build(t, testDB.DB)

	// The dashboard listing includes unpublished videos
	videos, err := dashService.GetChannelVideos(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	found := false
	for _, v := range videos {
		if v.ID == unpublished.ID {
			found = true
		}
	}
	assert.True(t, found, "unpublished video missing from dashboard listing")

	// Pagination
	videos, err = dashService.GetChannelVideos(ctx, owner.ID, 1, 1)
	require.NoError(t, err)
	assert.Len(t, videos, 1)
}
