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

func TestLikeService_ToggleVideoLike(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	likeService := service.NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().Build(t, testDB.DB)

	// First toggle creates the like
	result, err := likeService.ToggleVideoLike(ctx, user.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleCreated, result)

	// Second toggle removes it
	result, err = likeService.ToggleVideoLike(ctx, user.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleDeleted, result)

	// Third toggle creates it again
	result, err = likeService.ToggleVideoLike(ctx, user.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleCreated, result)

	// Unknown video
	_, err = likeService.ToggleVideoLike(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestLikeService_ToggleCommentLike(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	likeService := service.NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().WithOwner(user).Build(t, testDB.DB)
	comment := testutil.SeedComment(t, testDB.DB, user, video, "nice video")

	result, err := likeService.ToggleCommentLike(ctx, user.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleCreated, result)

	result, err = likeService.ToggleCommentLike(ctx, user.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleDeleted, result)

	_, err = likeService.ToggleCommentLike(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}

func TestLikeService_ToggleTweetLike(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	likeService := service.NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	tweet := testutil.SeedTweet(t, testDB.DB, user, "hello world")

	result, err := likeService.ToggleTweetLike(ctx, user.ID, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleCreated, result)

	result, err = likeService.ToggleTweetLike(ctx, user.ID, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleDeleted, result)

	_, err = likeService.ToggleTweetLike(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrTweetNotFound)
}

func TestLikeService_LikesAreIndependentPerTarget(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	likeService := service.NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().WithOwner(user).Build(t, testDB.DB)
	comment := testutil.SeedComment(t, testDB.DB, user, video, "first")

	// Liking a video does not affect the comment like, and vice versa
	result, err := likeService.ToggleVideoLike(ctx, user.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleCreated, result)

	result, err = likeService.ToggleCommentLike(ctx, user.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleCreated, result)

	result, err = likeService.ToggleVideoLike(ctx, user.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, service.ToggleDeleted, result)
}

func TestLikeService_GetLikedVideos(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	likeService := service.NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	first := testutil.NewVideoBuilder().WithTitle("first").Build(t, testDB.DB)
	second := testutil.NewVideoBuilder().WithTitle("second").Build(t, testDB.DB)
	unliked := testutil.NewVideoBuilder().WithTitle("unliked").Build(t, testDB.DB)

	_, err := likeService.ToggleVideoLike(ctx, user.ID, first.ID)
	require.NoError(t, err)
	_, err = likeService.ToggleVideoLike(ctx, user.ID, second.ID)
	require.NoError(t, err)

	videos, err := likeService.GetLikedVideos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	ids := []uuid.UUID{videos[0].ID, videos[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
	assert.NotContains(t, ids, unliked.ID)

	// Unliking removes the video from the listing
	_, err = likeService.ToggleVideoLike(ctx, user.ID, first.ID)
	require.NoError(t, err)

	videos, err = likeService.GetLikedVideos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, second.ID, videos[0].ID)
}
