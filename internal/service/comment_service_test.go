package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/testutil"
)

func TestCommentService_Add(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Video)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().Build(t, testDB.DB)

	comment, err := commentService.Add(ctx, video.ID, user.ID, "  well said  ")
	require.NoError(t, err)
	assert.Equal(t, "well said", comment.Content)
	assert.Equal(t, video.ID, comment.VideoID)

	// Blank content
	_, err = commentService.Add(ctx, video.ID, user.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyComment)

	// Unknown video
	_, err = commentService.Add(ctx, uuid.New(), user.ID, "hello")
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestCommentService_ListByVideo(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Video)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().Build(t, testDB.DB)
	other := testutil.NewVideoBuilder().Build(t, testDB.DB)

	for i := 0; i < 15; i++ {
		_, err := commentService.Add(ctx, video.ID, user.ID, fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}
	testutil.SeedComment(t, testDB.DB, user, other, "elsewhere")

	// Default page size is 10
	comments, err := commentService.ListByVideo(ctx, video.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 10)

	// Second page holds the remainder
	comments, err = commentService.ListByVideo(ctx, video.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, comments, 5)

	// Owners are loaded for projection
	require.NotNil(t, comments[0].Owner)
	assert.Equal(t, user.Username, comments[0].Owner.Username)

	// Unknown video
	_, err = commentService.ListByVideo(ctx, uuid.New(), 1, 10)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)
}

func TestCommentService_UpdateAndDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	commentService := service.NewCommentService(repos.Comment, repos.Video)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().Build(t, testDB.DB)
	comment := testutil.SeedComment(t, testDB.DB, owner, video, "original")

	// Only the author may edit
	_, err := commentService.Update(ctx, comment.ID, stranger.ID, "defaced")
	assert.ErrorIs(t, err, service.ErrNotCommentOwner)

	updated, err := commentService.Update(ctx, comment.ID, owner.ID, "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)

	// Only the author may delete
	err = commentService.Delete(ctx, comment.ID, stranger.ID)
	assert.ErrorIs(t, err, service.ErrNotCommentOwner)

	require.NoError(t, commentService.Delete(ctx, comment.ID, owner.ID))

	_, err = commentService.Update(ctx, comment.ID, owner.ID, "too late")
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}
