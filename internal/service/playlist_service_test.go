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

func TestPlaylistService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	playlistService := service.NewPlaylistService(repos.Playlist, repos.Video, repos.User)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	playlist, err := playlistService.Create(ctx, owner.ID, "  Favorites  ", "my favorite videos")
	require.NoError(t, err)
	assert.Equal(t, "Favorites", playlist.Name)
	assert.Equal(t, owner.ID, playlist.OwnerID)

	// Name is required
	_, err = playlistService.Create(ctx, owner.ID, "   ", "")
	assert.ErrorIs(t, err, service.ErrPlaylistNameNeeded)
}

func TestPlaylistService_Membership(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	playlistService := service.NewPlaylistService(repos.Playlist, repos.Video, repos.User)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	playlist := testutil.SeedPlaylist(t, testDB.DB, owner, "watchlist")
	first := testutil.NewVideoBuilder().WithTitle("first").Build(t, testDB.DB)
	second := testutil.NewVideoBuilder().WithTitle("second").Build(t, testDB.DB)

	// Adding appends in order
	_, err := playlistService.AddVideo(ctx, playlist.ID, first.ID, owner.ID)
	require.NoError(t, err)
	updated, err := playlistService.AddVideo(ctx, playlist.ID, second.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, updated.Videos, 2)
	assert.Equal(t, first.ID, updated.Videos[0].VideoID)
	assert.Equal(t, second.ID, updated.Videos[1].VideoID)

	// Re-adding an existing video is a conflict, not a silent no-op
	_, err = playlistService.AddVideo(ctx, playlist.ID, first.ID, owner.ID)
	assert.ErrorIs(t, err, service.ErrVideoInPlaylist)

	// Only the owner may mutate membership
	_, err = playlistService.AddVideo(ctx, playlist.ID, first.ID, stranger.ID)
	assert.ErrorIs(t, err, service.ErrNotPlaylistOwner)

	// Removing a video that is present works
	updated, err = playlistService.RemoveVideo(ctx, playlist.ID, first.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, updated.Videos, 1)
	assert.Equal(t, second.ID, updated.Videos[0].VideoID)

	// Removing it again is not found
	_, err = playlistService.RemoveVideo(ctx, playlist.ID, first.ID, owner.ID)
	assert.ErrorIs(t, err, service.ErrVideoNotInPlaylist)

	// Unknown video
	_, err = playlistService.AddVideo(ctx, playlist.ID, uuid.New(), owner.ID)
	assert.ErrorIs(t, err, service.ErrVideoNotFound)

	// Unknown playlist
	_, err = playlistService.AddVideo(ctx, uuid.New(), first.ID, owner.ID)
	assert.ErrorIs(t, err, service.ErrPlaylistNotFound)
}

func TestPlaylistService_UpdateAndDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	playlistService := service.NewPlaylistService(repos.Playlist, repos.Video, repos.User)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	playlist := testutil.SeedPlaylist(t, testDB.DB, owner, "before")

	// Owner check on update
	_, err := playlistService.Update(ctx, playlist.ID, stranger.ID, "after", "")
	assert.ErrorIs(t, err, service.ErrNotPlaylistOwner)

	updated, err := playlistService.Update(ctx, playlist.ID, owner.ID, "after", "new description")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Name)
	assert.Equal(t, "new description", updated.Description)

	// Owner check on delete
	err = playlistService.Delete(ctx, playlist.ID, stranger.ID)
	assert.ErrorIs(t, err, service.ErrNotPlaylistOwner)

	require.NoError(t, playlistService.Delete(ctx, playlist.ID, owner.ID))

	_, err = playlistService.Get(ctx, playlist.ID)
	assert.ErrorIs(t, err, service.ErrPlaylistNotFound)
}

func TestPlaylistService_ListByUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	playlistService := service.NewPlaylistService(repos.Playlist, repos.Video, repos.User)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.SeedPlaylist(t, testDB.DB, owner, "one")
	testutil.SeedPlaylist(t, testDB.DB, owner, "two")
	testutil.SeedPlaylist(t, testDB.DB, other, "theirs")

	playlists, err := playlistService.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, playlists, 2)

	_, err = playlistService.ListByUser(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
