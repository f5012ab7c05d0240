package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound   = domain.E(domain.KindNotFound, "Playlist not found")
	ErrNotPlaylistOwner   = domain.E(domain.KindUnauthorized, "Only the playlist owner can perform this action")
	ErrPlaylistNameNeeded = domain.E(domain.KindBadRequest, "Playlist name is required")
	ErrVideoInPlaylist    = domain.E(domain.KindConflict, "Video is already in the playlist")
	ErrVideoNotInPlaylist = domain.E(domain.KindNotFound, "Video is not in the playlist")
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlaylistNameNeeded
	}

	playlist := &domain.Playlist{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Get(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.playlistRepo.ListByOwner(ctx, userID)
}

func (s *PlaylistService) Update(ctx context.Context, id, actorID uuid.UUID, name, description string) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != actorID {
		return nil, ErrNotPlaylistOwner
	}

	if name != "" {
		playlist.Name = strings.TrimSpace(name)
	}
	if description != "" {
		playlist.Description = strings.TrimSpace(description)
	}
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	playlist, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if playlist.OwnerID != actorID {
		return ErrNotPlaylistOwner
	}

	return s.playlistRepo.Delete(ctx, id)
}

// AddVideo appends the video to the end of the playlist. Adding a video that
// is already present is a conflict, not a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, actorID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != actorID {
		return nil, ErrNotPlaylistOwner
	}

	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if _, err := s.playlistRepo.GetVideoEntry(ctx, playlistID, videoID); err == nil {
		return nil, ErrVideoInPlaylist
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	position, err := s.playlistRepo.NextPosition(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	entry := &domain.PlaylistVideo{
		ID:         uuid.New(),
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   position,
		CreatedAt:  time.Now(),
	}
	if err := s.playlistRepo.AddVideo(ctx, entry); err != nil {
		return nil, err
	}

	return s.Get(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, actorID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != actorID {
		return nil, ErrNotPlaylistOwner
	}

	if _, err := s.playlistRepo.GetVideoEntry(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotInPlaylist
		}
		return nil, err
	}

	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}

	return s.Get(ctx, playlistID)
}
