package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound = domain.E(domain.KindNotFound, "Video not found")
	ErrNotVideoOwner = domain.E(domain.KindUnauthorized, "Only the video owner can perform this action")
)

// FileUpload carries an incoming multipart file into the service layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	storage   media.Storage
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, storage media.Storage) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		storage:   storage,
	}
}

type PublishVideoInput struct {
	Title           string
	Description     string
	DurationSeconds float64
	VideoFile       FileUpload
	Thumbnail       FileUpload
}

// Publish uploads both assets before touching the database, so an upstream
// failure never leaves behind a video row with a missing media URL.
func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, input PublishVideoInput) (*domain.Video, error) {
	videoURL, err := s.upload(ctx, ownerID, "videos", input.VideoFile)
	if err != nil {
		return nil, err
	}

	thumbnailURL, err := s.upload(ctx, ownerID, "thumbnails", input.Thumbnail)
	if err != nil {
		_ = s.storage.Delete(ctx, videoURL)
		return nil, err
	}

	video := &domain.Video{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(input.Title),
		Description:     strings.TrimSpace(input.Description),
		VideoURL:        videoURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: input.DurationSeconds,
		IsPublished:     true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) upload(ctx context.Context, ownerID uuid.UUID, prefix string, file FileUpload) (string, error) {
	key := fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.New(), path.Ext(file.Filename))
	url, err := s.storage.Upload(ctx, key, file.ContentType, file.Content)
	if err != nil {
		return "", domain.Wrap(domain.KindUpstream, "Failed to upload media", err)
	}
	return url, nil
}

func (s *VideoService) Get(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *FileUpload
}

func (s *VideoService) Update(ctx context.Context, id, actorID uuid.UUID, input UpdateVideoInput) (*domain.Video, error) {
	video, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != actorID {
		return nil, ErrNotVideoOwner
	}

	if input.Title != "" {
		video.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		video.Description = strings.TrimSpace(input.Description)
	}
	if input.Thumbnail != nil {
		oldThumbnail := video.ThumbnailURL
		url, err := s.upload(ctx, video.OwnerID, "thumbnails", *input.Thumbnail)
		if err != nil {
			return nil, err
		}
		video.ThumbnailURL = url
		if oldThumbnail != "" {
			_ = s.storage.Delete(ctx, oldThumbnail)
		}
	}
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	video, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if video.OwnerID != actorID {
		return ErrNotVideoOwner
	}

	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Media cleanup is best effort; an orphaned object is preferable to a
	// dangling database row.
	_ = s.storage.Delete(ctx, video.VideoURL)
	_ = s.storage.Delete(ctx, video.ThumbnailURL)
	return nil
}

func (s *VideoService) ListByChannel(ctx context.Context, ownerID uuid.UUID, opts domain.VideoListOptions) ([]*domain.Video, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	videos, err := s.videoRepo.ListByOwner(ctx, ownerID, opts)
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *VideoService) TogglePublishStatus(ctx context.Context, id, actorID uuid.UUID) (*domain.Video, error) {
	video, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != actorID {
		return nil, ErrNotVideoOwner
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = time.Now()

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}
