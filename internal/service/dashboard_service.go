package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardService struct {
	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	subRepo     repository.SubscriptionRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func NewDashboardService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository, likeRepo repository.LikeRepository, commentRepo repository.CommentRepository) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		subRepo:     subRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// ChannelStats is the dashboard aggregate for a channel. Every counter is a
// plain COUNT/SUM: a channel with no activity reports zeros, never an error.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalViews       int64 `json:"totalViews"`
	TotalComments    int64 `json:"totalComments"`
}

func (s *DashboardService) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*ChannelStats, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	var stats ChannelStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.videoRepo.CountByOwner(ctx, ownerID)
		stats.TotalVideos = n
		return err
	})
	g.Go(func() error {
		n, err := s.subRepo.CountByChannel(ctx, ownerID)
		stats.TotalSubscribers = n
		return err
	})
	g.Go(func() error {
		n, err := s.likeRepo.CountByLiker(ctx, ownerID)
		stats.TotalLikes = n
		return err
	})
	g.Go(func() error {
		n, err := s.videoRepo.SumViewsByOwner(ctx, ownerID)
		stats.TotalViews = n
		return err
	})
	g.Go(func() error {
		n, err := s.commentRepo.CountByVideoOwner(ctx, ownerID)
		stats.TotalComments = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetChannelVideos lists every video the channel has uploaded, including
// unpublished ones, newest first.
func (s *DashboardService) GetChannelVideos(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*domain.Video, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	return s.videoRepo.ListByOwner(ctx, ownerID, domain.VideoListOptions{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
}
