package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = domain.E(domain.KindNotFound, "Comment not found")
	ErrTweetNotFound   = domain.E(domain.KindNotFound, "Tweet not found")
)

// ToggleResult reports which side of the toggle ran.
type ToggleResult string

const (
	ToggleCreated ToggleResult = "created"
	ToggleDeleted ToggleResult = "deleted"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	toggles     *keyedMutex
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		toggles:     newKeyedMutex(),
	}
}

// ToggleVideoLike creates the like if absent and deletes it if present.
// Concurrent toggles on the same (user, video) pair are serialized, and the
// store's pair index backstops any duplicate create.
func (s *LikeService) ToggleVideoLike(ctx context.Context, userID, videoID uuid.UUID) (ToggleResult, error) {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrVideoNotFound
		}
		return "", err
	}

	return s.toggle(ctx, userID, videoID,
		func() (*domain.Like, error) { return s.likeRepo.GetForVideo(ctx, userID, videoID) },
		&domain.Like{ID: uuid.New(), LikedByID: userID, VideoID: &videoID, CreatedAt: time.Now()},
	)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (ToggleResult, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCommentNotFound
		}
		return "", err
	}

	return s.toggle(ctx, userID, commentID,
		func() (*domain.Like, error) { return s.likeRepo.GetForComment(ctx, userID, commentID) },
		&domain.Like{ID: uuid.New(), LikedByID: userID, CommentID: &commentID, CreatedAt: time.Now()},
	)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, userID, tweetID uuid.UUID) (ToggleResult, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTweetNotFound
		}
		return "", err
	}

	return s.toggle(ctx, userID, tweetID,
		func() (*domain.Like, error) { return s.likeRepo.GetForTweet(ctx, userID, tweetID) },
		&domain.Like{ID: uuid.New(), LikedByID: userID, TweetID: &tweetID, CreatedAt: time.Now()},
	)
}

func (s *LikeService) toggle(ctx context.Context, userID, targetID uuid.UUID, lookup func() (*domain.Like, error), fresh *domain.Like) (ToggleResult, error) {
	unlock := s.toggles.Lock(userID.String() + ":" + targetID.String())
	defer unlock()

	existing, err := lookup()
	if err == nil {
		if err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		return ToggleDeleted, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if err := s.likeRepo.Create(ctx, fresh); err != nil {
		return "", err
	}
	return ToggleCreated, nil
}

// GetLikedVideos lists the videos the user has liked, newest like first.
func (s *LikeService) GetLikedVideos(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	likes, err := s.likeRepo.ListVideoLikes(ctx, userID)
	if err != nil {
		return nil, err
	}

	videos := make([]*domain.Video, 0, len(likes))
	for _, like := range likes {
		if like.Video != nil {
			videos = append(videos, like.Video)
		}
	}
	return videos, nil
}
