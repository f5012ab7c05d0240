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
	ErrEmptyTweet    = domain.E(domain.KindBadRequest, "Tweet content is required")
	ErrNotTweetOwner = domain.E(domain.KindUnauthorized, "Only the tweet owner can perform this action")
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
	}
}

func (s *TweetService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyTweet
	}

	tweet := &domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Tweet, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	return s.tweetRepo.ListByOwner(ctx, userID, limit, (page-1)*limit)
}

func (s *TweetService) Update(ctx context.Context, id, actorID uuid.UUID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyTweet
	}

	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if tweet.OwnerID != actorID {
		return nil, ErrNotTweetOwner
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now()
	if err := s.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *TweetService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return err
	}
	if tweet.OwnerID != actorID {
		return ErrNotTweetOwner
	}

	return s.tweetRepo.Delete(ctx, id)
}
