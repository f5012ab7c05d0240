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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrChannelNotFound = domain.E(domain.KindNotFound, "Channel not found")

type UserService struct {
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
	storage   media.Storage
}

func NewUserService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository, storage media.Storage) *UserService {
	return &UserService{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		subRepo:   subRepo,
		storage:   storage,
	}
}

// ChannelProfile is the aggregate view of a channel as seen by a viewer.
type ChannelProfile struct {
	User              *domain.User
	SubscriberCount   int64
	SubscribedToCount int64
	IsSubscribed      bool
}

func (s *UserService) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*ChannelProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subscriberCount, err := s.subRepo.CountByChannel(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	subscribedToCount, err := s.subRepo.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != uuid.Nil {
		if _, err := s.subRepo.Get(ctx, viewerID, user.ID); err == nil {
			isSubscribed = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return &ChannelProfile{
		User:              user,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
	}, nil
}

// GetWatchHistory resolves the user's ordered video id list into full video
// records. The stored order is most-recent-first and is preserved; ids whose
// videos have since been deleted are skipped.
func (s *UserService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Video, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ids := []uuid.UUID(user.WatchHistory)
	if len(ids) == 0 {
		return []*domain.Video{}, nil
	}

	videos, err := s.videoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]*domain.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// RecordWatch prepends the video to the viewer's history and bumps the view
// counter. A rewatch moves the video to the front instead of duplicating it.
func (s *UserService) RecordWatch(ctx context.Context, userID, videoID uuid.UUID) error {
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	history := make([]uuid.UUID, 0, len(user.WatchHistory)+1)
	history = append(history, videoID)
	for _, id := range user.WatchHistory {
		if id != videoID {
			history = append(history, id)
		}
	}
	user.WatchHistory = datatypes.NewJSONSlice(history)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.videoRepo.IncrementViews(ctx, videoID)
}

type UpdateAccountInput struct {
	FullName string
	Email    string
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = strings.TrimSpace(input.FullName)
	}
	if input.Email != "" {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if email != user.Email {
			if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (*domain.User, error) {
	return s.updateImage(ctx, userID, "avatars", filename, contentType, r, func(u *domain.User, url string) {
		u.AvatarURL = url
	})
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (*domain.User, error) {
	return s.updateImage(ctx, userID, "covers", filename, contentType, r, func(u *domain.User, url string) {
		u.CoverImageURL = url
	})
}

func (s *UserService) updateImage(ctx context.Context, userID uuid.UUID, prefix, filename, contentType string, r io.Reader, apply func(*domain.User, string)) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s%s", prefix, userID, uuid.New(), path.Ext(filename))
	url, err := s.storage.Upload(ctx, key, contentType, r)
	if err != nil {
		return nil, domain.Wrap(domain.KindUpstream, "Failed to upload image", err)
	}

	apply(user, url)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
