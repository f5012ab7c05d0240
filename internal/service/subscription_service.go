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

var ErrSelfSubscription = domain.E(domain.KindBadRequest, "You cannot subscribe to your own channel")

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	toggles  *keyedMutex
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
		toggles:  newKeyedMutex(),
	}
}

// Toggle subscribes the user to the channel, or unsubscribes if a
// subscription already exists. Same serialization scheme as likes.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (ToggleResult, error) {
	if subscriberID == channelID {
		return "", ErrSelfSubscription
	}

	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrChannelNotFound
		}
		return "", err
	}

	unlock := s.toggles.Lock(subscriberID.String() + ":" + channelID.String())
	defer unlock()

	existing, err := s.subRepo.Get(ctx, subscriberID, channelID)
	if err == nil {
		if err := s.subRepo.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		return ToggleDeleted, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	sub := &domain.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return "", err
	}
	return ToggleCreated, nil
}

// GetChannelSubscribers lists the users subscribed to a channel.
func (s *SubscriptionService) GetChannelSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.User, error) {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subs, err := s.subRepo.ListByChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(subs))
	for _, sub := range subs {
		if sub.Subscriber != nil {
			users = append(users, sub.Subscriber)
		}
	}
	return users, nil
}

// GetSubscribedChannels lists the channels a user is subscribed to.
func (s *SubscriptionService) GetSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*domain.User, error) {
	subs, err := s.subRepo.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, err
	}

	channels := make([]*domain.User, 0, len(subs))
	for _, sub := range subs {
		if sub.Channel != nil {
			channels = append(channels, sub.Channel)
		}
	}
	return channels, nil
}
