package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.VideoListOptions) ([]*domain.Video, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByVideo(ctx context.Context, videoID uuid.UUID, limit, offset int) ([]*domain.Comment, error)
	CountByVideoOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetForVideo(ctx context.Context, userID, videoID uuid.UUID) (*domain.Like, error)
	GetForComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.Like, error)
	GetForTweet(ctx context.Context, userID, tweetID uuid.UUID) (*domain.Like, error)
	ListVideoLikes(ctx context.Context, userID uuid.UUID) ([]*domain.Like, error)
	CountByLiker(ctx context.Context, userID uuid.UUID) (int64, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, subscriberID, channelID uuid.UUID) (*domain.Subscription, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID) ([]*domain.Subscription, error)
	ListBySubscriber(ctx context.Context, subscriberID uuid.UUID) ([]*domain.Subscription, error)
	CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddVideo(ctx context.Context, entry *domain.PlaylistVideo) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	GetVideoEntry(ctx context.Context, playlistID, videoID uuid.UUID) (*domain.PlaylistVideo, error)
	NextPosition(ctx context.Context, playlistID uuid.UUID) (int, error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Update(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*domain.Tweet, error)
}

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Video        VideoRepository
	Comment      CommentRepository
	Like         LikeRepository
	Subscription SubscriptionRepository
	Playlist     PlaylistRepository
	Tweet        TweetRepository
}
