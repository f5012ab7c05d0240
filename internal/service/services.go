package service

import (
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repository"
)

type Services struct {
	Auth         *AuthService
	User         *UserService
	Video        *VideoService
	Comment      *CommentService
	Like         *LikeService
	Subscription *SubscriptionService
	Playlist     *PlaylistService
	Tweet        *TweetService
	Dashboard    *DashboardService
}

func NewServices(repos *repository.Repositories, storage media.Storage, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, repos.Session, cfg),
		User:         NewUserService(repos.User, repos.Video, repos.Subscription, storage),
		Video:        NewVideoService(repos.Video, repos.User, storage),
		Comment:      NewCommentService(repos.Comment, repos.Video),
		Like:         NewLikeService(repos.Like, repos.Video, repos.Comment, repos.Tweet),
		Subscription: NewSubscriptionService(repos.Subscription, repos.User),
		Playlist:     NewPlaylistService(repos.Playlist, repos.Video, repos.User),
		Tweet:        NewTweetService(repos.Tweet, repos.User),
		Dashboard:    NewDashboardService(repos.User, repos.Video, repos.Subscription, repos.Like, repos.Comment),
	}
}
