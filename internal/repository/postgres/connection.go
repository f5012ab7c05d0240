package postgres

import (
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Video{},
		&domain.Comment{},
		&domain.Like{},
		&domain.Subscription{},
		&domain.Playlist{},
		&domain.PlaylistVideo{},
		&domain.Tweet{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Video:        NewVideoRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Playlist:     NewPlaylistRepository(db),
		Tweet:        NewTweetRepository(db),
	}
}
