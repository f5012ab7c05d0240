package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"gorm.io/gorm"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, "id = ?", id).Error
}

func (r *likeRepository) GetForVideo(ctx context.Context, userID, videoID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "liked_by_id = ? AND video_id = ?", userID, videoID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) GetForComment(ctx context.Context, userID, commentID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "liked_by_id = ? AND comment_id = ?", userID, commentID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) GetForTweet(ctx context.Context, userID, tweetID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		First(&like, "liked_by_id = ? AND tweet_id = ?", userID, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) ListVideoLikes(ctx context.Context, userID uuid.UUID) ([]*domain.Like, error) {
	var likes []*domain.Like
	err := r.db.WithContext(ctx).
		Preload("Video").
		Preload("Video.Owner").
		Where("liked_by_id = ? AND video_id IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *likeRepository) CountByLiker(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("liked_by_id = ?", userID).
		Count(&count).Error
	return count, err
}
