package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"gorm.io/gorm"
)

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *playlistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position ASC")
		}).
		Preload("Videos.Video").
		First(&playlist, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error) {
	var playlists []*domain.Playlist
	err := r.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position ASC")
		}).
		Preload("Videos.Video").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	return r.db.WithContext(ctx).Save(playlist).Error
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.PlaylistVideo{}, "playlist_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Playlist{}, "id = ?", id).Error
	})
}

func (r *playlistRepository) AddVideo(ctx context.Context, entry *domain.PlaylistVideo) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.PlaylistVideo{}, "playlist_id = ? AND video_id = ?", playlistID, videoID).Error
}

func (r *playlistRepository) GetVideoEntry(ctx context.Context, playlistID, videoID uuid.UUID) (*domain.PlaylistVideo, error) {
	var entry domain.PlaylistVideo
	err := r.db.WithContext(ctx).
		First(&entry, "playlist_id = ? AND video_id = ?", playlistID, videoID).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *playlistRepository) NextPosition(ctx context.Context, playlistID uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&domain.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
