package domain

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Videos []*PlaylistVideo `json:"videos,omitempty" gorm:"foreignKey:PlaylistID"`
}

// PlaylistVideo is a membership row. Position keeps the playlist ordered;
// the pair index disallows duplicate entries for the same video.
type PlaylistVideo struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlaylistID uuid.UUID `json:"playlistId" gorm:"type:uuid;not null;uniqueIndex:idx_playlist_videos_pair"`
	VideoID    uuid.UUID `json:"videoId" gorm:"type:uuid;not null;uniqueIndex:idx_playlist_videos_pair"`
	Position   int       `json:"position" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}
