package domain

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID         uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"videoFile" gorm:"not null"`
	ThumbnailURL    string    `json:"thumbnail" gorm:"not null"`
	DurationSeconds float64   `json:"duration"`
	Views           int64     `json:"views" gorm:"not null;default:0"`
	IsPublished     bool      `json:"isPublished" gorm:"not null;default:true"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// VideoListOptions narrows and orders a channel's video listing. SortBy is an
// allow-listed column name; anything unknown falls back to created_at.
type VideoListOptions struct {
	Query   string
	SortBy  string
	SortAsc bool
	Limit   int
	Offset  int
}
