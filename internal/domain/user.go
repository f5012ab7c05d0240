package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID            uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username      string                         `json:"username" gorm:"uniqueIndex;not null"`
	Email         string                         `json:"email" gorm:"uniqueIndex;not null"`
	FullName      string                         `json:"fullName" gorm:"not null"`
	PasswordHash  string                         `json:"-" gorm:"not null"`
	AvatarURL     string                         `json:"avatar"`
	CoverImageURL string                         `json:"coverImage"`
	WatchHistory  datatypes.JSONSlice[uuid.UUID] `json:"-" gorm:"type:jsonb;default:'[]'"`
	CreatedAt     time.Time                      `json:"createdAt"`
	UpdatedAt     time.Time                      `json:"updatedAt"`
}

// UserSession holds the single active refresh token for a user. Issuing a new
// pair replaces the row, so a previously handed out refresh token stops
// matching its stored hash and is rejected on the next rotation attempt.
type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
