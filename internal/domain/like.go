package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like targets exactly one of a video, a comment or a tweet. The partial
// composite unique indexes keep a user from holding two likes on the same
// target even when concurrent toggles race (Postgres treats NULLs in a
// unique index as distinct, so each target kind gets its own pair index).
type Like struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LikedByID uuid.UUID  `json:"likedBy" gorm:"type:uuid;not null;uniqueIndex:idx_likes_video;uniqueIndex:idx_likes_comment;uniqueIndex:idx_likes_tweet"`
	VideoID   *uuid.UUID `json:"videoId,omitempty" gorm:"type:uuid;uniqueIndex:idx_likes_video"`
	CommentID *uuid.UUID `json:"commentId,omitempty" gorm:"type:uuid;uniqueIndex:idx_likes_comment"`
	TweetID   *uuid.UUID `json:"tweetId,omitempty" gorm:"type:uuid;uniqueIndex:idx_likes_tweet"`
	CreatedAt time.Time  `json:"createdAt"`

	// Relations
	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}
