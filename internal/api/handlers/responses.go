package handlers

import (
	"time"

	"github.com/vidtube/backend/internal/domain"
)

type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.AvatarURL,
		CoverImage: u.CoverImageURL,
		CreatedAt:  u.CreatedAt,
	}
}

// OwnerResponse is the public projection of a video or comment owner. It
// deliberately carries no email and no credential-adjacent fields.
type OwnerResponse struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func newOwnerResponse(u *domain.User) *OwnerResponse {
	if u == nil {
		return nil
	}
	return &OwnerResponse{
		FullName: u.FullName,
		Username: u.Username,
		Avatar:   u.AvatarURL,
	}
}

type VideoResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	VideoFile   string         `json:"videoFile"`
	Thumbnail   string         `json:"thumbnail"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	CreatedAt   time.Time      `json:"createdAt"`
	Owner       *OwnerResponse `json:"owner,omitempty"`
	OwnerID     string         `json:"ownerId"`
}

func newVideoResponse(v *domain.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.String(),
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoURL,
		Thumbnail:   v.ThumbnailURL,
		Duration:    v.DurationSeconds,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		Owner:       newOwnerResponse(v.Owner),
		OwnerID:     v.OwnerID.String(),
	}
}

func newVideoResponses(videos []*domain.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, newVideoResponse(v))
	}
	return out
}

type CommentResponse struct {
	ID        string         `json:"id"`
	VideoID   string         `json:"videoId"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	OwnerID   string         `json:"ownerId"`
}

func newCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Owner:     newOwnerResponse(c.Owner),
		OwnerID:   c.OwnerID.String(),
	}
}

type TweetResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	OwnerID   string         `json:"ownerId"`
}

func newTweetResponse(t *domain.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID.String(),
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		Owner:     newOwnerResponse(t.Owner),
		OwnerID:   t.OwnerID.String(),
	}
}

type PlaylistResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerID     string          `json:"ownerId"`
	Videos      []VideoResponse `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func newPlaylistResponse(p *domain.Playlist) PlaylistResponse {
	videos := make([]VideoResponse, 0, len(p.Videos))
	for _, entry := range p.Videos {
		if entry.Video != nil {
			videos = append(videos, newVideoResponse(entry.Video))
		}
	}
	return PlaylistResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID.String(),
		Videos:      videos,
		CreatedAt:   p.CreatedAt,
	}
}
