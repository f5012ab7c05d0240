package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	fullName string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		fullName: "Test User",
		password: "testpassword123",
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithFullName sets the full name
func (b *UserBuilder) WithFullName(fullName string) *UserBuilder {
	b.fullName = fullName
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		FullName:     b.fullName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthData matches the data payload of the auth endpoints
type AuthData struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via the API and returns it with the access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username": b.username,
		"email":    b.email,
		"fullName": b.fullName,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authData AuthData
	DecodeData(t, resp.Body, &authData)

	userID, _ := uuid.Parse(authData.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: authData.User.Username,
		Email:    authData.User.Email,
	}

	return user, authData.AccessToken
}

// VideoBuilder creates test videos with a builder pattern
type VideoBuilder struct {
	owner       *domain.User
	title       string
	description string
	duration    float64
	views       int64
	published   bool
}

// NewVideoBuilder creates a new VideoBuilder with default values
func NewVideoBuilder() *VideoBuilder {
	return &VideoBuilder{
		title:       fmt.Sprintf("Test Video %s", uuid.New().String()[:8]),
		description: "A test video",
		duration:    120,
		published:   true,
	}
}

// WithOwner sets the video owner
func (b *VideoBuilder) WithOwner(user *domain.User) *VideoBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.title = title
	return b
}

// WithViews sets the view count
func (b *VideoBuilder) WithViews(views int64) *VideoBuilder {
	b.views = views
	return b
}

// Unpublished marks the video as not published
func (b *VideoBuilder) Unpublished() *VideoBuilder {
	b.published = false
	return b
}

// Build creates the video in the database
func (b *VideoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Video {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	video := &domain.Video{
		ID:              uuid.New(),
		OwnerID:         b.owner.ID,
		Title:           b.title,
		Description:     b.description,
		VideoURL:        fmt.Sprintf("http://media.test/videos/%s.mp4", uuid.New()),
		ThumbnailURL:    fmt.Sprintf("http://media.test/thumbnails/%s.png", uuid.New()),
		DurationSeconds: b.duration,
		Views:           b.views,
		IsPublished:     b.published,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create video: %v", err)
	}

	return video
}

// SeedComment creates a comment on a video
func SeedComment(t *testing.T, db *gorm.DB, owner *domain.User, video *domain.Video, content string) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		ID:        uuid.New(),
		VideoID:   video.ID,
		OwnerID:   owner.ID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}

// SeedTweet creates a tweet for a user
func SeedTweet(t *testing.T, db *gorm.DB, owner *domain.User, content string) *domain.Tweet {
	t.Helper()

	tweet := &domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   owner.ID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("failed to create tweet: %v", err)
	}
	return tweet
}

// SeedSubscription subscribes a user to a channel
func SeedSubscription(t *testing.T, db *gorm.DB, subscriber, channel *domain.User) *domain.Subscription {
	t.Helper()

	sub := &domain.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriber.ID,
		ChannelID:    channel.ID,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}
	return sub
}

// SeedPlaylist creates an empty playlist for a user
func SeedPlaylist(t *testing.T, db *gorm.DB, owner *domain.User, name string) *domain.Playlist {
	t.Helper()

	playlist := &domain.Playlist{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   owner.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(playlist).Error; err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}
	return playlist
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
