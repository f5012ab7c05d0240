package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials  = domain.E(domain.KindUnauthorized, "Invalid credentials")
	ErrInvalidAccessToken  = domain.E(domain.KindUnauthorized, "Invalid access token")
	ErrInvalidRefreshToken = domain.E(domain.KindUnauthorized, "Refresh token is expired or has been used")
	ErrUsernameTaken       = domain.E(domain.KindConflict, "Username is already taken")
	ErrEmailTaken          = domain.E(domain.KindConflict, "Email is already registered")
	ErrUserNotFound        = domain.E(domain.KindNotFound, "User not found")
	ErrWrongPassword       = domain.E(domain.KindUnauthorized, "Current password is incorrect")
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	rotation    *keyedMutex
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		rotation:    newKeyedMutex(),
	}
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

type LoginInput struct {
	// Identifier is a username or an email address.
	Identifier string
	Password   string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if existing, err := s.userRepo.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.IssueTokenPair(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	identifier := strings.ToLower(strings.TrimSpace(input.Identifier))

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.IssueTokenPair(ctx, user)
}

// IssueTokenPair signs a fresh access/refresh pair and replaces the user's
// session row with the new refresh token hash. Rotation-on-issue: whatever
// refresh token existed before stops being accepted.
func (s *AuthService) IssueTokenPair(ctx context.Context, user *domain.User) (*AuthResult, error) {
	unlock := s.rotation.Lock(user.ID.String())
	defer unlock()

	return s.issueTokenPairLocked(ctx, user)
}

func (s *AuthService) issueTokenPairLocked(ctx context.Context, user *domain.User) (*AuthResult, error) {
	now := time.Now()

	accessToken, err := s.signToken(user.ID, now, s.cfg.AccessTokenTTL, s.cfg.AccessTokenSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.signToken(user.ID, now, s.cfg.RefreshTokenTTL, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, err
	}

	session := &domain.UserSession{
		ID:               uuid.New(),
		UserID:           user.ID,
		RefreshTokenHash: hashToken(refreshToken),
		ExpiresAt:        now.Add(s.cfg.RefreshTokenTTL),
		CreatedAt:        now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) signToken(userID uuid.UUID, now time.Time, ttl time.Duration, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccess checks signature and expiry only; it never touches the store.
func (s *AuthService) VerifyAccess(tokenString string) (uuid.UUID, error) {
	return s.verifyToken(tokenString, s.cfg.AccessTokenSecret, ErrInvalidAccessToken)
}

func (s *AuthService) verifyToken(tokenString, secret string, failure *domain.Error) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, failure
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, failure
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, failure
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, failure
	}
	return userID, nil
}

// Refresh exchanges a refresh token for a new pair. The incoming token must
// hash-match the single stored value for its user; presenting a rotated-out
// token fails even when its signature and expiry are still good.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.verifyToken(refreshToken, s.cfg.RefreshTokenSecret, ErrInvalidRefreshToken)
	if err != nil {
		return nil, err
	}

	unlock := s.rotation.Lock(userID.String())
	defer unlock()

	session, err := s.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}

	incoming := hashToken(refreshToken)
	if subtle.ConstantTimeCompare([]byte(incoming), []byte(session.RefreshTokenHash)) != 1 {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return s.issueTokenPairLocked(ctx, user)
}

// Logout revokes the current refresh token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	unlock := s.rotation.Lock(userID.String())
	defer unlock()

	return s.sessionRepo.DeleteByUserID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashed)
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// hashToken digests a token for at-rest storage. Tokens are JWTs well over
// bcrypt's input limit, so a SHA-256 digest is stored and compared in
// constant time instead.
func hashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
