package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type ChannelProfileResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"fullName"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage"`
	SubscriberCount   int64  `json:"subscriberCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// GetChannelProfile returns the channel view for a username, including
// whether the requesting viewer is subscribed to it.
func (h *UserHandler) GetChannelProfile(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "user.GetChannelProfile", errUnauthorized)
		return
	}

	username := chi.URLParam(r, "username")
	if username == "" {
		respondError(w, "user.GetChannelProfile", badRequest("Username is required"))
		return
	}

	profile, err := h.userService.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		respondError(w, "user.GetChannelProfile", err)
		return
	}

	respond(w, http.StatusOK, ChannelProfileResponse{
		ID:                profile.User.ID.String(),
		Username:          profile.User.Username,
		FullName:          profile.User.FullName,
		Avatar:            profile.User.AvatarURL,
		CoverImage:        profile.User.CoverImageURL,
		SubscriberCount:   profile.SubscriberCount,
		SubscribedToCount: profile.SubscribedToCount,
		IsSubscribed:      profile.IsSubscribed,
	}, "Channel profile fetched successfully")
}

func (h *UserHandler) GetWatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "user.GetWatchHistory", errUnauthorized)
		return
	}

	videos, err := h.userService.GetWatchHistory(r.Context(), userID)
	if err != nil {
		respondError(w, "user.GetWatchHistory", err)
		return
	}

	respond(w, http.StatusOK, newVideoResponses(videos), "Watch history fetched successfully")
}

func (h *UserHandler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "user.RecordWatch", errUnauthorized)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "user.RecordWatch", errInvalidID)
		return
	}

	if err := h.userService.RecordWatch(r.Context(), userID, videoID); err != nil {
		respondError(w, "user.RecordWatch", err)
		return
	}

	respond(w, http.StatusOK, nil, "Watch recorded successfully")
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "user.UpdateAccount", errUnauthorized)
		return
	}

	var req UpdateAccountRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "user.UpdateAccount", err)
		return
	}
	if req.FullName == "" && req.Email == "" {
		respondError(w, "user.UpdateAccount", badRequest("Nothing to update"))
		return
	}

	user, err := h.userService.UpdateAccount(r.Context(), userID, service.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		respondError(w, "user.UpdateAccount", err)
		return
	}

	respond(w, http.StatusOK, newUserResponse(user), "Account updated successfully")
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "user.UpdateAvatar", "avatar", h.userService.UpdateAvatar)
}

func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "user.UpdateCoverImage", "coverImage", h.userService.UpdateCoverImage)
}

type imageUpdateFunc func(ctx context.Context, userID uuid.UUID, filename, contentType string, r io.Reader) (*domain.User, error)

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, component, field string, update imageUpdateFunc) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, component, errUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		respondError(w, component, badRequest("Image file is required"))
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		respondError(w, component, badRequest("Image file is required"))
		return
	}
	defer file.Close()

	user, err := update(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(w, component, err)
		return
	}

	respond(w, http.StatusOK, newUserResponse(user), "Image updated successfully")
}

// maxImageUpload bounds the multipart memory buffer for profile images.
const maxImageUpload = 8 << 20
