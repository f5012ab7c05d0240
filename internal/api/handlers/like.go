package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

type ToggleResponse struct {
	Result service.ToggleResult `json:"result"`
}

func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "like.ToggleVideoLike", "videoId", h.likeService.ToggleVideoLike)
}

func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "like.ToggleCommentLike", "commentId", h.likeService.ToggleCommentLike)
}

func (h *LikeHandler) ToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "like.ToggleTweetLike", "tweetId", h.likeService.ToggleTweetLike)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, component, param string, fn func(ctx context.Context, userID, targetID uuid.UUID) (service.ToggleResult, error)) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, component, errUnauthorized)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondError(w, component, errInvalidID)
		return
	}

	result, err := fn(r.Context(), userID, targetID)
	if err != nil {
		respondError(w, component, err)
		return
	}

	message := "Liked successfully"
	if result == service.ToggleDeleted {
		message = "Unliked successfully"
	}
	respond(w, http.StatusOK, ToggleResponse{Result: result}, message)
}

func (h *LikeHandler) GetLikedVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "like.GetLikedVideos", errUnauthorized)
		return
	}

	videos, err := h.likeService.GetLikedVideos(r.Context(), userID)
	if err != nil {
		respondError(w, "like.GetLikedVideos", err)
		return
	}

	respond(w, http.StatusOK, newVideoResponses(videos), "Liked videos fetched successfully")
}
