package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/service"
)

type playlistMembershipFunc func(ctx context.Context, playlistID, videoID, actorID uuid.UUID) (*domain.Playlist, error)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "playlist.Create", errUnauthorized)
		return
	}

	var req CreatePlaylistRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "playlist.Create", err)
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondError(w, "playlist.Create", err)
		return
	}

	respond(w, http.StatusCreated, newPlaylistResponse(playlist), "Playlist created successfully")
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := uuid.Parse(chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, "playlist.Get", errInvalidID)
		return
	}

	playlist, err := h.playlistService.Get(r.Context(), playlistID)
	if err != nil {
		respondError(w, "playlist.Get", err)
		return
	}

	respond(w, http.StatusOK, newPlaylistResponse(playlist), "Playlist fetched successfully")
}

func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, "playlist.ListByUser", errInvalidID)
		return
	}

	playlists, err := h.playlistService.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, "playlist.ListByUser", err)
		return
	}

	out := make([]PlaylistResponse, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, newPlaylistResponse(p))
	}
	respond(w, http.StatusOK, out, "Playlists fetched successfully")
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "playlist.Update", errUnauthorized)
		return
	}

	playlistID, err := uuid.Parse(chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, "playlist.Update", errInvalidID)
		return
	}

	var req UpdatePlaylistRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "playlist.Update", err)
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), playlistID, userID, req.Name, req.Description)
	if err != nil {
		respondError(w, "playlist.Update", err)
		return
	}

	respond(w, http.StatusOK, newPlaylistResponse(playlist), "Playlist updated successfully")
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "playlist.Delete", errUnauthorized)
		return
	}

	playlistID, err := uuid.Parse(chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, "playlist.Delete", errInvalidID)
		return
	}

	if err := h.playlistService.Delete(r.Context(), playlistID, userID); err != nil {
		respondError(w, "playlist.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	h.mutateMembership(w, r, "playlist.AddVideo", h.playlistService.AddVideo, "Video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	h.mutateMembership(w, r, "playlist.RemoveVideo", h.playlistService.RemoveVideo, "Video removed from playlist")
}

func (h *PlaylistHandler) mutateMembership(w http.ResponseWriter, r *http.Request, component string, fn playlistMembershipFunc, message string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, component, errUnauthorized)
		return
	}

	playlistID, err := uuid.Parse(chi.URLParam(r, "playlistId"))
	if err != nil {
		respondError(w, component, errInvalidID)
		return
	}
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, component, errInvalidID)
		return
	}

	playlist, err := fn(r.Context(), playlistID, videoID, userID)
	if err != nil {
		respondError(w, component, err)
		return
	}

	respond(w, http.StatusOK, newPlaylistResponse(playlist), message)
}
