package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "comment.ListByVideo", errInvalidID)
		return
	}

	comments, err := h.commentService.ListByVideo(r.Context(), videoID, queryInt(r, "page", 1), queryInt(r, "limit", 10))
	if err != nil {
		respondError(w, "comment.ListByVideo", err)
		return
	}

	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	respond(w, http.StatusOK, out, "Comments fetched successfully")
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "comment.Add", errUnauthorized)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "comment.Add", errInvalidID)
		return
	}

	var req CommentRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "comment.Add", err)
		return
	}

	comment, err := h.commentService.Add(r.Context(), videoID, userID, req.Content)
	if err != nil {
		respondError(w, "comment.Add", err)
		return
	}

	respond(w, http.StatusCreated, newCommentResponse(comment), "Comment created successfully")
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "comment.Update", errUnauthorized)
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		respondError(w, "comment.Update", errInvalidID)
		return
	}

	var req CommentRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "comment.Update", err)
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, userID, req.Content)
	if err != nil {
		respondError(w, "comment.Update", err)
		return
	}

	respond(w, http.StatusOK, newCommentResponse(comment), "Comment updated successfully")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "comment.Delete", errUnauthorized)
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		respondError(w, "comment.Delete", errInvalidID)
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, userID); err != nil {
		respondError(w, "comment.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Comment deleted successfully")
}
