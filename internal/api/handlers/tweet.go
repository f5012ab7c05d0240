package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
)

type TweetHandler struct {
	tweetService *service.TweetService
}

func NewTweetHandler(tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content"`
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "tweet.Create", errUnauthorized)
		return
	}

	var req TweetRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "tweet.Create", err)
		return
	}

	tweet, err := h.tweetService.Create(r.Context(), userID, req.Content)
	if err != nil {
		respondError(w, "tweet.Create", err)
		return
	}

	respond(w, http.StatusCreated, newTweetResponse(tweet), "Tweet created successfully")
}

func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, "tweet.ListByUser", errInvalidID)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	tweets, err := h.tweetService.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		respondError(w, "tweet.ListByUser", err)
		return
	}

	out := make([]TweetResponse, 0, len(tweets))
	for _, t := range tweets {
		out = append(out, newTweetResponse(t))
	}
	respond(w, http.StatusOK, out, "Tweets fetched successfully")
}

func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "tweet.Update", errUnauthorized)
		return
	}

	tweetID, err := uuid.Parse(chi.URLParam(r, "tweetId"))
	if err != nil {
		respondError(w, "tweet.Update", errInvalidID)
		return
	}

	var req TweetRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "tweet.Update", err)
		return
	}

	tweet, err := h.tweetService.Update(r.Context(), tweetID, userID, req.Content)
	if err != nil {
		respondError(w, "tweet.Update", err)
		return
	}

	respond(w, http.StatusOK, newTweetResponse(tweet), "Tweet updated successfully")
}

func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "tweet.Delete", errUnauthorized)
		return
	}

	tweetID, err := uuid.Parse(chi.URLParam(r, "tweetId"))
	if err != nil {
		respondError(w, "tweet.Delete", errInvalidID)
		return
	}

	if err := h.tweetService.Delete(r.Context(), tweetID, userID); err != nil {
		respondError(w, "tweet.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Tweet deleted successfully")
}
