package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// ChannelCardResponse is the compact user projection returned by the
// subscriber and subscription listings.
type ChannelCardResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

func newChannelCards(users []*domain.User) []ChannelCardResponse {
	out := make([]ChannelCardResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ChannelCardResponse{
			ID:       u.ID.String(),
			Username: u.Username,
			FullName: u.FullName,
			Avatar:   u.AvatarURL,
		})
	}
	return out
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "subscription.Toggle", errUnauthorized)
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "channelId"))
	if err != nil {
		respondError(w, "subscription.Toggle", errInvalidID)
		return
	}

	result, err := h.subscriptionService.Toggle(r.Context(), userID, channelID)
	if err != nil {
		respondError(w, "subscription.Toggle", err)
		return
	}

	message := "Subscribed successfully"
	if result == service.ToggleDeleted {
		message = "Unsubscribed successfully"
	}
	respond(w, http.StatusOK, ToggleResponse{Result: result}, message)
}

func (h *SubscriptionHandler) GetChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuid.Parse(chi.URLParam(r, "channelId"))
	if err != nil {
		respondError(w, "subscription.GetChannelSubscribers", errInvalidID)
		return
	}

	subscribers, err := h.subscriptionService.GetChannelSubscribers(r.Context(), channelID)
	if err != nil {
		respondError(w, "subscription.GetChannelSubscribers", err)
		return
	}

	respond(w, http.StatusOK, newChannelCards(subscribers), "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) GetSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := uuid.Parse(chi.URLParam(r, "subscriberId"))
	if err != nil {
		respondError(w, "subscription.GetSubscribedChannels", errInvalidID)
		return
	}

	channels, err := h.subscriptionService.GetSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		respondError(w, "subscription.GetSubscribedChannels", err)
		return
	}

	respond(w, http.StatusOK, newChannelCards(channels), "Subscribed channels fetched successfully")
}
