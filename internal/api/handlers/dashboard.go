package handlers

import (
	"net/http"

	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetChannelStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "dashboard.GetChannelStats", errUnauthorized)
		return
	}

	stats, err := h.dashboardService.GetChannelStats(r.Context(), userID)
	if err != nil {
		respondError(w, "dashboard.GetChannelStats", err)
		return
	}

	respond(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *DashboardHandler) GetChannelVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "dashboard.GetChannelVideos", errUnauthorized)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	videos, err := h.dashboardService.GetChannelVideos(r.Context(), userID, page, limit)
	if err != nil {
		respondError(w, "dashboard.GetChannelVideos", err)
		return
	}

	respond(w, http.StatusOK, newVideoResponses(videos), "Channel videos fetched successfully")
}
