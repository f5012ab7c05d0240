package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/service"
)

// maxVideoUpload bounds the multipart memory buffer for video publishes;
// larger files spill to temp storage.
const maxVideoUpload = 64 << 20

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Publish accepts a multipart form with title, description, duration and the
// videoFile and thumbnail files. Both uploads must succeed before a record
// is written.
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "video.Publish", errUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxVideoUpload); err != nil {
		respondError(w, "video.Publish", badRequest("Multipart form is required"))
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if title == "" || description == "" {
		respondError(w, "video.Publish", badRequest("Title and description are required"))
		return
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	videoFile, videoHeader, err := r.FormFile("videoFile")
	if err != nil {
		respondError(w, "video.Publish", badRequest("Video file is required"))
		return
	}
	defer videoFile.Close()

	thumbnail, thumbnailHeader, err := r.FormFile("thumbnail")
	if err != nil {
		respondError(w, "video.Publish", badRequest("Thumbnail is required"))
		return
	}
	defer thumbnail.Close()

	video, err := h.videoService.Publish(r.Context(), userID, service.PublishVideoInput{
		Title:           title,
		Description:     description,
		DurationSeconds: duration,
		VideoFile: service.FileUpload{
			Filename:    videoHeader.Filename,
			ContentType: videoHeader.Header.Get("Content-Type"),
			Content:     videoFile,
		},
		Thumbnail: service.FileUpload{
			Filename:    thumbnailHeader.Filename,
			ContentType: thumbnailHeader.Header.Get("Content-Type"),
			Content:     thumbnail,
		},
	})
	if err != nil {
		respondError(w, "video.Publish", err)
		return
	}

	respond(w, http.StatusCreated, newVideoResponse(video), "Video published successfully")
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "video.Get", errInvalidID)
		return
	}

	video, err := h.videoService.Get(r.Context(), videoID)
	if err != nil {
		respondError(w, "video.Get", err)
		return
	}

	respond(w, http.StatusOK, newVideoResponse(video), "Video fetched successfully")
}

// List returns a channel's published videos. Query parameters: userId
// (required), query (title search), sortBy, sortType, page, limit.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, "video.List", badRequest("userId query parameter is required"))
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	videos, err := h.videoService.ListByChannel(r.Context(), ownerID, domain.VideoListOptions{
		Query:   r.URL.Query().Get("query"),
		SortBy:  r.URL.Query().Get("sortBy"),
		SortAsc: r.URL.Query().Get("sortType") == "asc",
		Limit:   limit,
		Offset:  (page - 1) * limit,
	})
	if err != nil {
		respondError(w, "video.List", err)
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"page":   page,
		"limit":  limit,
		"videos": newVideoResponses(videos),
	}, "Videos fetched successfully")
}

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Update edits title and description, and optionally replaces the thumbnail
// when the request is multipart.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "video.Update", errUnauthorized)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "video.Update", errInvalidID)
		return
	}

	input := service.UpdateVideoInput{}
	if err := r.ParseMultipartForm(maxVideoUpload); err == nil {
		input.Title = r.FormValue("title")
		input.Description = r.FormValue("description")
		if file, header, err := r.FormFile("thumbnail"); err == nil {
			defer file.Close()
			input.Thumbnail = &service.FileUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Content:     file,
			}
		}
	} else {
		var req UpdateVideoRequest
		if err := decodeBody(w, r, &req); err != nil {
			respondError(w, "video.Update", err)
			return
		}
		input.Title = req.Title
		input.Description = req.Description
	}

	if input.Title == "" && input.Description == "" && input.Thumbnail == nil {
		respondError(w, "video.Update", badRequest("Nothing to update"))
		return
	}

	video, err := h.videoService.Update(r.Context(), videoID, userID, input)
	if err != nil {
		respondError(w, "video.Update", err)
		return
	}

	respond(w, http.StatusOK, newVideoResponse(video), "Video updated successfully")
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "video.Delete", errUnauthorized)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "video.Delete", errInvalidID)
		return
	}

	if err := h.videoService.Delete(r.Context(), videoID, userID); err != nil {
		respondError(w, "video.Delete", err)
		return
	}

	respond(w, http.StatusOK, nil, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublishStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "video.TogglePublishStatus", errUnauthorized)
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		respondError(w, "video.TogglePublishStatus", errInvalidID)
		return
	}

	video, err := h.videoService.TogglePublishStatus(r.Context(), videoID, userID)
	if err != nil {
		respondError(w, "video.TogglePublishStatus", err)
		return
	}

	respond(w, http.StatusOK, newVideoResponse(video), "Publish status updated successfully")
}
