package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vidtube/backend/internal/api/handlers"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	handlers.SetDevMode(cfg.Environment == "development")

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userHandler := handlers.NewUserHandler(services.User)
	videoHandler := handlers.NewVideoHandler(services.Video)
	commentHandler := handlers.NewCommentHandler(services.Comment)
	likeHandler := handlers.NewLikeHandler(services.Like)
	subscriptionHandler := handlers.NewSubscriptionHandler(services.Subscription)
	playlistHandler := handlers.NewPlaylistHandler(services.Playlist)
	tweetHandler := handlers.NewTweetHandler(services.Tweet)
	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// User routes
			r.Route("/users", func(r chi.Router) {
				r.Get("/c/{username}", userHandler.GetChannelProfile)
				r.Get("/history", userHandler.GetWatchHistory)
				r.Post("/history/{videoId}", userHandler.RecordWatch)
				r.Patch("/me", userHandler.UpdateAccount)
				r.Patch("/me/avatar", userHandler.UpdateAvatar)
				r.Patch("/me/cover-image", userHandler.UpdateCoverImage)
			})

			// Video routes
			r.Route("/videos", func(r chi.Router) {
				r.Get("/", videoHandler.List)
				r.Post("/", videoHandler.Publish)
				r.Get("/{videoId}", videoHandler.Get)
				r.Patch("/{videoId}", videoHandler.Update)
				r.Delete("/{videoId}", videoHandler.Delete)
				r.Patch("/{videoId}/toggle-publish", videoHandler.TogglePublishStatus)

				// Comments nest under their video
				r.Route("/{videoId}/comments", func(r chi.Router) {
					r.Get("/", commentHandler.ListByVideo)
					r.Post("/", commentHandler.Add)
				})
			})

			// Comment routes
			r.Route("/comments/{commentId}", func(r chi.Router) {
				r.Patch("/", commentHandler.Update)
				r.Delete("/", commentHandler.Delete)
			})

			// Like routes
			r.Route("/likes", func(r chi.Router) {
				r.Post("/toggle/video/{videoId}", likeHandler.ToggleVideoLike)
				r.Post("/toggle/comment/{commentId}", likeHandler.ToggleCommentLike)
				r.Post("/toggle/tweet/{tweetId}", likeHandler.ToggleTweetLike)
				r.Get("/videos", likeHandler.GetLikedVideos)
			})

			// Subscription routes
			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/c/{channelId}", subscriptionHandler.Toggle)
				r.Get("/c/{channelId}", subscriptionHandler.GetChannelSubscribers)
				r.Get("/u/{subscriberId}", subscriptionHandler.GetSubscribedChannels)
			})

			// Playlist routes
			r.Route("/playlists", func(r chi.Router) {
				r.Post("/", playlistHandler.Create)
				r.Get("/user/{userId}", playlistHandler.ListByUser)
				r.Get("/{playlistId}", playlistHandler.Get)
				r.Patch("/{playlistId}", playlistHandler.Update)
				r.Delete("/{playlistId}", playlistHandler.Delete)
				r.Patch("/{playlistId}/videos/{videoId}", playlistHandler.AddVideo)
				r.Delete("/{playlistId}/videos/{videoId}", playlistHandler.RemoveVideo)
			})

			// Tweet routes
			r.Route("/tweets", func(r chi.Router) {
				r.Post("/", tweetHandler.Create)
				r.Get("/user/{userId}", tweetHandler.ListByUser)
				r.Patch("/{tweetId}", tweetHandler.Update)
				r.Delete("/{tweetId}", tweetHandler.Delete)
			})

			// Dashboard routes
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", dashboardHandler.GetChannelStats)
				r.Get("/videos", dashboardHandler.GetChannelVideos)
			})
		})
	})

	return r
}
