package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/GabrielPedrotti/irecipes/internal/handler"
	"github.com/GabrielPedrotti/irecipes/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video       *handler.VideoHandler
	Feed        *handler.FeedHandler
	Interaction *handler.InteractionHandler
	User        *handler.UserHandler
	Stats       *handler.StatsHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	feedLimit := middleware.NewFeedRateLimiter().Handler()
	interactionLimit := middleware.NewInteractionRateLimiter().Handler()
	postLimit := middleware.NewPostVideoRateLimiter().Handler()
	engagementLimit := middleware.NewEngagementRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Recommendation routes
	api.Get("/recommendations", h.Feed.Get, feedLimit)

	// Interaction routes
	api.Post("/interactions", h.Interaction.Record, interactionLimit)
	api.Get("/interactions", h.Interaction.List)

	// Video routes
	api.Post("/videos", h.Video.Post, postLimit)
	api.Get("/videos", h.Video.List)
	api.Get("/videos/:videoId", h.Video.Get)

	// Engagement routes
	api.Post("/videos/:videoId/likes", h.Video.Like, engagementLimit)
	api.Delete("/videos/:videoId/likes/:userId", h.Video.Unlike, engagementLimit)
	api.Get("/videos/:videoId/likes", h.Video.Likes)
	api.Post("/videos/:videoId/comments", h.Video.AddComment, engagementLimit)
	api.Get("/videos/:videoId/comments", h.Video.Comments)

	// User routes
	api.Get("/users/:userId", h.User.GetByUserID)
	api.Get("/users/:userId/videos", h.Video.ByOwner)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats)
}
