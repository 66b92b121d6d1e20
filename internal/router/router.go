package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/eventhive/event-booking-api/internal/config"
	"github.com/eventhive/event-booking-api/internal/handler"
	"github.com/eventhive/event-booking-api/internal/middleware"
	"github.com/eventhive/event-booking-api/internal/model"
)

// Handlers bundles everything Register needs so main stays a wiring
// exercise.
type Handlers struct {
	Auth     *handler.AuthHandler
	Public   *handler.PublicEventHandler
	Event    *handler.OrganizerEventHandler
	Admin    *handler.AdminHandler
	Booking  *handler.BookingHandler
	Wishlist *handler.WishlistHandler
}

// Register wires every route onto the Echo instance. Public discovery
// endpoints get the Redis response cache and rate limiter; rdb may be
// nil, in which case both middlewares pass requests straight through.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Public discovery. Static segments are registered alongside the
	// :id route; Echo matches them first.
	public := e.Group("/v1/events",
		middleware.RateLimit(config.LoadRateLimitConfig(), rdb),
		middleware.ResponseCache(config.LoadCacheConfig(), rdb),
	)
	public.GET("", h.Public.List)
	public.GET("/featured", h.Public.Featured)
	public.GET("/search/query", h.Public.Search)
	public.GET("/:id", h.Public.GetByID, middleware.OptionalAuth(cfg.JWTSecret))

	// Organizer event management.
	organizer := e.Group("/v1/events",
		middleware.Auth(cfg.JWTSecret),
		middleware.RequireTier(model.RoleOrganizer),
	)
	organizer.POST("", h.Event.Create)
	organizer.PUT("/:id", h.Event.Update)
	organizer.DELETE("/:id", h.Event.Delete)
	organizer.GET("/organizer/my-events", h.Event.MyEvents)

	// Moderation.
	moderation := e.Group("/v1/events",
		middleware.Auth(cfg.JWTSecret),
		middleware.RequireTier(model.RoleAdmin),
	)
	moderation.PATCH("/:id/approve", h.Admin.ApproveEvent)
	moderation.PATCH("/:id/reject", h.Admin.RejectEvent)
	moderation.GET("/admin/all", h.Admin.ListEvents)

	// Bookings. Any authenticated user can book; finer checks
	// (ownership, organizer visibility) happen in the handlers.
	bookings := e.Group("/v1/bookings", middleware.Auth(cfg.JWTSecret))
	bookings.POST("", h.Booking.Create)
	bookings.GET("", h.Booking.ListMine)
	bookings.GET("/organizer/event-bookings", h.Booking.EventBookings,
		middleware.RequireTier(model.RoleOrganizer))
	bookings.GET("/:id", h.Booking.GetByID)
	bookings.PUT("/:id/cancel", h.Booking.Cancel)

	wishlist := e.Group("/v1/wishlist", middleware.Auth(cfg.JWTSecret))
	wishlist.GET("", h.Wishlist.List)
	wishlist.POST("", h.Wishlist.Add)
	wishlist.DELETE("/:id", h.Wishlist.Remove)

	admin := e.Group("/v1/admin",
		middleware.Auth(cfg.JWTSecret),
		middleware.RequireTier(model.RoleAdmin),
	)
	admin.GET("/dashboard/stats", h.Admin.Dashboard)
	admin.GET("/users", h.Admin.ListUsers)
	admin.PATCH("/users/:id/deactivate", h.Admin.DeactivateUser)
}
