package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/volunteer-hub/internal/config"
	"github.com/iliyamo/volunteer-hub/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/volunteer-hub/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/volunteer-hub/internal/model"
	"github.com/iliyamo/volunteer-hub/internal/repository"
)

// Deps bundles everything route registration needs: configuration for the
// token secrets, the user repository backing the auth middleware, the
// handlers themselves and an optional Redis client for rate limiting and
// caching (nil disables both).
type Deps struct {
	Cfg          config.Config
	Users        *repository.UserRepo
	Redis        *redis.Client
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Initiatives  *handler.InitiativeHandler
	Applications *handler.ApplicationHandler
	Comments     *handler.CommentHandler
	Admin        *handler.AdminHandler
}

// RegisterRoutes wires the full HTTP surface onto the provided Echo
// instance.  Public reads run behind OptionalAuth so responses can be
// personalized when a valid token happens to be present; everything under
// a role gate runs behind JWTAuth which resolves the full user row.
func RegisterRoutes(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	required := middleware.JWTAuth(d.Cfg.JWTSecret, d.Users)
	optional := middleware.OptionalAuth(d.Cfg.JWTSecret, d.Users)

	// ---- Auth ----
	// The auth group carries the Redis token bucket: register, login and
	// refresh are the endpoints where anonymous callers can make the
	// server do bcrypt and signing work.
	authGroup := e.Group("/api/auth",
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))
	authGroup.POST("/register", d.Auth.Register)
	authGroup.POST("/login", d.Auth.Login)
	authGroup.POST("/refresh-token", d.Auth.Refresh)
	authGroup.POST("/logout", d.Auth.Logout)
	authGroup.GET("/profile", d.Auth.Profile, required)

	// ---- Own profile ----
	users := e.Group("/api/users", required)
	users.GET("/me", d.User.Me)
	users.PUT("/me", d.User.UpdateMe)
	users.PUT("/change-password", d.User.ChangePassword)
	users.DELETE("/delete-account", d.User.DeleteMe)

	// ---- Initiatives ----
	// The anonymous listing is the hottest read path and is additionally
	// cached in Redis; the cache middleware bypasses any request that
	// resolved an identity.
	e.GET("/api/initiatives", d.Initiatives.List, optional,
		middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis))
	e.GET("/api/initiatives/:id", d.Initiatives.Get, optional)
	e.GET("/api/initiatives/:id/comments", d.Comments.ListByInitiative, optional)

	e.POST("/api/initiatives", d.Initiatives.Create, required,
		middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin))
	e.PUT("/api/initiatives/:id", d.Initiatives.Update, required,
		middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin))
	e.DELETE("/api/initiatives/:id", d.Initiatives.Delete, required,
		middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin))
	e.PUT("/api/initiatives/:id/approve", d.Admin.Approve, required, middleware.RequireAdmin())

	e.POST("/api/initiatives/:id/comments", d.Comments.Add, required,
		middleware.RequireRole(model.RoleVolunteer, model.RoleOrganizer, model.RoleAdmin))
	e.DELETE("/api/comments/:id", d.Comments.Delete, required)

	// ---- Applications ----
	apps := e.Group("/api/applications", required)
	apps.POST("", d.Applications.Apply, middleware.RequireRole(model.RoleVolunteer))
	apps.GET("/user", d.Applications.ListMine, middleware.RequireRole(model.RoleVolunteer))
	apps.GET("/organizer", d.Applications.ListForOrganizer,
		middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin))
	apps.GET("/initiative/:id", d.Applications.ListForInitiative,
		middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin))
	apps.PUT("/:id", d.Applications.SetStatus,
		middleware.RequireRole(model.RoleOrganizer, model.RoleAdmin))
	apps.DELETE("/:id", d.Applications.Withdraw,
		middleware.RequireRole(model.RoleVolunteer, model.RoleAdmin))

	// ---- Admin ----
	admin := e.Group("/api/admin", required, middleware.RequireAdmin())
	admin.GET("/users", d.Admin.ListUsers)
	admin.GET("/users/:id", d.Admin.GetUser)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)
	admin.GET("/initiatives/unapproved", d.Admin.ListUnapproved)
	admin.GET("/metrics", d.Admin.GetMetrics)
}
