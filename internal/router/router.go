package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/learnity/backend/api/handler"
	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/internal/middleware"
)

type Handlers struct {
	Auth         *apiHandler.AuthHandler
	User         *apiHandler.UserHandler
	Course       *apiHandler.CourseHandler
	Order        *apiHandler.OrderHandler
	Notification *apiHandler.NotificationHandler
	Layout       *apiHandler.LayoutHandler
	Analytics    *apiHandler.AnalyticsHandler
	Health       *apiHandler.HealthHandler
}

func New(handlers Handlers, auth *middleware.Authenticator) *router.Router {
	r := router.New()

	protected := auth.Authenticate
	admin := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return auth.Authenticate(middleware.RequireRoles(domain.RoleAdmin)(h))
	}

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/activate", handlers.Auth.Activate)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/social", handlers.Auth.SocialAuth)
	r.GET("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.GET("/api/v1/auth/logout", protected(handlers.Auth.Logout))

	// Current user
	r.GET("/api/v1/users/me", protected(handlers.Auth.Me))
	r.PUT("/api/v1/users/me", protected(handlers.User.UpdateInfo))
	r.PUT("/api/v1/users/me/password", protected(handlers.User.UpdatePassword))
	r.PUT("/api/v1/users/me/avatar", protected(handlers.User.UpdateAvatar))

	// Public catalogue and layouts
	r.GET("/api/v1/courses", handlers.Course.List)
	r.GET("/api/v1/courses/{id}", handlers.Course.Get)
	r.GET("/api/v1/layouts/{type}", handlers.Layout.Get)

	// Purchases
	r.GET("/api/v1/courses/{id}/content", protected(handlers.Course.Content))
	r.POST("/api/v1/orders", protected(handlers.Order.Create))

	// Admin
	r.GET("/api/v1/admin/users", admin(handlers.User.List))
	r.PUT("/api/v1/admin/users/role", admin(handlers.User.UpdateRole))
	r.DELETE("/api/v1/admin/users/{id}", admin(handlers.User.Delete))

	r.GET("/api/v1/admin/courses", admin(handlers.Course.ListAdmin))
	r.POST("/api/v1/admin/courses", admin(handlers.Course.Create))
	r.PUT("/api/v1/admin/courses/{id}", admin(handlers.Course.Update))
	r.DELETE("/api/v1/admin/courses/{id}", admin(handlers.Course.Delete))

	r.GET("/api/v1/admin/orders", admin(handlers.Order.List))
	r.GET("/api/v1/admin/notifications", admin(handlers.Notification.List))
	r.PUT("/api/v1/admin/notifications/{id}", admin(handlers.Notification.MarkRead))

	r.POST("/api/v1/admin/layouts", admin(handlers.Layout.Create))
	r.PUT("/api/v1/admin/layouts", admin(handlers.Layout.Update))

	r.GET("/api/v1/admin/analytics/users", admin(handlers.Analytics.Users))
	r.GET("/api/v1/admin/analytics/courses", admin(handlers.Analytics.Courses))
	r.GET("/api/v1/admin/analytics/orders", admin(handlers.Analytics.Orders))

	return r
}
