// Package router wires handlers, middleware and routes onto the Echo
// instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkedweld/linkedweld-api/internal/handler"
	"github.com/linkedweld/linkedweld-api/internal/middleware"
)

// HTTPErrorHandler renders every uncaught error in the response envelope.
// Unknown errors are redacted to a generic message.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	_ = c.JSON(code, echo.Map{"success": false, "error": msg})
}

// RegisterRoutes registers routes that need no dependencies.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Credential endpoints sit
// behind the rate limiter; verify and profile endpoints require a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, accessSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/auth", limit)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/auth", middleware.JWTAuth(accessSecret))
	auth.POST("/verify", a.Verify)
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
}

// RegisterJobs registers the public job board plus the authenticated
// saved-jobs endpoints. The static /jobs/user/saved route must coexist
// with /jobs/:id; Echo resolves static segments first.
func RegisterJobs(e *echo.Echo, j *handler.JobHandler, accessSecret string, cache echo.MiddlewareFunc) {
	e.GET("/jobs", j.List, cache)
	e.GET("/jobs/:id", j.Detail, cache)

	jwt := middleware.JWTAuth(accessSecret)
	e.GET("/jobs/user/saved", j.Saved, jwt)
	e.POST("/jobs/:id/save", j.ToggleSave, jwt)
}

// RegisterApplications registers the authenticated application endpoints.
func RegisterApplications(e *echo.Echo, a *handler.ApplicationHandler, accessSecret string) {
	g := e.Group("/applications", middleware.JWTAuth(accessSecret))
	g.POST("", a.Apply)
	g.GET("", a.Mine)
}

// RegisterNotifications registers the authenticated notification feed.
func RegisterNotifications(e *echo.Echo, n *handler.NotificationHandler, accessSecret string) {
	g := e.Group("/notifications", middleware.JWTAuth(accessSecret))
	g.GET("", n.List)
	g.GET("/unread-count", n.UnreadCount)
	g.PUT("/read-all", n.MarkAllRead)
	g.PUT("/:id/read", n.MarkRead)
}

// RegisterNews registers the public news feed.
func RegisterNews(e *echo.Echo, n *handler.NewsHandler, cache echo.MiddlewareFunc) {
	e.GET("/news", n.Latest, cache)
}
