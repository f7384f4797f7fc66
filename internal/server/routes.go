package server

import (
	"github.com/labstack/echo/v4"

	"example.com/healthsync/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	analysisHandler *handlers.AnalysisHandler,
	scheduleHandler *handlers.ScheduleHandler,
	preferencesHandler *handlers.PreferencesHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	analyses := api.Group("/analyses", authMiddleware)
	analyses.POST("", analysisHandler.Submit, aiRateLimiter)
	analyses.GET("", analysisHandler.List)
	analyses.GET("/:id", analysisHandler.Get)
	analyses.GET("/:id/coverage", analysisHandler.GetCoverage)
	analyses.POST("/:id/recommendations", analysisHandler.AddRecommendation)
	analyses.DELETE("/recommendations/:recommendationId", analysisHandler.DeleteRecommendation)
	analyses.DELETE("/:id", analysisHandler.Delete)

	schedules := api.Group("/schedules", authMiddleware)
	schedules.POST("", scheduleHandler.Generate)
	schedules.GET("", scheduleHandler.List)
	schedules.GET("/:id", scheduleHandler.Get)
	schedules.POST("/:id/regenerate", scheduleHandler.Regenerate)
	schedules.GET("/:id/export/json", scheduleHandler.ExportJSON)
	schedules.GET("/:id/export/csv", scheduleHandler.ExportCSV)
	schedules.DELETE("/:id", scheduleHandler.Delete)

	appointments := api.Group("/appointments", authMiddleware)
	appointments.PATCH("/:id/status", scheduleHandler.UpdateAppointmentStatus)

	preferences := api.Group("/preferences", authMiddleware)
	preferences.GET("", preferencesHandler.Get)
	preferences.PUT("", preferencesHandler.Update)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/by-category", statsHandler.ByCategory)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/ai-requests", adminHandler.ListAIRequests)
	admin.GET("/usage", adminHandler.Usage)
}
