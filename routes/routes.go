// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"workspan-server/commons"
	"workspan-server/handlers"
	"workspan-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.POST("/auth/signup", handlers.SignupHandler)
	api_v1.POST("/auth/login", handlers.LoginHandler)
	api_v1.POST("/auth/logout", handlers.LogoutHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession))
	api_v1.POST("/auth/api-keys", handlers.CreateAPIKeyHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession))
	api_v1.GET("/auth/api-keys", handlers.GetAllAPIKeyHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession))
	api_v1.DELETE("/auth/api-keys/:key_id", handlers.DeleteAPIKeyHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession))
	api_v1.POST("/projects/", handlers.CreateProjectHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.GET("/projects/", handlers.GetAllProjectsHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.GET("/projects/:project_id", handlers.GetProjectHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.DELETE("/projects/:project_id", handlers.CancelProjectHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.GET("/projects/:project_id/reviews", handlers.GetProjectReviewsHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.PUT("/projects/:project_id/milestones/:milestone_id", handlers.UpdateMilestoneHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.POST("/projects/:project_id/milestones/:milestone_id/start", handlers.StartMilestoneHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.POST("/projects/:project_id/milestones/:milestone_id/submit", handlers.SubmitMilestoneHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.GET("/portal/:portal_token", handlers.GetPortalProjectHandler, middlewares.VerifyPortalTokenMiddleware())
	api_v1.POST("/portal/:portal_token/milestones/:milestone_id/approve", handlers.ApproveMilestoneHandler, middlewares.VerifyPortalTokenMiddleware())
	api_v1.POST("/portal/:portal_token/milestones/:milestone_id/reject", handlers.RejectMilestoneHandler, middlewares.VerifyPortalTokenMiddleware())
	api_v1.POST("/portal/:portal_token/reviews", handlers.CreateReviewHandler, middlewares.VerifyPortalTokenMiddleware())
	api_v1.GET("/dashboard/summary", handlers.GetDashboardSummaryHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.GET("/activity-logs", handlers.GetActivityLogsHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	api_v1.GET("/activity-logs/summary", handlers.GetActivityLogsSummaryHandler, middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey))
	commons.Logger.Info("v1 routes registered successfully")
}
