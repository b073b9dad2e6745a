// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/middlewares"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
)

// GetDashboardSummaryHandler godoc
// @Summary      Dashboard summary
// @Description  Aggregate numbers across the authenticated user's projects: project counts by status, milestones waiting on clients, total contract value, revenue earned from revision surcharges and the average review rating.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} DashboardSummaryResponse "Dashboard summary"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/dashboard/summary [get]
func GetDashboardSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var totalProjects int64
	if err := db.Conn.Model(&models.Project{}).
		Where("user_id = ?", user.ID).
		Count(&totalProjects).Error; err != nil {
		logger.Errorf("Failed to count projects: %v", err)
		return echo.ErrInternalServerError
	}

	var inProgress int64
	if err := db.Conn.Model(&models.Project{}).
		Where("user_id = ? AND status = ?", user.ID, lifecycle.ProjectInProgress).
		Count(&inProgress).Error; err != nil {
		logger.Errorf("Failed to count in-progress projects: %v", err)
		return echo.ErrInternalServerError
	}

	var completed int64
	if err := db.Conn.Model(&models.Project{}).
		Where("user_id = ? AND status = ?", user.ID, lifecycle.ProjectCompleted).
		Count(&completed).Error; err != nil {
		logger.Errorf("Failed to count completed projects: %v", err)
		return echo.ErrInternalServerError
	}

	var awaitingReview int64
	if err := db.Conn.Model(&models.Milestone{}).
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.user_id = ? AND milestones.status = ?", user.ID, lifecycle.MilestoneSubmitted).
		Count(&awaitingReview).Error; err != nil {
		logger.Errorf("Failed to count submitted milestones: %v", err)
		return echo.ErrInternalServerError
	}

	var inRevision int64
	if err := db.Conn.Model(&models.Milestone{}).
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.user_id = ? AND milestones.status = ?", user.ID, lifecycle.MilestoneRejected).
		Count(&inRevision).Error; err != nil {
		logger.Errorf("Failed to count rejected milestones: %v", err)
		return echo.ErrInternalServerError
	}

	var approved int64
	if err := db.Conn.Model(&models.Milestone{}).
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.user_id = ? AND milestones.status = ?", user.ID, lifecycle.MilestoneApproved).
		Count(&approved).Error; err != nil {
		logger.Errorf("Failed to count approved milestones: %v", err)
		return echo.ErrInternalServerError
	}

	// Earned is the approved work; outstanding is everything still in
	// flight, at its current surcharged price.
	var earnedCents int64
	if err := db.Conn.Model(&models.Milestone{}).
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.user_id = ? AND milestones.status = ?", user.ID, lifecycle.MilestoneApproved).
		Select("COALESCE(SUM(milestones.price_cents), 0)").
		Scan(&earnedCents).Error; err != nil {
		logger.Errorf("Failed to sum earned cents: %v", err)
		return echo.ErrInternalServerError
	}

	var outstandingCents int64
	if err := db.Conn.Model(&models.Milestone{}).
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.user_id = ? AND milestones.status NOT IN ?", user.ID,
			[]lifecycle.MilestoneStatus{lifecycle.MilestoneApproved, lifecycle.MilestoneCancelled}).
		Select("COALESCE(SUM(milestones.price_cents), 0)").
		Scan(&outstandingCents).Error; err != nil {
		logger.Errorf("Failed to sum outstanding cents: %v", err)
		return echo.ErrInternalServerError
	}

	// Cancelled projects drop out of the contract value, same as they drop
	// out of everything else.
	var totalPriceCents int64
	if err := db.Conn.Model(&models.Project{}).
		Where("user_id = ? AND status != ?", user.ID, lifecycle.ProjectCancelled).
		Select("COALESCE(SUM(price_cents), 0)").
		Scan(&totalPriceCents).Error; err != nil {
		logger.Errorf("Failed to sum project prices: %v", err)
		return echo.ErrInternalServerError
	}

	// Every surcharge grows a milestone's price above its agreed base, so
	// the spread over all non-cancelled milestones is the revision revenue.
	var revisionRevenueCents int64
	if err := db.Conn.Model(&models.Milestone{}).
		Joins("JOIN projects ON projects.id = milestones.project_id").
		Where("projects.user_id = ? AND milestones.status != ?", user.ID, lifecycle.MilestoneCancelled).
		Select("COALESCE(SUM(milestones.price_cents - milestones.base_price_cents), 0)").
		Scan(&revisionRevenueCents).Error; err != nil {
		logger.Errorf("Failed to sum revision revenue: %v", err)
		return echo.ErrInternalServerError
	}

	var averageRating *float64
	if err := db.Conn.Model(&models.Review{}).
		Joins("JOIN projects ON projects.id = reviews.project_id").
		Where("projects.user_id = ?", user.ID).
		Select("AVG(reviews.stars)").
		Scan(&averageRating).Error; err != nil {
		logger.Errorf("Failed to average review stars: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		TotalProjects:            totalProjects,
		ProjectsInProgress:       inProgress,
		ProjectsCompleted:        completed,
		MilestonesApproved:       approved,
		MilestonesAwaitingReview: awaitingReview,
		MilestonesInRevision:     inRevision,
		TotalPriceCents:          totalPriceCents,
		EarnedCents:              earnedCents,
		OutstandingCents:         outstandingCents,
		RevisionRevenueCents:     revisionRevenueCents,
		AverageRating:            averageRating,
		Message:                  "Dashboard summary retrieved successfully",
	})
}
