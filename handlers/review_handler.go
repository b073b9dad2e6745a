// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"workspan-server/crypto"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/middlewares"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CreateReviewHandler godoc
// @Summary      Leave a review
// @Description  Client review of a milestone or of the whole project. Only approved milestones can be reviewed, and each scope (one milestone, or the project itself) takes exactly one review.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        portal_token  path  string  true  "Portal token"
// @Param        createReviewRequest  body  CreateReviewRequest  true  "Review payload"
// @Success      201 {object} CreateReviewResponse "Review created"
// @Failure      400 {object} echo.HTTPError  "Bad request, invalid stars or milestone not reviewable"
// @Failure      404 {object} echo.HTTPError  "Portal or milestone not found"
// @Failure      409 {object} echo.HTTPError  "Scope already reviewed"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/portal/{portal_token}/reviews [post]
func CreateReviewHandler(c echo.Context) error {
	logger := c.Logger()

	project, err := middlewares.GetPortalProject(c)
	if err != nil {
		logger.Error("Portal project not found in context:", err)
		return echo.ErrInternalServerError
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create review request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Stars < 1 || req.Stars > 5 {
		logger.Error("Stars out of range.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "stars field must be between 1 and 5",
		}
	}

	var milestoneRowID *uint
	var publicMilestoneID *string
	if req.MilestoneID != nil && *req.MilestoneID != "" {
		milestone := models.Milestone{}
		if err := db.Conn.Where("milestone_id = ? AND project_id = ?", *req.MilestoneID, project.ID).
			First(&milestone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Error("Milestone not found.")
				return &echo.HTTPError{
					Code:    http.StatusNotFound,
					Message: "Milestone not found",
				}
			}
			logger.Errorf("Failed to find milestone: %v", err)
			return echo.ErrInternalServerError
		}
		if milestone.Status != lifecycle.MilestoneApproved {
			logger.Error("Milestone not approved yet.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Only approved milestones can be reviewed",
			}
		}
		milestoneRowID = &milestone.ID
		publicMilestoneID = &milestone.MilestoneID
	}

	reviewID, err := crypto.GenerateRandomString("rev_", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate review ID: %v", err)
		return echo.ErrInternalServerError
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	// The unique index on (project_id, milestone_id) backs this up, but
	// NULL milestone_id uniqueness differs across dialects, so the scope
	// is also checked here inside the transaction.
	scope := tx.Model(&models.Review{}).Where("project_id = ?", project.ID)
	if milestoneRowID != nil {
		scope = scope.Where("milestone_id = ?", *milestoneRowID)
	} else {
		scope = scope.Where("milestone_id IS NULL")
	}
	var existing int64
	if err := scope.Count(&existing).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to check existing reviews: %v", err)
		return echo.ErrInternalServerError
	}
	if existing > 0 {
		tx.Rollback()
		logger.Error("Scope already reviewed.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This has already been reviewed",
		}
	}

	review := models.Review{
		ReviewID:    reviewID,
		Stars:       req.Stars,
		Body:        req.Body,
		ProjectID:   project.ID,
		MilestoneID: milestoneRowID,
	}

	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create review: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logReviewActivity("review_created", project, publicMilestoneID, "")

	logger.Infof("Review created successfully")
	return c.JSON(http.StatusCreated, CreateReviewResponse{
		Review:  reviewDetails(&review, publicMilestoneID),
		Message: "Review submitted successfully",
	})
}

// GetProjectReviewsHandler godoc
// @Summary      List reviews for a project
// @Description  Retrieves the reviews left on one of the authenticated user's projects.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        project_id  path  string  true  "Project ID"
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} ReviewListResponse "Paginated list of reviews"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Project not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/projects/{project_id}/reviews [get]
func GetProjectReviewsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	project := models.Project{}
	if err := db.Conn.Where("project_id = ? AND user_id = ?", c.Param("project_id"), user.ID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Project not found.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Project not found",
			}
		}
		logger.Errorf("Failed to find project: %v", err)
		return echo.ErrInternalServerError
	}

	page, pageSize := paginationParams(c)

	var total int64
	if err := db.Conn.Model(&models.Review{}).Where("project_id = ?", project.ID).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count reviews: %v", err)
		return echo.ErrInternalServerError
	}

	offset := (page - 1) * pageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var reviews []models.Review
	if err := db.Conn.Preload("Milestone").
		Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		logger.Errorf("Failed to fetch reviews: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]ReviewDetails, 0, len(reviews))
	for i := range reviews {
		var publicMilestoneID *string
		if reviews[i].Milestone != nil {
			publicMilestoneID = &reviews[i].Milestone.MilestoneID
		}
		details = append(details, reviewDetails(&reviews[i], publicMilestoneID))
	}

	return c.JSON(http.StatusOK, ReviewListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Reviews retrieved successfully",
	})
}
