// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"time"
	"workspan-server/db"
	"workspan-server/middlewares"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetActivityLogsHandler godoc
// @Summary      List activity logs
// @Description  Retrieves the authenticated user's activity trail, newest first. The trail is written asynchronously by the activity consumer, so very recent actions may take a moment to appear.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        category  query  string  false  "Filter by category: PROJECT, MILESTONE, REVIEW or AUTH"
// @Param        project_id  query  string  false  "Filter by project ID"
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} ActivityLogListResponse "Paginated list of activity logs"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/activity-logs [get]
func GetActivityLogsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	filter := func(query *gorm.DB) *gorm.DB {
		query = query.Where("user_id = ?", user.ID)
		if category := c.QueryParam("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if projectID := c.QueryParam("project_id"); projectID != "" {
			query = query.Where("project_id = ?", projectID)
		}
		return query
	}

	var total int64
	if err := filter(db.Conn.Model(&models.ActivityLog{})).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count activity logs: %v", err)
		return echo.ErrInternalServerError
	}

	page, pageSize := paginationParams(c)
	offset := (page - 1) * pageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var logs []models.ActivityLog
	if err := filter(db.Conn).Order("occurred_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&logs).Error; err != nil {
		logger.Errorf("Failed to fetch activity logs: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]ActivityLogDetails, 0, len(logs))
	for i := range logs {
		details = append(details, ActivityLogDetails{
			EID:         logs[i].EID.String(),
			Category:    string(logs[i].Category),
			Action:      logs[i].Action,
			Actor:       string(logs[i].Actor),
			ProjectID:   logs[i].ProjectID,
			MilestoneID: logs[i].MilestoneID,
			Description: logs[i].Description,
			OccurredAt:  logs[i].OccurredAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, ActivityLogListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Activity logs retrieved successfully",
	})
}

// GetActivityLogsSummaryHandler godoc
// @Summary      Activity summary
// @Description  Event counts per category and the time of the most recent event, across the authenticated user's activity trail.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object} ActivityLogSummaryResponse "Activity summary"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/activity-logs/summary [get]
func GetActivityLogsSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var rows []struct {
		Category models.ActivityCategory
		Count    int64
	}
	if err := db.Conn.Model(&models.ActivityLog{}).
		Where("user_id = ?", user.ID).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error; err != nil {
		logger.Errorf("Failed to summarize activity logs: %v", err)
		return echo.ErrInternalServerError
	}

	var total int64
	categories := make(map[string]int64, len(rows))
	for _, row := range rows {
		categories[string(row.Category)] = row.Count
		total += row.Count
	}

	var lastActivityAt *string
	if total > 0 {
		latest := models.ActivityLog{}
		if err := db.Conn.Where("user_id = ?", user.ID).
			Order("occurred_at DESC").
			First(&latest).Error; err != nil {
			logger.Errorf("Failed to fetch latest activity: %v", err)
			return echo.ErrInternalServerError
		}
		formatted := latest.OccurredAt.Format(time.RFC3339)
		lastActivityAt = &formatted
	}

	return c.JSON(http.StatusOK, ActivityLogSummaryResponse{
		Total:          total,
		Categories:     categories,
		LastActivityAt: lastActivityAt,
		Message:        "Activity summary retrieved successfully",
	})
}
