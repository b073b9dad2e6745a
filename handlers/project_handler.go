// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"workspan-server/commons"
	"workspan-server/crypto"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/middlewares"
	"workspan-server/models"
	"workspan-server/notifications"

	"github.com/labstack/echo/v4"
	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"
)

// CreateProjectHandler godoc
// @Summary      Create a project
// @Description  Creates a project with optional initial milestones. Milestone prices and durations are validated against the project's budget and duration ceilings. The client receives a portal invite email.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        createProjectRequest  body  CreateProjectRequest  true  "Project request payload"
// @Success      201 {object} CreateProjectResponse "Project created"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or invalid fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      422 {object} echo.HTTPError     "Milestones exceed the project budget or duration"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/projects/ [post]
func CreateProjectHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create project request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Title == "" {
		logger.Error("Title is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "title field is required",
		}
	}
	if req.PriceCents <= 0 {
		logger.Error("Price must be positive.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "price_cents field must be greater than zero",
		}
	}
	if req.DurationDays == 0 {
		logger.Error("Duration must be positive.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "duration_days field must be at least one day",
		}
	}
	if req.ClientName == "" {
		logger.Error("Client name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "client_name field is required",
		}
	}
	if req.ClientEmail == "" {
		logger.Error("Client email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "client_email field is required",
		}
	}
	if req.ClientPhone != nil && *req.ClientPhone != "" {
		parsed, err := phonenumbers.Parse(*req.ClientPhone, "")
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			logger.Error("Invalid client phone number.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "client_phone field must be a valid number in E.164 format, e.g. +14155552671",
			}
		}
	}

	// Validate the initial milestones together against the ceilings before
	// touching the database.
	var sumPriceCents int64
	var sumDurationDays uint
	for i, m := range req.Milestones {
		if m.Title == "" {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("milestones[%d].title field is required", i),
			}
		}
		if m.PriceCents <= 0 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("milestones[%d].price_cents field must be greater than zero", i),
			}
		}
		if m.DurationDays == 0 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("milestones[%d].duration_days field must be at least one day", i),
			}
		}
		if err := lifecycle.ValidateRevisionRate(m.RevisionRatePct); err != nil {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("milestones[%d]: %s", i, err.Error()),
			}
		}
		if err := lifecycle.CheckBudget(sumPriceCents, m.PriceCents, req.PriceCents); err != nil {
			logger.Error("Milestone budget ceiling exceeded:", err)
			return &echo.HTTPError{
				Code:    http.StatusUnprocessableEntity,
				Message: err.Error(),
			}
		}
		if err := lifecycle.CheckDuration(sumDurationDays, m.DurationDays, req.DurationDays); err != nil {
			logger.Error("Milestone duration ceiling exceeded:", err)
			return &echo.HTTPError{
				Code:    http.StatusUnprocessableEntity,
				Message: err.Error(),
			}
		}
		sumPriceCents += m.PriceCents
		sumDurationDays += m.DurationDays
	}

	projectID, err := crypto.GenerateRandomString("proj_", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate project ID: %v", err)
		return echo.ErrInternalServerError
	}

	portalToken, err := crypto.GenerateRandomString("prt_", 24, "hex")
	if err != nil {
		logger.Errorf("Failed to generate portal token: %v", err)
		return echo.ErrInternalServerError
	}

	project := models.Project{
		ProjectID:    projectID,
		Title:        req.Title,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		DurationDays: req.DurationDays,
		Status:       lifecycle.ProjectPending,
		PortalToken:  portalToken,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		ClientPhone:  req.ClientPhone,
		UserID:       user.ID,
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Create(&project).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create project: %v", err)
		return echo.ErrInternalServerError
	}

	for _, m := range req.Milestones {
		milestoneID, err := crypto.GenerateRandomString("mls_", 16, "hex")
		if err != nil {
			tx.Rollback()
			logger.Errorf("Failed to generate milestone ID: %v", err)
			return echo.ErrInternalServerError
		}
		milestone := models.Milestone{
			MilestoneID:     milestoneID,
			Title:           m.Title,
			Description:     m.Description,
			PriceCents:      m.PriceCents,
			BasePriceCents:  m.PriceCents,
			DurationDays:    m.DurationDays,
			FreeRevisions:   m.FreeRevisions,
			RevisionRatePct: m.RevisionRatePct,
			Status:          lifecycle.MilestoneNotStarted,
			ProjectID:       project.ID,
		}
		if err := tx.Create(&milestone).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to create milestone: %v", err)
			return echo.ErrInternalServerError
		}
		project.Milestones = append(project.Milestones, milestone)
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logProjectActivity("project_created", models.ActorAgency, &project, "Project created with "+fmt.Sprint(len(project.Milestones))+" milestones")

	portalURL := commons.GetEnv("PORTAL_BASE_URL", "https://portal.workspan.app") + "/" + project.PortalToken
	agencyName := "Your agency"
	if user.CompanyName != nil && *user.CompanyName != "" {
		agencyName = *user.CompanyName
	}
	clientName := project.ClientName
	go notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       project.ClientEmail,
		ToName:   &clientName,
		Subject:  "Your project portal for " + project.Title,
		Template: "portal_invite",
		Variables: map[string]any{
			"ClientName":   project.ClientName,
			"AgencyName":   agencyName,
			"ProjectTitle": project.Title,
			"PortalURL":    portalURL,
		},
	})

	logger.Infof("Project created successfully")
	return c.JSON(http.StatusCreated, CreateProjectResponse{
		Project: projectDetails(&project, true),
		Message: "Project created successfully",
	})
}

// GetAllProjectsHandler godoc
// @Summary      List projects
// @Description  Retrieves the authenticated user's projects, newest first.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Param        status   query   string  false  "Filter by project status"
// @Success      200 {object} ProjectListResponse "Paginated list of projects"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/projects/ [get]
func GetAllProjectsHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	page, pageSize := paginationParams(c)

	filter := func(query *gorm.DB) *gorm.DB {
		query = query.Where("user_id = ?", user.ID)
		if status := c.QueryParam("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		return query
	}

	var total int64
	if err := filter(db.Conn.Model(&models.Project{})).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count projects: %v", err)
		return echo.ErrInternalServerError
	}

	offset := (page - 1) * pageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var projects []models.Project
	if err := filter(db.Conn).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&projects).Error; err != nil {
		logger.Errorf("Failed to fetch projects: %v", err)
		return echo.ErrInternalServerError
	}

	// One grouped query for the page's milestone counts instead of a count
	// per project.
	countsByProject := make(map[uint]int64, len(projects))
	if len(projects) > 0 {
		projectIDs := make([]uint, 0, len(projects))
		for i := range projects {
			projectIDs = append(projectIDs, projects[i].ID)
		}
		var rows []struct {
			ProjectID uint
			Count     int64
		}
		if err := db.Conn.Model(&models.Milestone{}).
			Where("project_id IN ?", projectIDs).
			Select("project_id, COUNT(*) as count").
			Group("project_id").
			Scan(&rows).Error; err != nil {
			logger.Errorf("Failed to count milestones: %v", err)
			return echo.ErrInternalServerError
		}
		for _, row := range rows {
			countsByProject[row.ProjectID] = row.Count
		}
	}

	details := make([]ProjectDetails, 0, len(projects))
	for i := range projects {
		detail := projectDetails(&projects[i], false)
		count := countsByProject[projects[i].ID]
		detail.MilestoneCount = &count
		details = append(details, detail)
	}

	return c.JSON(http.StatusOK, ProjectListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Projects retrieved successfully",
	})
}

// GetProjectHandler godoc
// @Summary      Get a project
// @Description  Retrieves one project with its milestones, submission attachments and portal token.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        project_id  path  string  true  "Project ID"
// @Success      200 {object} GetProjectResponse "Project details"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Project not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/projects/{project_id} [get]
func GetProjectHandler(c echo.Context) error {
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
	if err := db.Conn.Preload("Milestones", func(db *gorm.DB) *gorm.DB {
		return db.Order("milestones.created_at ASC")
	}).Where("project_id = ? AND user_id = ?", c.Param("project_id"), user.ID).
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

	var attachments []models.MediaAttachment
	if err := db.Conn.Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		logger.Errorf("Failed to fetch attachments: %v", err)
		return echo.ErrInternalServerError
	}
	attachmentList := make([]AttachmentDetails, 0, len(attachments))
	for i := range attachments {
		attachmentList = append(attachmentList, attachmentDetails(&attachments[i]))
	}

	return c.JSON(http.StatusOK, GetProjectResponse{
		Project:     projectDetails(&project, true),
		Attachments: attachmentList,
		Message:     "Project retrieved successfully",
	})
}

// CancelProjectHandler godoc
// @Summary      Cancel a project
// @Description  Cancels a project and every milestone not already approved or cancelled. Cancelled projects drop out of the completion rollup.
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        project_id  path  string  true  "Project ID"
// @Success      200 {object} GenericResponse "Project cancelled"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Project not found"
// @Failure      409 {object} echo.HTTPError  "Project already finished"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/projects/{project_id} [delete]
func CancelProjectHandler(c echo.Context) error {
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

	if project.Status == lifecycle.ProjectCompleted || project.Status == lifecycle.ProjectCancelled {
		logger.Error("Project already finished.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: fmt.Sprintf("Project is already %s", project.Status),
		}
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Model(&models.Milestone{}).
		Where("project_id = ? AND status NOT IN ?", project.ID,
			[]lifecycle.MilestoneStatus{lifecycle.MilestoneApproved, lifecycle.MilestoneCancelled}).
		Update("status", lifecycle.MilestoneCancelled).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to cancel milestones: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Model(&project).Update("status", lifecycle.ProjectCancelled).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to cancel project: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logProjectActivity("project_cancelled", models.ActorAgency, &project, "")

	logger.Infof("Project cancelled successfully")
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "Project cancelled successfully",
	})
}
