// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"workspan-server/commons"
	"workspan-server/crypto"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/middlewares"
	"workspan-server/models"
	"workspan-server/notifications"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func findOwnedMilestone(c echo.Context, userID uint) (*models.Project, *models.Milestone, error) {
	logger := c.Logger()

	project := models.Project{}
	if err := db.Conn.Where("project_id = ? AND user_id = ?", c.Param("project_id"), userID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Project not found.")
			return nil, nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Project not found",
			}
		}
		logger.Errorf("Failed to find project: %v", err)
		return nil, nil, echo.ErrInternalServerError
	}

	milestone := models.Milestone{}
	if err := db.Conn.Where("milestone_id = ? AND project_id = ?", c.Param("milestone_id"), project.ID).
		First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Milestone not found.")
			return nil, nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Milestone not found",
			}
		}
		logger.Errorf("Failed to find milestone: %v", err)
		return nil, nil, echo.ErrInternalServerError
	}

	return &project, &milestone, nil
}

// UpdateMilestoneHandler godoc
// @Summary      Update a milestone
// @Description  Partially updates a milestone. Only milestones that have not been started can change; omitted fields keep their value; a request that changes nothing succeeds without writing. Price and duration changes are re-validated against the live sibling sums and the project ceilings.
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        project_id    path  string  true  "Project ID"
// @Param        milestone_id  path  string  true  "Milestone ID"
// @Param        updateMilestoneRequest  body  UpdateMilestoneRequest  true  "Fields to change"
// @Success      200 {object} UpdateMilestoneResponse "Milestone updated (or unchanged)"
// @Failure      400 {object} echo.HTTPError  "Bad request, invalid field values"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Project or milestone not found"
// @Failure      409 {object} echo.HTTPError  "Milestone already started"
// @Failure      422 {object} echo.HTTPError  "Change exceeds the project budget or duration"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/projects/{project_id}/milestones/{milestone_id} [put]
func UpdateMilestoneHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	project, milestone, err := findOwnedMilestone(c, user.ID)
	if err != nil {
		return err
	}

	var req UpdateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update milestone request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	patch := lifecycle.MilestonePatch{
		Title:           req.Title,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DurationDays:    req.DurationDays,
		FreeRevisions:   req.FreeRevisions,
		RevisionRatePct: req.RevisionRatePct,
	}

	if err := patch.Validate(); err != nil {
		logger.Error("Milestone patch validation failed:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	if !lifecycle.CanUpdate(milestone.Status) {
		logger.Error("Milestone is no longer editable.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Milestone can only be changed before work starts",
		}
	}

	changes := patch.Diff(milestone.Fields())
	if changes.Empty() {
		logger.Info("Milestone update is a no-op")
		return c.JSON(http.StatusOK, UpdateMilestoneResponse{
			Milestone: milestoneDetails(milestone),
			Changed:   false,
			Message:   "No changes detected",
		})
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	// Ceiling checks run against the sibling sums as they are right now,
	// inside the transaction, so concurrent edits cannot sneak past them.
	if changes.NewPriceCents != nil {
		var siblingSum int64
		if err := tx.Model(&models.Milestone{}).
			Where("project_id = ? AND id != ? AND status != ?", project.ID, milestone.ID, lifecycle.MilestoneCancelled).
			Select("COALESCE(SUM(price_cents), 0)").
			Scan(&siblingSum).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to sum sibling prices: %v", err)
			return echo.ErrInternalServerError
		}
		if err := lifecycle.CheckBudget(siblingSum, *changes.NewPriceCents, project.PriceCents); err != nil {
			tx.Rollback()
			logger.Error("Milestone budget ceiling exceeded:", err)
			return &echo.HTTPError{
				Code:    http.StatusUnprocessableEntity,
				Message: err.Error(),
			}
		}
	}

	if changes.NewDurationDays != nil {
		var siblingSum uint
		if err := tx.Model(&models.Milestone{}).
			Where("project_id = ? AND id != ? AND status != ?", project.ID, milestone.ID, lifecycle.MilestoneCancelled).
			Select("COALESCE(SUM(duration_days), 0)").
			Scan(&siblingSum).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to sum sibling durations: %v", err)
			return echo.ErrInternalServerError
		}
		if err := lifecycle.CheckDuration(siblingSum, *changes.NewDurationDays, project.DurationDays); err != nil {
			tx.Rollback()
			logger.Error("Milestone duration ceiling exceeded:", err)
			return &echo.HTTPError{
				Code:    http.StatusUnprocessableEntity,
				Message: err.Error(),
			}
		}
	}

	// Pre-start edits reset the agreed price; surcharges only accrue after
	// work begins, so the base moves with it.
	if changes.NewPriceCents != nil {
		changes.Columns["base_price_cents"] = *changes.NewPriceCents
	}

	if err := tx.Model(milestone).Updates(changes.Columns).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to update milestone: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logMilestoneActivity("milestone_updated", models.ActorAgency, project, milestone, "")

	logger.Infof("Milestone updated successfully")
	return c.JSON(http.StatusOK, UpdateMilestoneResponse{
		Milestone: milestoneDetails(milestone),
		Changed:   true,
		Message:   "Milestone updated successfully",
	})
}

// StartMilestoneHandler godoc
// @Summary      Start a milestone
// @Description  Moves a milestone into in_progress. Allowed from not_started and from rejected (rework after a revision request). Starting the first milestone moves the project into in_progress.
// @Tags         milestones
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        project_id    path  string  true  "Project ID"
// @Param        milestone_id  path  string  true  "Milestone ID"
// @Success      200 {object} MilestoneActionResponse "Milestone started"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Project or milestone not found"
// @Failure      409 {object} echo.HTTPError  "Current status does not allow starting"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/projects/{project_id}/milestones/{milestone_id}/start [post]
func StartMilestoneHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	project, milestone, err := findOwnedMilestone(c, user.ID)
	if err != nil {
		return err
	}

	next, err := lifecycle.Transition(milestone.Status, lifecycle.ActionStart)
	if err != nil {
		logger.Error("Invalid milestone transition:", err)
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: err.Error(),
		}
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Model(milestone).Update("status", next).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to start milestone: %v", err)
		return echo.ErrInternalServerError
	}

	if project.Status == lifecycle.ProjectPending {
		if err := tx.Model(project).Update("status", lifecycle.ProjectInProgress).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to move project into progress: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	milestone.Status = next
	logMilestoneActivity("milestone_started", models.ActorAgency, project, milestone, "")

	logger.Infof("Milestone started successfully")
	return c.JSON(http.StatusOK, MilestoneActionResponse{
		Milestone: milestoneDetails(milestone),
		Message:   "Milestone started",
	})
}

// SubmitMilestoneHandler godoc
// @Summary      Submit a milestone for review
// @Description  Submits an in-progress milestone to the client, optionally with deliverable attachments. The client is notified by email and reviews the work from the portal.
// @Tags         milestones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        project_id    path  string  true  "Project ID"
// @Param        milestone_id  path  string  true  "Milestone ID"
// @Param        submitMilestoneRequest  body  SubmitMilestoneRequest  true  "Submission payload"
// @Success      200 {object} MilestoneActionResponse "Milestone submitted"
// @Failure      400 {object} echo.HTTPError  "Bad request, invalid attachment fields"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "Project or milestone not found"
// @Failure      409 {object} echo.HTTPError  "Current status does not allow submitting"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/projects/{project_id}/milestones/{milestone_id}/submit [post]
func SubmitMilestoneHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	project, milestone, err := findOwnedMilestone(c, user.ID)
	if err != nil {
		return err
	}

	var req SubmitMilestoneRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid submit milestone request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	for i, a := range req.Attachments {
		if a.FileName == "" || a.FileURL == "" {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("attachments[%d] requires file_name and file_url", i),
			}
		}
	}

	next, err := lifecycle.Transition(milestone.Status, lifecycle.ActionSubmit)
	if err != nil {
		logger.Error("Invalid milestone transition:", err)
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: err.Error(),
		}
	}

	now := time.Now()

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	updates := map[string]any{
		"status":       next,
		"submitted_at": now,
	}
	if req.Notes != nil {
		updates["submission_notes"] = *req.Notes
	}
	if err := tx.Model(milestone).Updates(updates).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to submit milestone: %v", err)
		return echo.ErrInternalServerError
	}

	for _, a := range req.Attachments {
		attachmentID, err := crypto.GenerateRandomString("att_", 16, "hex")
		if err != nil {
			tx.Rollback()
			logger.Errorf("Failed to generate attachment ID: %v", err)
			return echo.ErrInternalServerError
		}
		attachment := models.MediaAttachment{
			AttachmentID:     attachmentID,
			FileName:         a.FileName,
			FileURL:          a.FileURL,
			SubmissionStatus: models.SubmissionSubmitted,
			Notes:            a.Notes,
			MilestoneID:      milestone.ID,
			ProjectID:        project.ID,
		}
		if err := tx.Create(&attachment).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to create attachment: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	milestone.Status = next
	milestone.SubmittedAt = &now
	if req.Notes != nil {
		milestone.SubmissionNotes = req.Notes
	}

	logMilestoneActivity("milestone_submitted", models.ActorAgency, project, milestone, "")

	portalURL := commons.GetEnv("PORTAL_BASE_URL", "https://portal.workspan.app") + "/" + project.PortalToken
	clientName := project.ClientName
	vars := map[string]any{
		"ClientName":     project.ClientName,
		"ProjectTitle":   project.Title,
		"MilestoneTitle": milestone.Title,
		"PortalURL":      portalURL,
	}
	if milestone.SubmissionNotes != nil {
		vars["SubmissionNotes"] = *milestone.SubmissionNotes
	}
	go notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:        project.ClientEmail,
		ToName:    &clientName,
		Subject:   "Work submitted for review on " + project.Title,
		Template:  "milestone_submitted",
		Variables: vars,
	})

	logger.Infof("Milestone submitted successfully")
	return c.JSON(http.StatusOK, MilestoneActionResponse{
		Milestone: milestoneDetails(milestone),
		Message:   "Milestone submitted for review",
	})
}
