// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/middlewares"
	"workspan-server/models"
	"workspan-server/notifications"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func findPortalMilestone(c echo.Context, project *models.Project) (*models.Milestone, error) {
	logger := c.Logger()

	milestone := models.Milestone{}
	if err := db.Conn.Where("milestone_id = ? AND project_id = ?", c.Param("milestone_id"), project.ID).
		First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Milestone not found.")
			return nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Milestone not found",
			}
		}
		logger.Errorf("Failed to find milestone: %v", err)
		return nil, echo.ErrInternalServerError
	}

	return &milestone, nil
}

func notifyAgency(project *models.Project, subject, template string, vars map[string]any) {
	user := models.User{}
	if err := db.Conn.Where("id = ?", project.UserID).First(&user).Error; err != nil {
		return
	}
	go notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:        user.Email,
		ToName:    user.CompanyName,
		Subject:   subject,
		Template:  template,
		Variables: vars,
	})
}

// ApproveMilestoneHandler godoc
// @Summary      Approve a submitted milestone
// @Description  Client approval of submitted work. The milestone becomes approved and archived, its attachments are marked approved, and when every remaining milestone of the project is approved the project becomes completed.
// @Tags         portal
// @Produce      json
// @Param        portal_token  path  string  true  "Portal token"
// @Param        milestone_id  path  string  true  "Milestone ID"
// @Success      200 {object} ApproveMilestoneResponse "Milestone approved"
// @Failure      404 {object} echo.HTTPError  "Portal or milestone not found"
// @Failure      409 {object} echo.HTTPError  "Milestone is not awaiting review"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/portal/{portal_token}/milestones/{milestone_id}/approve [post]
func ApproveMilestoneHandler(c echo.Context) error {
	logger := c.Logger()

	project, err := middlewares.GetPortalProject(c)
	if err != nil {
		logger.Error("Portal project not found in context:", err)
		return echo.ErrInternalServerError
	}

	milestone, err := findPortalMilestone(c, project)
	if err != nil {
		return err
	}

	next, err := lifecycle.Transition(milestone.Status, lifecycle.ActionApprove)
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

	// The status guard makes the approval idempotence-safe under races:
	// only one request can move the row out of submitted. Zero affected
	// rows after the transition check passed means the row changed under
	// us in a way the state machine never allows, so it is a server fault
	// rather than a client conflict.
	result := tx.Model(&models.Milestone{}).
		Where("id = ? AND status = ?", milestone.ID, milestone.Status).
		Updates(map[string]any{
			"status":      next,
			"is_archived": true,
			"approved_at": now,
		})
	if result.Error != nil {
		tx.Rollback()
		logger.Errorf("Failed to approve milestone: %v", result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		logger.Errorf("Milestone %s changed status mid-approval", milestone.MilestoneID)
		return echo.ErrInternalServerError
	}

	if err := tx.Model(&models.MediaAttachment{}).
		Where("milestone_id = ? AND submission_status = ?", milestone.ID, models.SubmissionSubmitted).
		Update("submission_status", models.SubmissionApproved).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to approve attachments: %v", err)
		return echo.ErrInternalServerError
	}

	// Recount inside the transaction so the completion decision sees this
	// approval and any concurrent ones in a consistent order.
	var statuses []lifecycle.MilestoneStatus
	if err := tx.Model(&models.Milestone{}).
		Where("project_id = ?", project.ID).
		Pluck("status", &statuses).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to recount milestones: %v", err)
		return echo.ErrInternalServerError
	}

	counts := lifecycle.TallyMilestones(statuses)
	projectCompleted := counts.ProjectCompleted()
	if projectCompleted {
		if err := tx.Model(project).Update("status", lifecycle.ProjectCompleted).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to complete project: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	milestone.Status = next
	milestone.IsArchived = true
	milestone.ApprovedAt = &now

	logMilestoneActivity("milestone_approved", models.ActorClient, project, milestone, "")
	if projectCompleted {
		logProjectActivity("project_completed", models.ActorClient, project, "All milestones approved")
	}

	notifyAgency(project, "Milestone approved on "+project.Title, "milestone_approved", map[string]any{
		"ClientName":       project.ClientName,
		"ProjectTitle":     project.Title,
		"MilestoneTitle":   milestone.Title,
		"ProjectCompleted": projectCompleted,
	})

	logger.Infof("Milestone approved successfully")
	return c.JSON(http.StatusOK, ApproveMilestoneResponse{
		Milestone:      milestoneDetails(milestone),
		ProjectUpdated: projectCompleted,
		Counts: MilestoneCountsDetails{
			Total:    counts.Total,
			Approved: counts.Approved,
			Pending:  counts.Pending,
		},
		Message: "Milestone approved",
	})
}

// RejectMilestoneHandler godoc
// @Summary      Request a revision on a submitted milestone
// @Description  Client rejection of submitted work, with mandatory notes. Free revisions come out of the milestone's allowance; once spent, each rejection charges the revision rate against the milestone's current price, and the surcharge compounds and is added to the project price.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        portal_token  path  string  true  "Portal token"
// @Param        milestone_id  path  string  true  "Milestone ID"
// @Param        rejectMilestoneRequest  body  RejectMilestoneRequest  true  "Revision request payload"
// @Success      200 {object} RejectMilestoneResponse "Revision requested"
// @Failure      400 {object} echo.HTTPError  "Bad request, notes missing or too long"
// @Failure      404 {object} echo.HTTPError  "Portal or milestone not found"
// @Failure      409 {object} echo.HTTPError  "Milestone is not awaiting review"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/portal/{portal_token}/milestones/{milestone_id}/reject [post]
func RejectMilestoneHandler(c echo.Context) error {
	logger := c.Logger()

	project, err := middlewares.GetPortalProject(c)
	if err != nil {
		logger.Error("Portal project not found in context:", err)
		return echo.ErrInternalServerError
	}

	milestone, err := findPortalMilestone(c, project)
	if err != nil {
		return err
	}

	var req RejectMilestoneRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid reject milestone request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if err := lifecycle.ValidateRevisionNotes(req.Notes); err != nil {
		logger.Error("Revision notes validation failed:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	next, err := lifecycle.Transition(milestone.Status, lifecycle.ActionReject)
	if err != nil {
		logger.Error("Invalid milestone transition:", err)
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: err.Error(),
		}
	}

	quote := lifecycle.QuoteRevision(milestone.RevisionTerms())

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	// Same guard as approval: losing the race to another reviewer action
	// after the transition check passed is a server fault.
	result := tx.Model(&models.Milestone{}).
		Where("id = ? AND status = ?", milestone.ID, milestone.Status).
		Updates(map[string]any{
			"status":         next,
			"used_revisions": milestone.UsedRevisions + 1,
			"price_cents":    quote.NewPriceCents,
			"revision_notes": req.Notes,
		})
	if result.Error != nil {
		tx.Rollback()
		logger.Errorf("Failed to reject milestone: %v", result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		logger.Errorf("Milestone %s changed status mid-rejection", milestone.MilestoneID)
		return echo.ErrInternalServerError
	}

	// The revision notes land on the rejected files too, so each
	// deliverable carries the feedback that bounced it.
	attachmentResult := tx.Model(&models.MediaAttachment{}).
		Where("milestone_id = ? AND submission_status = ?", milestone.ID, models.SubmissionSubmitted).
		Updates(map[string]any{
			"submission_status": models.SubmissionRejected,
			"notes":             req.Notes,
		})
	if attachmentResult.Error != nil {
		tx.Rollback()
		logger.Errorf("Failed to reject attachments: %v", attachmentResult.Error)
		return echo.ErrInternalServerError
	}

	// The project price is re-read inside the transaction so concurrent
	// surcharges on sibling milestones all land.
	projectPriceCents := project.PriceCents
	if quote.ChargeCents > 0 {
		current := models.Project{}
		if err := tx.Where("id = ?", project.ID).First(&current).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to re-read project: %v", err)
			return echo.ErrInternalServerError
		}
		projectPriceCents = current.PriceCents + quote.ChargeCents
		if err := tx.Model(&current).Update("price_cents", projectPriceCents).Error; err != nil {
			tx.Rollback()
			logger.Errorf("Failed to apply revision surcharge to project: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	milestone.Status = next
	milestone.UsedRevisions++
	milestone.PriceCents = quote.NewPriceCents
	milestone.RevisionNotes = &req.Notes
	project.PriceCents = projectPriceCents

	description := "Revision requested"
	if quote.ChargeCents > 0 {
		description = fmt.Sprintf("Revision requested, %d cents surcharge applied", quote.ChargeCents)
	}
	logMilestoneActivity("milestone_rejected", models.ActorClient, project, milestone, description)

	notifyAgency(project, "Revision requested on "+project.Title, "milestone_rejected", map[string]any{
		"ClientName":     project.ClientName,
		"ProjectTitle":   project.Title,
		"MilestoneTitle": milestone.Title,
		"RevisionNotes":  req.Notes,
		"ChargeApplied":  quote.ChargeCents > 0,
		"ChargeAmount":   formatCents(quote.ChargeCents),
		"NewPrice":       formatCents(milestone.PriceCents),
	})

	logger.Infof("Milestone revision requested successfully")
	return c.JSON(http.StatusOK, RejectMilestoneResponse{
		Milestone:               milestoneDetails(milestone),
		HasFreeRevisions:        quote.Free,
		RevisionChargeCents:     quote.ChargeCents,
		NewMilestonePriceCents:  quote.NewPriceCents,
		NewProjectPriceCents:    projectPriceCents,
		MediaAttachmentsUpdated: attachmentResult.RowsAffected,
		Message:                 "Revision requested",
	})
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
