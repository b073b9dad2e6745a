// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"workspan-server/db"
	"workspan-server/middlewares"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
)

// GetPortalProjectHandler godoc
// @Summary      View a project from the client portal
// @Description  Returns the project, its milestones and their attachments for the client identified by the portal token. No account or login is involved.
// @Tags         portal
// @Produce      json
// @Param        portal_token  path  string  true  "Portal token"
// @Success      200 {object} PortalProjectResponse "Project details"
// @Failure      404 {object} echo.HTTPError  "Portal not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/portal/{portal_token} [get]
func GetPortalProjectHandler(c echo.Context) error {
	logger := c.Logger()

	project, err := middlewares.GetPortalProject(c)
	if err != nil {
		logger.Error("Portal project not found in context:", err)
		return echo.ErrInternalServerError
	}

	var milestones []models.Milestone
	if err := db.Conn.Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&milestones).Error; err != nil {
		logger.Errorf("Failed to fetch milestones: %v", err)
		return echo.ErrInternalServerError
	}

	var attachments []models.MediaAttachment
	if err := db.Conn.Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		logger.Errorf("Failed to fetch attachments: %v", err)
		return echo.ErrInternalServerError
	}

	byMilestone := make(map[uint][]AttachmentDetails, len(milestones))
	for i := range attachments {
		byMilestone[attachments[i].MilestoneID] = append(byMilestone[attachments[i].MilestoneID], attachmentDetails(&attachments[i]))
	}

	details := make([]PortalMilestoneDetails, 0, len(milestones))
	for i := range milestones {
		details = append(details, PortalMilestoneDetails{
			MilestoneDetails: milestoneDetails(&milestones[i]),
			Attachments:      byMilestone[milestones[i].ID],
		})
	}

	var agencyName *string
	user := models.User{}
	if err := db.Conn.Where("id = ?", project.UserID).First(&user).Error; err == nil {
		agencyName = user.CompanyName
	}

	return c.JSON(http.StatusOK, PortalProjectResponse{
		Title:       project.Title,
		Description: project.Description,
		PriceCents:  project.PriceCents,
		Status:      string(project.Status),
		AgencyName:  agencyName,
		ClientName:  project.ClientName,
		Milestones:  details,
		Message:     "Project retrieved successfully",
	})
}
