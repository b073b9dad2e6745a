// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"time"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
)

func milestoneDetails(m *models.Milestone) MilestoneDetails {
	detail := MilestoneDetails{
		MilestoneID:     m.MilestoneID,
		Title:           m.Title,
		Description:     m.Description,
		PriceCents:      m.PriceCents,
		DurationDays:    m.DurationDays,
		FreeRevisions:   m.FreeRevisions,
		UsedRevisions:   m.UsedRevisions,
		RevisionRatePct: m.RevisionRatePct,
		Status:          string(m.Status),
		IsArchived:      m.IsArchived,
		SubmissionNotes: m.SubmissionNotes,
		RevisionNotes:   m.RevisionNotes,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339),
	}
	if m.SubmittedAt != nil {
		submitted := m.SubmittedAt.Format(time.RFC3339)
		detail.SubmittedAt = &submitted
	}
	if m.ApprovedAt != nil {
		approved := m.ApprovedAt.Format(time.RFC3339)
		detail.ApprovedAt = &approved
	}
	return detail
}

func projectDetails(p *models.Project, includePortalToken bool) ProjectDetails {
	detail := ProjectDetails{
		ProjectID:    p.ProjectID,
		Title:        p.Title,
		Description:  p.Description,
		PriceCents:   p.PriceCents,
		DurationDays: p.DurationDays,
		Status:       string(p.Status),
		ClientName:   p.ClientName,
		ClientEmail:  p.ClientEmail,
		ClientPhone:  p.ClientPhone,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if includePortalToken {
		detail.PortalToken = p.PortalToken
	}
	for i := range p.Milestones {
		detail.Milestones = append(detail.Milestones, milestoneDetails(&p.Milestones[i]))
	}
	return detail
}

func attachmentDetails(a *models.MediaAttachment) AttachmentDetails {
	return AttachmentDetails{
		AttachmentID:     a.AttachmentID,
		FileName:         a.FileName,
		FileURL:          a.FileURL,
		SubmissionStatus: string(a.SubmissionStatus),
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
	}
}

func reviewDetails(r *models.Review, milestoneID *string) ReviewDetails {
	return ReviewDetails{
		ReviewID:    r.ReviewID,
		Stars:       r.Stars,
		Body:        r.Body,
		MilestoneID: milestoneID,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

// paginationParams reads page/page_size query parameters with the usual
// defaults and cap.
func paginationParams(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 10
	if p := c.QueryParam("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if _, err := fmt.Sscanf(ps, "%d", &pageSize); err != nil || pageSize < 1 {
			pageSize = 10
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
