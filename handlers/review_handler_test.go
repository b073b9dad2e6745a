package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
)

func TestReviewUniquenessPerScope(t *testing.T) {
	newTestDB(t)

	project := models.Project{
		ProjectID:    "proj_reviewtest0001",
		Title:        "Marketing site",
		PriceCents:   100000,
		DurationDays: 30,
		Status:       lifecycle.ProjectCompleted,
		PortalToken:  "prt_reviewtest0001",
		ClientName:   "Jamie Rivers",
		ClientEmail:  "jamie@example.com",
	}
	if err := db.Conn.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	milestone := models.Milestone{
		MilestoneID:    "mls_reviewtest0001",
		Title:          "Homepage",
		PriceCents:     10000,
		BasePriceCents: 10000,
		DurationDays:   7,
		Status:         lifecycle.MilestoneApproved,
		IsArchived:     true,
		ProjectID:      project.ID,
	}
	if err := db.Conn.Create(&milestone).Error; err != nil {
		t.Fatalf("Failed to create milestone: %v", err)
	}

	requireConflict := func(err error) {
		t.Helper()
		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("Expected *echo.HTTPError, got %v", err)
		}
		if httpErr.Code != http.StatusConflict {
			t.Fatalf("Expected status 409, got %d", httpErr.Code)
		}
	}

	// First project-level review goes through
	c, rec := newPortalContext(t, project, "", `{"stars": 5, "body": "Great to work with"}`)
	if err := CreateReviewHandler(c); err != nil {
		t.Fatalf("CreateReviewHandler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	// A second project-level review is a conflict
	c, _ = newPortalContext(t, project, "", `{"stars": 3, "body": "Changed my mind"}`)
	requireConflict(CreateReviewHandler(c))

	// A milestone-scoped review is a separate scope and goes through
	milestoneBody := fmt.Sprintf(`{"stars": 4, "milestone_id": %q}`, milestone.MilestoneID)
	c, rec = newPortalContext(t, project, "", milestoneBody)
	if err := CreateReviewHandler(c); err != nil {
		t.Fatalf("CreateReviewHandler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	// Reviewing the same milestone twice is a conflict
	c, _ = newPortalContext(t, project, "", milestoneBody)
	requireConflict(CreateReviewHandler(c))

	var total int64
	if err := db.Conn.Model(&models.Review{}).Where("project_id = ?", project.ID).Count(&total).Error; err != nil {
		t.Fatalf("Failed to count reviews: %v", err)
	}
	if total != 2 {
		t.Errorf("Review count = %d, want 2 (one per scope)", total)
	}
}
