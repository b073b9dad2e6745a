package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"workspan-server/db"
	"workspan-server/lifecycle"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB points db.Conn at a fresh in-memory database named after the
// test, so tests never see each other's rows.
func newTestDB(t *testing.T) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn
}

// newPortalContext builds an echo context the way the portal middleware
// leaves it: resolved project in the context, milestone ID as a path param.
func newPortalContext(t *testing.T, project models.Project, milestoneID, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("portal_project", project)
	if milestoneID != "" {
		c.SetParamNames("milestone_id")
		c.SetParamValues(milestoneID)
	}
	return c, rec
}

func TestRejectMilestoneStoresNotesOnAttachments(t *testing.T) {
	newTestDB(t)

	project := models.Project{
		ProjectID:    "proj_rejecttest0001",
		Title:        "Marketing site",
		PriceCents:   100000,
		DurationDays: 30,
		Status:       lifecycle.ProjectInProgress,
		PortalToken:  "prt_rejecttest0001",
		ClientName:   "Jamie Rivers",
		ClientEmail:  "jamie@example.com",
	}
	if err := db.Conn.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	milestone := models.Milestone{
		MilestoneID:     "mls_rejecttest0001",
		Title:           "Homepage",
		PriceCents:      10000,
		BasePriceCents:  10000,
		DurationDays:    7,
		FreeRevisions:   0,
		RevisionRatePct: 10,
		Status:          lifecycle.MilestoneSubmitted,
		ProjectID:       project.ID,
	}
	if err := db.Conn.Create(&milestone).Error; err != nil {
		t.Fatalf("Failed to create milestone: %v", err)
	}

	attachment := models.MediaAttachment{
		AttachmentID:     "att_rejecttest0001",
		FileName:         "homepage.fig",
		FileURL:          "https://cdn.example.com/homepage.fig",
		SubmissionStatus: models.SubmissionSubmitted,
		MilestoneID:      milestone.ID,
		ProjectID:        project.ID,
	}
	if err := db.Conn.Create(&attachment).Error; err != nil {
		t.Fatalf("Failed to create attachment: %v", err)
	}

	notes := "The header is too crowded, please simplify"
	c, rec := newPortalContext(t, project, milestone.MilestoneID, fmt.Sprintf(`{"notes": %q}`, notes))

	if err := RejectMilestoneHandler(c); err != nil {
		t.Fatalf("RejectMilestoneHandler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var gotAttachment models.MediaAttachment
	if err := db.Conn.First(&gotAttachment, attachment.ID).Error; err != nil {
		t.Fatalf("Failed to reload attachment: %v", err)
	}
	if gotAttachment.SubmissionStatus != models.SubmissionRejected {
		t.Errorf("Attachment status = %s, want %s", gotAttachment.SubmissionStatus, models.SubmissionRejected)
	}
	if gotAttachment.Notes == nil || *gotAttachment.Notes != notes {
		t.Errorf("Attachment notes = %v, want revision notes stored", gotAttachment.Notes)
	}

	var gotMilestone models.Milestone
	if err := db.Conn.First(&gotMilestone, milestone.ID).Error; err != nil {
		t.Fatalf("Failed to reload milestone: %v", err)
	}
	if gotMilestone.Status != lifecycle.MilestoneRejected {
		t.Errorf("Milestone status = %s, want %s", gotMilestone.Status, lifecycle.MilestoneRejected)
	}
	if gotMilestone.UsedRevisions != 1 {
		t.Errorf("Used revisions = %d, want 1", gotMilestone.UsedRevisions)
	}
	if gotMilestone.PriceCents != 11000 {
		t.Errorf("Milestone price = %d, want 11000", gotMilestone.PriceCents)
	}
	if gotMilestone.RevisionNotes == nil || *gotMilestone.RevisionNotes != notes {
		t.Errorf("Milestone revision notes = %v, want revision notes stored", gotMilestone.RevisionNotes)
	}
}
