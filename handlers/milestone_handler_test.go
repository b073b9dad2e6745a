package handlers

import (
	"encoding/json"
	"testing"
)

func TestUpdateMilestoneRequestPartialFields(t *testing.T) {
	// Omitted fields must stay nil so the patch treats them as untouched
	jsonPayload := `{
		"title": "Revised wireframes",
		"price_cents": 30000
	}`

	var req UpdateMilestoneRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal UpdateMilestoneRequest: %v", err)
	}

	if req.Title == nil || *req.Title != "Revised wireframes" {
		t.Errorf("Expected title 'Revised wireframes', got %v", req.Title)
	}
	if req.PriceCents == nil || *req.PriceCents != 30000 {
		t.Errorf("Expected price_cents 30000, got %v", req.PriceCents)
	}
	if req.Description != nil {
		t.Errorf("Expected description to be nil, got %v", req.Description)
	}
	if req.DurationDays != nil {
		t.Errorf("Expected duration_days to be nil, got %v", req.DurationDays)
	}
	if req.FreeRevisions != nil {
		t.Errorf("Expected free_revisions to be nil, got %v", req.FreeRevisions)
	}
	if req.RevisionRatePct != nil {
		t.Errorf("Expected revision_rate_pct to be nil, got %v", req.RevisionRatePct)
	}
}

func TestUpdateMilestoneRequestExplicitZero(t *testing.T) {
	// An explicit zero is a provided value, not an omission
	jsonPayload := `{"free_revisions": 0}`

	var req UpdateMilestoneRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal UpdateMilestoneRequest: %v", err)
	}

	if req.FreeRevisions == nil || *req.FreeRevisions != 0 {
		t.Errorf("Expected free_revisions 0, got %v", req.FreeRevisions)
	}
	if req.Title != nil {
		t.Errorf("Expected title to be nil, got %v", req.Title)
	}
}

func TestSubmitMilestoneRequestStructure(t *testing.T) {
	jsonPayload := `{
		"notes": "First pass at the homepage",
		"attachments": [
			{"file_name": "homepage.fig", "file_url": "https://cdn.example.com/homepage.fig"},
			{"file_name": "notes.pdf", "file_url": "https://cdn.example.com/notes.pdf", "notes": "Annotated"}
		]
	}`

	var req SubmitMilestoneRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal SubmitMilestoneRequest: %v", err)
	}

	if req.Notes == nil || *req.Notes != "First pass at the homepage" {
		t.Errorf("Expected submission notes, got %v", req.Notes)
	}
	if len(req.Attachments) != 2 {
		t.Fatalf("Expected 2 attachments, got %d", len(req.Attachments))
	}
	if req.Attachments[0].FileName != "homepage.fig" {
		t.Errorf("Expected file_name 'homepage.fig', got %s", req.Attachments[0].FileName)
	}
	if req.Attachments[0].Notes != nil {
		t.Errorf("Expected first attachment notes to be nil, got %v", req.Attachments[0].Notes)
	}
	if req.Attachments[1].Notes == nil || *req.Attachments[1].Notes != "Annotated" {
		t.Errorf("Expected second attachment notes 'Annotated', got %v", req.Attachments[1].Notes)
	}
}
