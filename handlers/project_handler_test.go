package handlers

import (
	"encoding/json"
	"testing"
)

func TestCreateProjectRequestWithMilestones(t *testing.T) {
	jsonPayload := `{
		"title": "Marketing site redesign",
		"price_cents": 500000,
		"duration_days": 30,
		"client_name": "Acme Corp",
		"client_email": "ops@acme.example",
		"milestones": [
			{
				"title": "Wireframes",
				"price_cents": 150000,
				"duration_days": 7,
				"free_revisions": 2,
				"revision_rate_pct": 10
			},
			{
				"title": "Visual design",
				"price_cents": 350000,
				"duration_days": 21
			}
		]
	}`

	var req CreateProjectRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal CreateProjectRequest: %v", err)
	}

	if req.Title != "Marketing site redesign" {
		t.Errorf("Expected title 'Marketing site redesign', got %s", req.Title)
	}
	if req.PriceCents != 500000 {
		t.Errorf("Expected price_cents 500000, got %d", req.PriceCents)
	}
	if req.ClientEmail != "ops@acme.example" {
		t.Errorf("Expected client_email 'ops@acme.example', got %s", req.ClientEmail)
	}
	if len(req.Milestones) != 2 {
		t.Fatalf("Expected 2 milestones, got %d", len(req.Milestones))
	}
	if req.Milestones[0].FreeRevisions != 2 {
		t.Errorf("Expected free_revisions 2, got %d", req.Milestones[0].FreeRevisions)
	}
	if req.Milestones[0].RevisionRatePct != 10 {
		t.Errorf("Expected revision_rate_pct 10, got %d", req.Milestones[0].RevisionRatePct)
	}
	// Revision terms default to zero when left out
	if req.Milestones[1].FreeRevisions != 0 || req.Milestones[1].RevisionRatePct != 0 {
		t.Errorf("Expected zero revision terms, got %d/%d",
			req.Milestones[1].FreeRevisions, req.Milestones[1].RevisionRatePct)
	}
}

func TestRejectMilestoneRequestStructure(t *testing.T) {
	jsonPayload := `{"notes": "The header spacing is off on mobile"}`

	var req RejectMilestoneRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal RejectMilestoneRequest: %v", err)
	}

	if req.Notes != "The header spacing is off on mobile" {
		t.Errorf("Expected revision notes, got %s", req.Notes)
	}
}

func TestCreateReviewRequestProjectScope(t *testing.T) {
	// No milestone_id means the review covers the whole project
	jsonPayload := `{"stars": 5, "body": "Great to work with"}`

	var req CreateReviewRequest
	err := json.Unmarshal([]byte(jsonPayload), &req)
	if err != nil {
		t.Fatalf("Failed to unmarshal CreateReviewRequest: %v", err)
	}

	if req.Stars != 5 {
		t.Errorf("Expected stars 5, got %d", req.Stars)
	}
	if req.Body == nil || *req.Body != "Great to work with" {
		t.Errorf("Expected review body, got %v", req.Body)
	}
	if req.MilestoneID != nil {
		t.Errorf("Expected milestone_id to be nil, got %v", req.MilestoneID)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{150000, "$1500.00"},
		{123456, "$1234.56"},
	}
	for _, c := range cases {
		if got := formatCents(c.cents); got != c.want {
			t.Errorf("formatCents(%d) = %s, want %s", c.cents, got, c.want)
		}
	}
}
