// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"encoding/json"
	"testing"
)

func TestActivityEventJSONStructure(t *testing.T) {
	projectID := "proj_abc123"
	event := NewActivityEvent(ActivityMilestone, "milestone_approved", ActorClient)
	event.ProjectID = &projectID

	jsonData, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Failed to serialize ActivityEvent: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(jsonData, &jsonMap); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	// The consumer depends on these field names.
	requiredFields := []string{"eid", "category", "action", "actor", "occurred_at"}
	for _, field := range requiredFields {
		if _, exists := jsonMap[field]; !exists {
			t.Errorf("Required field %s missing from JSON", field)
		}
	}

	if jsonMap["category"] != "MILESTONE" {
		t.Errorf("Expected category MILESTONE, got %v", jsonMap["category"])
	}
	if jsonMap["action"] != "milestone_approved" {
		t.Errorf("Expected action milestone_approved, got %v", jsonMap["action"])
	}
	if jsonMap["actor"] != "CLIENT" {
		t.Errorf("Expected actor CLIENT, got %v", jsonMap["actor"])
	}
	if jsonMap["project_id"] != projectID {
		t.Errorf("Expected project_id %s, got %v", projectID, jsonMap["project_id"])
	}
	if _, exists := jsonMap["milestone_id"]; exists {
		t.Error("Unset milestone_id should be omitted from JSON")
	}

	if eid, ok := jsonMap["eid"].(string); !ok || eid == "" {
		t.Error("Expected non-empty eid field")
	}
}

func TestActivityEventRecord(t *testing.T) {
	milestoneID := "mls_def456"
	event := NewActivityEvent(ActivityMilestone, "milestone_rejected", ActorClient)
	event.MilestoneID = &milestoneID

	record, err := event.Record()
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if record.EID.String() != event.EID {
		t.Errorf("Record EID = %s, want %s", record.EID, event.EID)
	}
	if record.Category != ActivityMilestone || record.Action != "milestone_rejected" {
		t.Errorf("Record category/action = %s/%s", record.Category, record.Action)
	}
	if record.MilestoneID == nil || *record.MilestoneID != milestoneID {
		t.Errorf("Record milestone ID = %v, want %s", record.MilestoneID, milestoneID)
	}

	event.EID = "not-a-uuid"
	if _, err := event.Record(); err == nil {
		t.Error("Record should fail for a malformed event ID")
	}
}
