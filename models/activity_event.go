// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEvent is the wire form of one activity record, published to the
// activity exchange after a transaction commits and consumed by the
// activity worker. Field names are a stable contract with the consumer.
type ActivityEvent struct {
	// EID is the unique event identifier
	EID string `json:"eid"`
	// Category groups events by the kind of record they concern
	Category ActivityCategory `json:"category"`
	// Action names what happened, e.g. "milestone_approved"
	Action string `json:"action"`
	// Actor says who triggered the event: agency or client
	Actor ActivityActor `json:"actor"`
	// ProjectID is the public project identifier, when applicable
	ProjectID *string `json:"project_id,omitempty"`
	// MilestoneID is the public milestone identifier, when applicable
	MilestoneID *string `json:"milestone_id,omitempty"`
	// Description is free-form human-readable detail
	Description *string `json:"description,omitempty"`
	// UserID is the owning agency account, when known
	UserID *uint `json:"user_id,omitempty"`
	// OccurredAt is when the underlying transaction committed
	OccurredAt time.Time `json:"occurred_at"`
}

// NewActivityEvent stamps a fresh event with an identifier and timestamp.
func NewActivityEvent(category ActivityCategory, action string, actor ActivityActor) *ActivityEvent {
	return &ActivityEvent{
		EID:        uuid.New().String(),
		Category:   category,
		Action:     action,
		Actor:      actor,
		OccurredAt: time.Now(),
	}
}

// Record converts the event into the row the activity consumer persists.
func (e *ActivityEvent) Record() (*ActivityLog, error) {
	eid, err := uuid.Parse(e.EID)
	if err != nil {
		return nil, err
	}
	return &ActivityLog{
		EID:         eid,
		Category:    e.Category,
		Action:      e.Action,
		Actor:       e.Actor,
		ProjectID:   e.ProjectID,
		MilestoneID: e.MilestoneID,
		Description: e.Description,
		UserID:      e.UserID,
		OccurredAt:  e.OccurredAt,
	}, nil
}
