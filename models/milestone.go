// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"

	"workspan-server/lifecycle"
)

// Milestone is a billable sub-deliverable. UsedRevisions only ever grows
// and PriceCents only ever grows (revision surcharges); BasePriceCents is
// the agreed price before surcharges, so PriceCents-BasePriceCents is the
// revision revenue earned on the milestone. IsArchived flips on approval
// and takes the milestone out of the active set.
type Milestone struct {
	ID              uint                      `gorm:"primaryKey"`
	MilestoneID     string                    `gorm:"size:255;not null;uniqueIndex"`
	Title           string                    `gorm:"size:255;not null"`
	Description     *string                   `gorm:"type:text;default:null"`
	PriceCents      int64                     `gorm:"not null"`
	BasePriceCents  int64                     `gorm:"not null"`
	DurationDays    uint                      `gorm:"not null"`
	FreeRevisions   uint                      `gorm:"not null;default:0"`
	UsedRevisions   uint                      `gorm:"not null;default:0"`
	RevisionRatePct uint                      `gorm:"not null;default:0"`
	Status          lifecycle.MilestoneStatus `gorm:"size:32;not null;default:'not_started';index"`
	IsArchived      bool                      `gorm:"not null;default:false"`
	SubmissionNotes *string                   `gorm:"type:text;default:null"`
	RevisionNotes   *string                   `gorm:"type:text;default:null"`
	SubmittedAt     *time.Time
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
	ProjectID       uint           `gorm:"index"`
	Project         Project        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Fields extracts the editable values in the shape the lifecycle engine
// diffs patches against.
func (m *Milestone) Fields() lifecycle.MilestoneFields {
	description := ""
	if m.Description != nil {
		description = *m.Description
	}
	return lifecycle.MilestoneFields{
		Title:           m.Title,
		Description:     description,
		PriceCents:      m.PriceCents,
		DurationDays:    m.DurationDays,
		FreeRevisions:   m.FreeRevisions,
		RevisionRatePct: m.RevisionRatePct,
	}
}

// RevisionTerms extracts the pricing state the lifecycle engine quotes a
// rejection from.
func (m *Milestone) RevisionTerms() lifecycle.RevisionTerms {
	return lifecycle.RevisionTerms{
		PriceCents:      m.PriceCents,
		UsedRevisions:   m.UsedRevisions,
		FreeRevisions:   m.FreeRevisions,
		RevisionRatePct: m.RevisionRatePct,
	}
}

func init() {
	AllModels = append(AllModels, &Milestone{})
}
