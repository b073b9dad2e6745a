// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionApproved  SubmissionStatus = "approved"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// MediaAttachment references a deliverable file uploaded alongside a
// milestone submission. The file itself lives in external object storage;
// only the URL is kept here.
type MediaAttachment struct {
	ID               uint             `gorm:"primaryKey"`
	AttachmentID     string           `gorm:"size:255;not null;uniqueIndex"`
	FileName         string           `gorm:"size:255;not null"`
	FileURL          string           `gorm:"size:1024;not null"`
	SubmissionStatus SubmissionStatus `gorm:"size:32;not null;default:'submitted';index"`
	Notes            *string          `gorm:"type:text;default:null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
	MilestoneID      uint           `gorm:"index"`
	Milestone        Milestone      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ProjectID        uint           `gorm:"index"`
	Project          Project        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &MediaAttachment{})
}
