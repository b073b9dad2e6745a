// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"

	"workspan-server/lifecycle"
)

// Project is the client engagement a milestone belongs to. PriceCents is
// both the budget ceiling at creation time and, once paid revisions start
// landing, the running total; revision surcharges are the only sanctioned
// way it grows.
type Project struct {
	ID           uint                    `gorm:"primaryKey"`
	ProjectID    string                  `gorm:"size:255;not null;uniqueIndex"`
	Title        string                  `gorm:"size:255;not null"`
	Description  *string                 `gorm:"type:text;default:null"`
	PriceCents   int64                   `gorm:"not null"`
	DurationDays uint                    `gorm:"not null"`
	Status       lifecycle.ProjectStatus `gorm:"size:32;not null;default:'pending';index"`
	PortalToken  string                  `gorm:"size:255;not null;uniqueIndex"`
	ClientName   string                  `gorm:"size:255;not null"`
	ClientEmail  string                  `gorm:"size:255;not null"`
	ClientPhone  *string                 `gorm:"size:32;default:null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	UserID       uint           `gorm:"index"`
	User         User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Milestones   []Milestone
}

func init() {
	AllModels = append(AllModels, &Project{})
}
