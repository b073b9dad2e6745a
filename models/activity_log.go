// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityCategory string
type ActivityActor string

const (
	ActivityProject   ActivityCategory = "PROJECT"
	ActivityMilestone ActivityCategory = "MILESTONE"
	ActivityReview    ActivityCategory = "REVIEW"
	ActivityAuth      ActivityCategory = "AUTH"
)

const (
	ActorAgency ActivityActor = "AGENCY"
	ActorClient ActivityActor = "CLIENT"
)

// ActivityLog is the persisted trail of what happened to projects and
// milestones. Rows are written by the activity consumer from events
// published after commit, never by request handlers.
type ActivityLog struct {
	ID          uint             `gorm:"primaryKey"`
	EID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	Category    ActivityCategory `gorm:"size:32;not null;index"`
	Action      string           `gorm:"size:64;not null"`
	Actor       ActivityActor    `gorm:"size:32;not null"`
	ProjectID   *string          `gorm:"size:255;default:null;index"`
	MilestoneID *string          `gorm:"size:255;default:null;index"`
	Description *string          `gorm:"type:text;default:null"`
	OccurredAt  time.Time        `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt   `gorm:"index"`
	UserID      *uint            `gorm:"default:null;index"`
}

func init() {
	AllModels = append(AllModels, &ActivityLog{})
}
