// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is client feedback with a 1-5 star rating, scoped either to one
// milestone or to the whole project (MilestoneID null). The unique index
// backs the one-review-per-scope rule; handlers additionally check inside
// their transaction because NULL uniqueness varies across dialects.
type Review struct {
	ID          uint           `gorm:"primaryKey"`
	ReviewID    string         `gorm:"size:255;not null;uniqueIndex"`
	Stars       int            `gorm:"not null"`
	Body        *string        `gorm:"type:text;default:null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	ProjectID   uint           `gorm:"index;uniqueIndex:idx_review_scope"`
	Project     Project        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	MilestoneID *uint          `gorm:"default:null;uniqueIndex:idx_review_scope"`
	Milestone   *Milestone     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &Review{})
}
