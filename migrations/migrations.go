// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"workspan-server/crypto"
	"workspan-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_backfill_portal_tokens",
			Migrate: func(tx *gorm.DB) error {
				var projects []models.Project
				if err := tx.Where("portal_token = '' OR portal_token IS NULL").
					Find(&projects).Error; err != nil {
					return fmt.Errorf("failed to fetch projects without portal tokens: %w", err)
				}

				for _, project := range projects {
					token, err := crypto.GenerateRandomString("prt_", 24, "hex")
					if err != nil {
						return fmt.Errorf("failed to generate portal token: %w", err)
					}
					if err := tx.Model(&project).Update("portal_token", token).Error; err != nil {
						return fmt.Errorf("failed to update project %d with portal token: %w", project.ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "002_archive_approved_milestones",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.Milestone{}).
					Where("status = ? AND is_archived = ?", "approved", false).
					Update("is_archived", true).Error; err != nil {
					return fmt.Errorf("failed to archive approved milestones: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "003_clamp_revision_rates",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.Milestone{}).
					Where("revision_rate_pct > ?", 100).
					Update("revision_rate_pct", 100).Error; err != nil {
					return fmt.Errorf("failed to clamp revision rates: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "004_backfill_base_prices",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.Milestone{}).
					Where("base_price_cents = ?", 0).
					Update("base_price_cents", gorm.Expr("price_cents")).Error; err != nil {
					return fmt.Errorf("failed to backfill milestone base prices: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
