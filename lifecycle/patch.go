// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

// MilestoneFields is the editable portion of a milestone as currently
// persisted.
type MilestoneFields struct {
	Title           string
	Description     string
	PriceCents      int64
	DurationDays    uint
	FreeRevisions   uint
	RevisionRatePct uint
}

// MilestonePatch is a partial update. A nil field means "not provided";
// provided fields equal to the current value are dropped as no-ops.
type MilestonePatch struct {
	Title           *string
	Description     *string
	PriceCents      *int64
	DurationDays    *uint
	FreeRevisions   *uint
	RevisionRatePct *uint
}

// MilestoneChanges is the effective delta of a patch against current
// fields. Columns maps database column names to new values and carries
// only fields that actually change.
type MilestoneChanges struct {
	Columns         map[string]any
	NewPriceCents   *int64
	NewDurationDays *uint
}

// Empty reports whether the patch changes nothing.
func (c MilestoneChanges) Empty() bool {
	return len(c.Columns) == 0
}

// Diff compares a patch to the milestone's current fields and keeps only
// the fields that differ. Price and duration changes are surfaced
// separately so callers can run the ceiling checks before persisting.
func (p MilestonePatch) Diff(current MilestoneFields) MilestoneChanges {
	changes := MilestoneChanges{Columns: map[string]any{}}

	if p.Title != nil && *p.Title != current.Title {
		changes.Columns["title"] = *p.Title
	}
	if p.Description != nil && *p.Description != current.Description {
		changes.Columns["description"] = *p.Description
	}
	if p.PriceCents != nil && *p.PriceCents != current.PriceCents {
		changes.Columns["price_cents"] = *p.PriceCents
		changes.NewPriceCents = p.PriceCents
	}
	if p.DurationDays != nil && *p.DurationDays != current.DurationDays {
		changes.Columns["duration_days"] = *p.DurationDays
		changes.NewDurationDays = p.DurationDays
	}
	if p.FreeRevisions != nil && *p.FreeRevisions != current.FreeRevisions {
		changes.Columns["free_revisions"] = *p.FreeRevisions
	}
	if p.RevisionRatePct != nil && *p.RevisionRatePct != current.RevisionRatePct {
		changes.Columns["revision_rate_pct"] = *p.RevisionRatePct
	}

	return changes
}

// Validate checks the provided fields of a patch for values that are
// invalid regardless of project context.
func (p MilestonePatch) Validate() error {
	if p.RevisionRatePct != nil {
		if err := ValidateRevisionRate(*p.RevisionRatePct); err != nil {
			return err
		}
	}
	if p.PriceCents != nil && *p.PriceCents <= 0 {
		return errNonPositivePrice
	}
	if p.DurationDays != nil && *p.DurationDays == 0 {
		return errZeroDuration
	}
	if p.Title != nil && *p.Title == "" {
		return errEmptyTitle
	}
	return nil
}
