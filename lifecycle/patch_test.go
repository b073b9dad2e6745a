// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import "testing"

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }
func uintPtr(u uint) *uint    { return &u }

func TestDiffDropsNoOpFields(t *testing.T) {
	current := MilestoneFields{
		Title:           "Wireframes",
		Description:     "Initial wireframes",
		PriceCents:      25000,
		DurationDays:    7,
		FreeRevisions:   2,
		RevisionRatePct: 10,
	}

	patch := MilestonePatch{
		Title:      strPtr("Wireframes"),
		PriceCents: i64Ptr(25000),
	}
	changes := patch.Diff(current)
	if !changes.Empty() {
		t.Errorf("patch equal to current values should diff empty, got %v", changes.Columns)
	}
}

func TestDiffKeepsChangedFields(t *testing.T) {
	current := MilestoneFields{
		Title:        "Wireframes",
		PriceCents:   25000,
		DurationDays: 7,
	}

	patch := MilestonePatch{
		Title:        strPtr("High-fidelity mockups"),
		PriceCents:   i64Ptr(30000),
		DurationDays: uintPtr(7),
	}
	changes := patch.Diff(current)

	if len(changes.Columns) != 2 {
		t.Fatalf("changed columns = %v, want title and price_cents only", changes.Columns)
	}
	if changes.Columns["title"] != "High-fidelity mockups" {
		t.Errorf("title column = %v", changes.Columns["title"])
	}
	if changes.Columns["price_cents"] != int64(30000) {
		t.Errorf("price_cents column = %v", changes.Columns["price_cents"])
	}
	if changes.NewPriceCents == nil || *changes.NewPriceCents != 30000 {
		t.Error("price change must be surfaced for the budget check")
	}
	if changes.NewDurationDays != nil {
		t.Error("unchanged duration must not trigger the duration check")
	}
}

func TestDiffNilFieldsUntouched(t *testing.T) {
	current := MilestoneFields{Title: "Wireframes", PriceCents: 25000}
	changes := (MilestonePatch{}).Diff(current)
	if !changes.Empty() {
		t.Errorf("empty patch should diff empty, got %v", changes.Columns)
	}
}

func TestPatchValidate(t *testing.T) {
	if err := (MilestonePatch{RevisionRatePct: uintPtr(150)}).Validate(); err == nil {
		t.Error("rate above 100 should fail validation")
	}
	if err := (MilestonePatch{PriceCents: i64Ptr(0)}).Validate(); err == nil {
		t.Error("zero price should fail validation")
	}
	if err := (MilestonePatch{DurationDays: uintPtr(0)}).Validate(); err == nil {
		t.Error("zero duration should fail validation")
	}
	if err := (MilestonePatch{Title: strPtr("")}).Validate(); err == nil {
		t.Error("empty title should fail validation")
	}
	ok := MilestonePatch{Title: strPtr("Revised title"), PriceCents: i64Ptr(100), RevisionRatePct: uintPtr(100)}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid patch failed validation: %v", err)
	}
}
