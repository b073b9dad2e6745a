// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import (
	"errors"
	"fmt"
)

var (
	errNonPositivePrice = errors.New("milestone price must be greater than zero")
	errZeroDuration     = errors.New("milestone duration must be at least one day")
	errEmptyTitle       = errors.New("milestone title must not be empty")
)

// BudgetExceededError reports a milestone price that would push the
// project's milestones past the project budget.
type BudgetExceededError struct {
	SiblingSumCents int64
	NewPriceCents   int64
	CeilingCents    int64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("milestone prices would total %d cents, exceeding the project budget of %d cents",
		e.SiblingSumCents+e.NewPriceCents, e.CeilingCents)
}

// DurationExceededError is the duration counterpart of BudgetExceededError.
type DurationExceededError struct {
	SiblingSumDays uint
	NewDays        uint
	CeilingDays    uint
}

func (e *DurationExceededError) Error() string {
	return fmt.Sprintf("milestone durations would total %d days, exceeding the project duration of %d days",
		e.SiblingSumDays+e.NewDays, e.CeilingDays)
}

// CheckBudget enforces the hard budget ceiling: the sum of the sibling
// milestones' prices plus the new value may equal the project price but
// never exceed it. Exact equality is allowed.
func CheckBudget(siblingSumCents, newPriceCents, projectPriceCents int64) error {
	if siblingSumCents+newPriceCents > projectPriceCents {
		return &BudgetExceededError{
			SiblingSumCents: siblingSumCents,
			NewPriceCents:   newPriceCents,
			CeilingCents:    projectPriceCents,
		}
	}
	return nil
}

// CheckDuration enforces the duration ceiling, same boundary rule as
// CheckBudget.
func CheckDuration(siblingSumDays, newDays, projectDurationDays uint) error {
	if siblingSumDays+newDays > projectDurationDays {
		return &DurationExceededError{
			SiblingSumDays: siblingSumDays,
			NewDays:        newDays,
			CeilingDays:    projectDurationDays,
		}
	}
	return nil
}
