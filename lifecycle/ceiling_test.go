// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import (
	"errors"
	"testing"
)

func TestCheckBudgetBoundaryInclusive(t *testing.T) {
	// Siblings total 800.00 against a 1000.00 project: 200.00 lands
	// exactly on the ceiling and passes, 250.00 exceeds it and fails.
	if err := CheckBudget(80000, 20000, 100000); err != nil {
		t.Errorf("sum equal to ceiling should pass: %v", err)
	}

	err := CheckBudget(80000, 25000, 100000)
	if err == nil {
		t.Fatal("sum above ceiling should fail")
	}
	var budgetErr *BudgetExceededError
	if !errors.As(err, &budgetErr) {
		t.Fatalf("error type = %T, want BudgetExceededError", err)
	}
	if budgetErr.SiblingSumCents != 80000 || budgetErr.NewPriceCents != 25000 || budgetErr.CeilingCents != 100000 {
		t.Errorf("BudgetExceededError fields = %+v", budgetErr)
	}
}

func TestCheckDurationBoundaryInclusive(t *testing.T) {
	if err := CheckDuration(20, 10, 30); err != nil {
		t.Errorf("durations totalling the ceiling should pass: %v", err)
	}

	err := CheckDuration(20, 11, 30)
	if err == nil {
		t.Fatal("durations above ceiling should fail")
	}
	var durationErr *DurationExceededError
	if !errors.As(err, &durationErr) {
		t.Fatalf("error type = %T, want DurationExceededError", err)
	}
}
