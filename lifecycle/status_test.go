// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import (
	"errors"
	"testing"
)

func TestTransitionLegalPaths(t *testing.T) {
	cases := []struct {
		from   MilestoneStatus
		action Action
		want   MilestoneStatus
	}{
		{MilestoneNotStarted, ActionStart, MilestoneInProgress},
		{MilestoneInProgress, ActionSubmit, MilestoneSubmitted},
		{MilestoneSubmitted, ActionApprove, MilestoneApproved},
		{MilestoneSubmitted, ActionReject, MilestoneRejected},
		{MilestoneRejected, ActionStart, MilestoneInProgress},
		{MilestoneNotStarted, ActionCancel, MilestoneCancelled},
		{MilestoneInProgress, ActionCancel, MilestoneCancelled},
		{MilestoneSubmitted, ActionCancel, MilestoneCancelled},
		{MilestoneRejected, ActionCancel, MilestoneCancelled},
	}

	for _, tc := range cases {
		got, err := Transition(tc.from, tc.action)
		if err != nil {
			t.Errorf("Transition(%s, %s) returned error: %v", tc.from, tc.action, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Transition(%s, %s) = %s, want %s", tc.from, tc.action, got, tc.want)
		}
	}
}

func TestTransitionRejectRequiresSubmitted(t *testing.T) {
	for _, from := range []MilestoneStatus{
		MilestoneNotStarted,
		MilestoneInProgress,
		MilestoneApproved,
		MilestoneRejected,
		MilestoneCancelled,
	} {
		_, err := Transition(from, ActionReject)
		if err == nil {
			t.Errorf("Transition(%s, reject) should fail", from)
			continue
		}
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Errorf("Transition(%s, reject) error = %v, want InvalidTransitionError", from, err)
		}
	}
}

func TestTransitionApprovedAndCancelledAreTerminal(t *testing.T) {
	for _, from := range []MilestoneStatus{MilestoneApproved, MilestoneCancelled} {
		for _, action := range Actions() {
			if _, err := Transition(from, action); err == nil {
				t.Errorf("Transition(%s, %s) should fail, %s is terminal", from, action, from)
			}
		}
	}
}

func TestTransitionExhaustive(t *testing.T) {
	// Every (status, action) pair must either be a defined transition or
	// produce an InvalidTransitionError naming the pair.
	for _, from := range MilestoneStatuses() {
		for _, action := range Actions() {
			next, err := Transition(from, action)
			if err == nil {
				if next == from {
					t.Errorf("Transition(%s, %s) succeeded without changing status", from, action)
				}
				continue
			}
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("Transition(%s, %s) error type = %T", from, action, err)
			}
			if invalid.From != from || invalid.Action != action {
				t.Errorf("InvalidTransitionError carries (%s, %s), want (%s, %s)",
					invalid.From, invalid.Action, from, action)
			}
			if next != from {
				t.Errorf("failed Transition(%s, %s) returned status %s, want unchanged", from, action, next)
			}
		}
	}
}

func TestCanUpdate(t *testing.T) {
	if !CanUpdate(MilestoneNotStarted) {
		t.Error("not_started milestones must be editable")
	}
	for _, s := range []MilestoneStatus{
		MilestoneInProgress,
		MilestoneSubmitted,
		MilestoneApproved,
		MilestoneRejected,
		MilestoneCancelled,
	} {
		if CanUpdate(s) {
			t.Errorf("milestone in status %s must not be editable", s)
		}
	}
}
