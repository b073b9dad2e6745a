// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import "testing"

func TestTallyMilestones(t *testing.T) {
	counts := TallyMilestones([]MilestoneStatus{
		MilestoneApproved,
		MilestoneSubmitted,
		MilestoneInProgress,
		MilestoneCancelled,
	})
	if counts.Total != 3 {
		t.Errorf("total = %d, want 3 (cancelled excluded)", counts.Total)
	}
	if counts.Approved != 1 {
		t.Errorf("approved = %d, want 1", counts.Approved)
	}
	if counts.Pending != 2 {
		t.Errorf("pending = %d, want 2", counts.Pending)
	}
}

func TestProjectCompletedOnlyWhenLastMilestoneApproved(t *testing.T) {
	almostDone := TallyMilestones([]MilestoneStatus{
		MilestoneApproved,
		MilestoneApproved,
		MilestoneSubmitted,
	})
	if almostDone.ProjectCompleted() {
		t.Error("project with a pending milestone must not complete")
	}

	done := TallyMilestones([]MilestoneStatus{
		MilestoneApproved,
		MilestoneApproved,
		MilestoneApproved,
	})
	if !done.ProjectCompleted() {
		t.Error("project with every milestone approved must complete")
	}
}

func TestProjectCompletedIgnoresCancelled(t *testing.T) {
	counts := TallyMilestones([]MilestoneStatus{
		MilestoneApproved,
		MilestoneCancelled,
	})
	if !counts.ProjectCompleted() {
		t.Error("cancelled milestones must not hold a project open")
	}
}

func TestProjectCompletedEmptyProject(t *testing.T) {
	if TallyMilestones(nil).ProjectCompleted() {
		t.Error("a project with no milestones never completes")
	}
	allCancelled := TallyMilestones([]MilestoneStatus{MilestoneCancelled, MilestoneCancelled})
	if allCancelled.ProjectCompleted() {
		t.Error("a fully cancelled project never completes")
	}
}

func TestProjectCompletedRejectedHoldsOpen(t *testing.T) {
	counts := TallyMilestones([]MilestoneStatus{MilestoneApproved, MilestoneRejected})
	if counts.ProjectCompleted() {
		t.Error("a rejected milestone is pending and must hold the project open")
	}
	if counts.Pending != 1 {
		t.Errorf("pending = %d, want 1", counts.Pending)
	}
}
