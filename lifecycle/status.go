// SPDX-License-Identifier: GPL-3.0-only

// Package lifecycle holds the decision logic for moving milestones between
// states and repricing them on revisions. It performs no I/O; handlers feed
// it rows read inside their transaction and persist what it decides.
package lifecycle

import "fmt"

type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "not_started"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneSubmitted  MilestoneStatus = "submitted"
	MilestoneApproved   MilestoneStatus = "approved"
	MilestoneRejected   MilestoneStatus = "rejected"
	MilestoneCancelled  MilestoneStatus = "cancelled"
)

type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

type Action string

const (
	ActionStart   Action = "start"
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

// InvalidTransitionError reports an action applied to a milestone whose
// current status does not permit it.
type InvalidTransitionError struct {
	From   MilestoneStatus
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("milestone in status %q does not allow action %q", e.From, e.Action)
}

// transitions is the full state machine. A missing (status, action) pair is
// an invalid transition; approved and cancelled are terminal.
var transitions = map[MilestoneStatus]map[Action]MilestoneStatus{
	MilestoneNotStarted: {
		ActionStart:  MilestoneInProgress,
		ActionCancel: MilestoneCancelled,
	},
	MilestoneInProgress: {
		ActionSubmit: MilestoneSubmitted,
		ActionCancel: MilestoneCancelled,
	},
	MilestoneSubmitted: {
		ActionApprove: MilestoneApproved,
		ActionReject:  MilestoneRejected,
		ActionCancel:  MilestoneCancelled,
	},
	MilestoneRejected: {
		ActionStart:  MilestoneInProgress,
		ActionCancel: MilestoneCancelled,
	},
	MilestoneApproved:  {},
	MilestoneCancelled: {},
}

// Transition returns the status a milestone moves to when the given action
// is applied, or an InvalidTransitionError when the action is not allowed
// from the current status.
func Transition(from MilestoneStatus, action Action) (MilestoneStatus, error) {
	if next, ok := transitions[from][action]; ok {
		return next, nil
	}
	return from, &InvalidTransitionError{From: from, Action: action}
}

// CanUpdate reports whether a milestone's fields may still be edited. The
// mutation window closes the moment work starts.
func CanUpdate(status MilestoneStatus) bool {
	return status == MilestoneNotStarted
}

// MilestoneStatuses lists every defined milestone status, for validation.
func MilestoneStatuses() []MilestoneStatus {
	return []MilestoneStatus{
		MilestoneNotStarted,
		MilestoneInProgress,
		MilestoneSubmitted,
		MilestoneApproved,
		MilestoneRejected,
		MilestoneCancelled,
	}
}

// Actions lists every defined milestone action.
func Actions() []Action {
	return []Action{ActionStart, ActionSubmit, ActionApprove, ActionReject, ActionCancel}
}
