// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

// MilestoneCounts aggregates the states of a project's milestones.
// Cancelled milestones are excluded from the population: they can neither
// hold a project open nor count toward completing it.
type MilestoneCounts struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

// TallyMilestones folds a project's milestone statuses into counts.
// Pending means any status other than approved or cancelled.
func TallyMilestones(statuses []MilestoneStatus) MilestoneCounts {
	var counts MilestoneCounts
	for _, s := range statuses {
		if s == MilestoneCancelled {
			continue
		}
		counts.Total++
		if s == MilestoneApproved {
			counts.Approved++
		} else {
			counts.Pending++
		}
	}
	return counts
}

// ProjectCompleted reports whether the counts mean the project is done:
// every non-cancelled milestone approved and none left pending. An empty
// project (or one whose milestones were all cancelled) never completes.
func (c MilestoneCounts) ProjectCompleted() bool {
	return c.Total > 0 && c.Pending == 0 && c.Approved == c.Total
}
