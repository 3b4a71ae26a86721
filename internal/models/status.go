package models

import "time"

// DeriveStatus computes a project's lifecycle status from its dates.
// A completion date always wins; otherwise the project is overdue once now
// is strictly after the due date.
func DeriveStatus(p Project, now time.Time) ProjectStatus {
	if p.CompletedDate != nil {
		return StatusCompleted
	}
	if now.After(p.DueDate) {
		return StatusOverdue
	}
	return StatusOngoing
}

// Normalize makes the stored status agree with the project's dates.
// A project flagged completed without a completion date is stamped with now,
// so completedDate is set if and only if the status is completed.
func Normalize(p Project, now time.Time) Project {
	if p.Status == StatusCompleted && p.CompletedDate == nil {
		completed := now
		p.CompletedDate = &completed
	}
	p.Status = DeriveStatus(p, now)
	if p.Attachments == nil {
		p.Attachments = []Attachment{}
	}
	return p
}

// NormalizeAll applies Normalize to every project and returns a new slice.
func NormalizeAll(projects []Project, now time.Time) []Project {
	out := make([]Project, len(projects))
	for i := range projects {
		out[i] = Normalize(projects[i], now)
	}
	return out
}
