package services

import "time"

// DeadlineStatus classifies how much time remains before a deadline. Color is
// a display hint carried through to the dashboards.
type DeadlineStatus struct {
	Text     string `json:"text"`
	Color    string `json:"color"`
	DaysLeft int    `json:"daysLeft"`
	Passed   bool   `json:"passed"`
}

// daysUntil counts whole calendar days from now to the deadline, negative once
// the deadline date is in the past.
func daysUntil(deadline, now time.Time) int {
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}

// SubmissionDeadlineStatus classifies the student submission deadline.
func SubmissionDeadlineStatus(deadline, now time.Time) DeadlineStatus {
	days := daysUntil(deadline, now)
	switch {
	case days > 1:
		return DeadlineStatus{Text: "days left to submit your project", Color: "#2563eb", DaysLeft: days}
	case days == 1:
		return DeadlineStatus{Text: "tomorrow is the last day to submit", Color: "#f59e0b", DaysLeft: days}
	case days == 0:
		return DeadlineStatus{Text: "today is the final submission day", Color: "#eab308", DaysLeft: days}
	default:
		return DeadlineStatus{Text: "submission deadline has passed", Color: "#dc2626", DaysLeft: days, Passed: true}
	}
}

// ReviewDeadlineStatus classifies the teacher review deadline.
func ReviewDeadlineStatus(deadline, now time.Time) DeadlineStatus {
	days := daysUntil(deadline, now)
	switch {
	case days > 1:
		return DeadlineStatus{Text: "days left to review", Color: "#16a34a", DaysLeft: days}
	case days == 1:
		return DeadlineStatus{Text: "review last day is tomorrow", Color: "#f59e0b", DaysLeft: days}
	case days == 0:
		return DeadlineStatus{Text: "today is the final review day", Color: "#eab308", DaysLeft: days}
	default:
		return DeadlineStatus{Text: "review deadline has passed", Color: "#dc2626", DaysLeft: days, Passed: true}
	}
}
