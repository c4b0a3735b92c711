package services

import (
	"testing"
	"time"
)

func TestSubmissionDeadlineStatusBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		deadline time.Time
		daysLeft int
		passed   bool
	}{
		{time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 5, false},
		{time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), 1, false},
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 0, false},
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), -1, true},
	}
	for _, c := range cases {
		status := SubmissionDeadlineStatus(c.deadline, now)
		if status.DaysLeft != c.daysLeft {
			t.Errorf("Deadline %v: expected %d days left, got %d", c.deadline, c.daysLeft, status.DaysLeft)
		}
		if status.Passed != c.passed {
			t.Errorf("Deadline %v: expected passed=%v, got %v", c.deadline, c.passed, status.Passed)
		}
	}
}

func TestSubmissionDeadlineIgnoresTimeOfDay(t *testing.T) {
	// Late on the deadline day still counts as the final day, not passed.
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	status := SubmissionDeadlineStatus(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), now)
	if status.Passed {
		t.Errorf("Expected deadline day itself not to count as passed")
	}
}

func TestReviewDeadlineStatusPassed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	status := ReviewDeadlineStatus(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), now)
	if !status.Passed {
		t.Errorf("Expected review deadline in the past to be passed")
	}
}
