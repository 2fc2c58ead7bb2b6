package domain

import (
	"fmt"
	"strings"

	"unitrack/internal/platform/checklist"
)

// Status is the lifecycle stage of one application.
type Status string

const (
	StatusInterested Status = "Interested"
	StatusApplied    Status = "Applied"
	StatusInterview  Status = "Interview"
	StatusAccepted   Status = "Accepted"
	StatusRejected   Status = "Rejected"
	StatusEnrolled   Status = "Enrolled"
)

// AllStatuses lists the stages in progression order.
func AllStatuses() []Status {
	return []Status{
		StatusInterested,
		StatusApplied,
		StatusInterview,
		StatusAccepted,
		StatusRejected,
		StatusEnrolled,
	}
}

func (s Status) Validate() error {
	for _, known := range AllStatuses() {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", s)
}

// Application is one tracked record: a university/course pair plus the
// submission metadata and its document checklist.
type Application struct {
	ID          string              `json:"id"`
	University  string              `json:"university"`
	Course      string              `json:"course"`
	Deadline    string              `json:"deadline"`
	Status      Status              `json:"status"`
	UniAssist   bool                `json:"uniAssist"`
	VPDRequired bool                `json:"vpdRequired"`
	Documents   checklist.Checklist `json:"documents"`
	Notes       string              `json:"notes"`
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.University) == "" {
		return fmt.Errorf("university is required")
	}
	if strings.TrimSpace(a.Course) == "" {
		return fmt.Errorf("course is required")
	}
	if err := a.Status.Validate(); err != nil {
		return err
	}
	return nil
}

// Clone returns a deep copy; the checklist is the only reference-holding
// field.
func (a Application) Clone() Application {
	clone := a
	clone.Documents = a.Documents.Clone()
	return clone
}

// Stats summarizes a record set for the dashboard.
type Stats struct {
	Total    int
	Applied  int
	Accepted int
	Pending  int
}

// ComputeStats buckets records by stage. "Applied" counts everything past
// Interested, "Accepted" counts offers including enrolment, and "Pending"
// counts records still awaiting a decision.
func ComputeStats(records []Application) Stats {
	stats := Stats{Total: len(records)}
	for _, record := range records {
		switch record.Status {
		case StatusApplied, StatusInterview, StatusAccepted, StatusRejected, StatusEnrolled:
			stats.Applied++
		}
		switch record.Status {
		case StatusAccepted, StatusEnrolled:
			stats.Accepted++
		}
		switch record.Status {
		case StatusInterested, StatusApplied, StatusInterview:
			stats.Pending++
		}
	}
	return stats
}
