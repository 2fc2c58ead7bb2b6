package domain

import (
	"fmt"
	"strings"

	"unitrack/internal/platform/checklist"
)

// Draft is a working copy of one application record. It is detached: editing
// a draft never touches the stored record set until the draft is committed.
type Draft struct {
	ID          string
	University  string
	Course      string
	Deadline    string
	Status      string
	UniAssist   bool
	VPDRequired bool
	Documents   checklist.Checklist
	Notes       string
}

// NewDraft is the blank draft for a new record: status starts at Interested
// and the checklist is pre-seeded with the default documents, all unchecked.
func NewDraft(defaultDocuments []string) Draft {
	return Draft{
		Status:    "Interested",
		Documents: checklist.New(defaultDocuments...),
	}
}

// Validate enforces the commit gate: university and course must be
// non-blank. Everything else is free-form.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.University) == "" {
		return fmt.Errorf("university is required")
	}
	if strings.TrimSpace(d.Course) == "" {
		return fmt.Errorf("course is required")
	}
	return nil
}

func (d Draft) Clone() Draft {
	clone := d
	clone.Documents = d.Documents.Clone()
	return clone
}
