package dto

import "unitrack/internal/platform/checklist"

// Draft is the editor's working copy as handed to the UI. Checklist
// operations take a draft and return the updated draft; callers keep no
// hidden editor state.
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

// CommitOutput identifies the record a committed draft was stored as.
type CommitOutput struct {
	ID         string
	University string
	Course     string
}
