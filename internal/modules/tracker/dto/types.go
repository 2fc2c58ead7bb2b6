package dto

import "unitrack/internal/platform/checklist"

// Record mirrors one stored application. The JSON tags define the shape
// handed to exporter plugins.
type Record struct {
	ID          string              `json:"id"`
	University  string              `json:"university"`
	Course      string              `json:"course"`
	Deadline    string              `json:"deadline"`
	Status      string              `json:"status"`
	UniAssist   bool                `json:"uniAssist"`
	VPDRequired bool                `json:"vpdRequired"`
	Documents   checklist.Checklist `json:"documents"`
	Notes       string              `json:"notes"`
}

// DocumentsReady counts checked items.
func (r Record) DocumentsReady() (ready, total int) {
	for _, name := range r.Documents.Names() {
		total++
		if done, _ := r.Documents.Get(name); done {
			ready++
		}
	}
	return ready, total
}

// Statuses lists the stages in progression order, for pickers.
func Statuses() []string {
	return []string{"Interested", "Applied", "Interview", "Accepted", "Rejected", "Enrolled"}
}

type StatsOutput struct {
	Total    int
	Applied  int
	Accepted int
	Pending  int
}
