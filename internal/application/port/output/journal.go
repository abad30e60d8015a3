package output

import "time"

// PatchRecord is one journal line describing a patched document
type PatchRecord struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"ts"`
	Path        string    `json:"path"`
	Action      string    `json:"action"` // "revision" or "info"
	Version     string    `json:"version,omitempty"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	Reviewer    string    `json:"reviewer"`
}

// PatchJournal records patch events
type PatchJournal interface {
	Append(rec *PatchRecord) error
}
