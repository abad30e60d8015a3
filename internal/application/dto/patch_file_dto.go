package dto

// PatchMode selects what a patch does to a document
type PatchMode string

const (
	PatchModeRevision PatchMode = "revision" // Add a revision row and update document info
	PatchModeInfoOnly PatchMode = "info"     // Add document info when missing (pre-commit)
)

// PatchFileInput represents input for patching one file
type PatchFileInput struct {
	Path        string
	Description string // Derived from version control status when empty
	Reviewer    string // Overrides the configured reviewer when set
	Mode        PatchMode
	Stage       bool // Re-stage the file after writing
	DryRun      bool // Compute the result without writing, staging or journaling
}

// Outcome is the per-file result kind
type Outcome string

const (
	OutcomePatched Outcome = "patched"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// SkipReason explains why a file was left untouched
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipWrongExtension SkipReason = "wrong_extension"
	SkipNotFound       SkipReason = "not_found"
	SkipDirectory      SkipReason = "directory"
	SkipTooShort       SkipReason = "too_short"
	SkipHasInfo        SkipReason = "has_info"
)

// PatchFileResult is the outcome of patching one file
type PatchFileResult struct {
	Path        string
	Outcome     Outcome
	Reason      SkipReason
	Err         error
	Version     string
	Date        string
	Reviewer    string
	Description string
	Staged      bool
	Content     string // Patched text, filled on success
}

// BatchPatchResult collects the results of a batch in input order
type BatchPatchResult struct {
	Results []*PatchFileResult
}

// Count returns how many results have the given outcome
func (b *BatchPatchResult) Count(o Outcome) int {
	n := 0
	for _, r := range b.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// HasFailures reports whether any file failed
func (b *BatchPatchResult) HasFailures() bool {
	return b.Count(OutcomeFailed) > 0
}
