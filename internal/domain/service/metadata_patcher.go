package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/YoshitsuguKoike/docrev/internal/domain/model/document"
	"golang.org/x/text/unicode/norm"
)

// PatcherConfig holds everything the patcher needs to know about the documents it edits
type PatcherConfig struct {
	Reviewer         string           // Default reviewer name
	Markers          document.Markers // Fixed text contract for block detection
	MinLines         int              // Documents with fewer lines are left alone
	SubstantialChars int              // Rune length above which full attribution is written
	Model            string           // Author model identifier
	Environment      string           // Author environment description
}

// DefaultPatcherConfig returns the configuration matching existing documents
func DefaultPatcherConfig() PatcherConfig {
	return PatcherConfig{
		Reviewer:         "drake",
		Markers:          document.DefaultMarkers(),
		MinLines:         5,
		SubstantialChars: 200,
		Model:            "claude-sonnet-4-5-20250929",
		Environment:      "MoAI-ADK v11.0.0 (Claude Code + Korean Language Support)",
	}
}

// PatchOptions are per-call overrides
type PatchOptions struct {
	Reviewer string // Overrides PatcherConfig.Reviewer when set
}

// PatchResult describes the outcome of a patch
type PatchResult struct {
	Text           string // Patched document (the input when Skipped)
	Version        string // Version applied to the new revision row
	Date           string // Date applied to the new revision row
	Reviewer       string // Reviewer recorded
	Skipped        bool   // True when the document was too short to patch
	Substantial    bool   // True when full attribution was eligible
	CreatedHistory bool   // True when the Revision-History block was synthesized
	CreatedInfo    bool   // True when the Document-Info block was synthesized
}

// Changed reports whether the patch produced different text
func (r PatchResult) Changed(original string) bool {
	return !r.Skipped && r.Text != original
}

// MetadataPatcher adds revision rows and document info to markdown text
type MetadataPatcher struct {
	Config PatcherConfig
	Now    func() time.Time // Time provider (for testing)
}

// NewMetadataPatcher creates a patcher. Zero-valued config fields take their defaults.
func NewMetadataPatcher(cfg PatcherConfig) *MetadataPatcher {
	def := DefaultPatcherConfig()
	if cfg.Reviewer == "" {
		cfg.Reviewer = def.Reviewer
	}
	if cfg.MinLines <= 0 {
		cfg.MinLines = def.MinLines
	}
	if cfg.SubstantialChars <= 0 {
		cfg.SubstantialChars = def.SubstantialChars
	}
	cfg.Markers = cfg.Markers.WithDefaults()
	return &MetadataPatcher{Config: cfg, Now: time.Now}
}

// TooShort reports whether text has fewer than MinLines lines once surrounding whitespace is removed
func (p *MetadataPatcher) TooShort(text string) bool {
	return len(strings.Split(strings.TrimSpace(text), "\n")) < p.Config.MinLines
}

// Substantial reports whether text is long enough to earn full attribution
func (p *MetadataPatcher) Substantial(text string) bool {
	return utf8.RuneCountInString(text) > p.Config.SubstantialChars
}

// HasInfo reports whether text already carries a Document-Info block
func (p *MetadataPatcher) HasInfo(text string) bool {
	return document.Parse(text, p.Config.Markers).DocumentInfo() != nil
}

// Patch records one modification event on text.
//
// It inserts a revision row with the next version, creating the
// Revision-History block before the Document-Info block (or at the end) when
// missing, then creates or updates the Document-Info block so its version and
// last modified date match the new row. Every call adds a row.
func (p *MetadataPatcher) Patch(text, description string, opts PatchOptions) PatchResult {
	if p.TooShort(text) {
		return PatchResult{Text: text, Skipped: true}
	}

	date := p.now().Format(document.DateLayout)
	reviewer := p.reviewer(opts)
	substantial := p.Substantial(text)
	markers := p.Config.Markers

	doc := document.Parse(text, markers)
	version := doc.NextVersion()
	entry := document.Entry{
		Date:        date,
		Version:     version,
		Description: norm.NFC.String(description),
		Reviewer:    reviewer,
	}

	result := PatchResult{
		Version:     version.String(),
		Date:        date,
		Reviewer:    reviewer,
		Substantial: substantial,
	}

	if rh := doc.RevisionHistory(); rh != nil {
		rh.Insert(entry)
	} else {
		block := document.NewRevisionHistory(markers, entry)
		if info := doc.DocumentInfo(); info != nil {
			doc.InsertBefore(info, block)
		} else {
			doc.Append(block)
		}
		result.CreatedHistory = true
	}

	info := doc.DocumentInfo()
	if info == nil {
		info = document.NewDocumentInfo(markers, p.attribution(substantial, date), reviewer)
		doc.Append(info)
		result.CreatedInfo = true
	}
	// A field with an unparseable value is left alone rather than duplicated
	if !info.SetVersion(version) && !info.HasVersion() {
		info.AddVersion(version, date)
	}
	info.SetLastModified(date)

	result.Text = doc.String()
	return result
}

// EnsureInfo appends a Document-Info block when text has none. It never adds
// revision rows or version fields; documents that already have the block or
// are too short come back Skipped.
func (p *MetadataPatcher) EnsureInfo(text string, opts PatchOptions) PatchResult {
	if p.TooShort(text) {
		return PatchResult{Text: text, Skipped: true}
	}
	doc := document.Parse(text, p.Config.Markers)
	if doc.DocumentInfo() != nil {
		return PatchResult{Text: text, Skipped: true}
	}

	date := p.now().Format(document.DateLayout)
	reviewer := p.reviewer(opts)
	substantial := p.Substantial(text)
	doc.Append(document.NewDocumentInfo(p.Config.Markers, p.attribution(substantial, date), reviewer))

	return PatchResult{
		Text:        doc.String(),
		Date:        date,
		Reviewer:    reviewer,
		Substantial: substantial,
		CreatedInfo: true,
	}
}

func (p *MetadataPatcher) attribution(substantial bool, date string) *document.Attribution {
	if !substantial {
		return nil
	}
	return &document.Attribution{
		Model:       p.Config.Model,
		Environment: p.Config.Environment,
		Date:        date,
	}
}

func (p *MetadataPatcher) reviewer(opts PatchOptions) string {
	r := strings.TrimSpace(opts.Reviewer)
	if r == "" {
		r = p.Config.Reviewer
	}
	return norm.NFC.String(r)
}

func (p *MetadataPatcher) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
