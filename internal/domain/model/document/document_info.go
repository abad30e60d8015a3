package document

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Attribution describes who produced a document
type Attribution struct {
	Model       string
	Environment string
	Date        string
}

// DocumentInfo is the block recording author, reviewer and version
type DocumentInfo struct {
	lines   []string
	markers Markers
}

// NewDocumentInfo synthesizes a block. A nil attribution renders the placeholder line.
func NewDocumentInfo(markers Markers, attr *Attribution, reviewer string) *DocumentInfo {
	markers = markers.WithDefaults()
	lines := []string{
		"---",
		"",
		markers.InfoHeading,
		"",
		markers.AuthorLabel,
		"",
	}
	if attr != nil {
		lines = append(lines,
			attributionModelLabel+attr.Model,
			attributionEnvLabel+attr.Environment,
			attributionDateLabel+attr.Date,
		)
	} else {
		lines = append(lines, markers.Placeholder)
	}
	lines = append(lines,
		"",
		markers.ReviewerLabel,
		"",
		"- "+CellText(reviewer),
	)
	return &DocumentInfo{lines: lines, markers: markers}
}

// Lines returns the raw lines of the block
func (d *DocumentInfo) Lines() []string { return d.lines }

func (d *DocumentInfo) fieldPattern(label, value string) *regexp.Regexp {
	return regexp.MustCompile(`(` + regexp.QuoteMeta(norm.NFC.String(label)) + `:\s*)` + value)
}

// replaceField rewrites every occurrence of "label: <value>" and reports whether one was found
func (d *DocumentInfo) replaceField(re *regexp.Regexp, value string) bool {
	found := false
	for i, line := range d.lines {
		n := norm.NFC.String(line)
		if !re.MatchString(n) {
			continue
		}
		d.lines[i] = re.ReplaceAllString(n, "${1}"+value)
		found = true
	}
	return found
}

// HasVersion reports whether the block carries a version field
func (d *DocumentInfo) HasVersion() bool {
	return d.hasField(d.markers.VersionLabel)
}

func (d *DocumentInfo) hasField(label string) bool {
	label = norm.NFC.String(label) + ":"
	for _, line := range d.lines {
		if strings.Contains(norm.NFC.String(line), label) {
			return true
		}
	}
	return false
}

// SetVersion updates the version field in place and reports whether it existed
func (d *DocumentInfo) SetVersion(v Version) bool {
	return d.replaceField(d.fieldPattern(d.markers.VersionLabel, `\d+\.\d+`), v.String())
}

// SetLastModified updates the last modified date in place and reports whether it existed
func (d *DocumentInfo) SetLastModified(date string) bool {
	return d.replaceField(d.fieldPattern(d.markers.LastModifiedLabel, `\d{4}-\d{2}-\d{2}`), date)
}

// AddVersion inserts a version field after the reviewer list, or at the end
// of the block when no reviewer line exists. A non-empty lastModified is
// written on the following line unless the block already has that field.
func (d *DocumentInfo) AddVersion(v Version, lastModified string) {
	fields := []string{"", d.markers.VersionLabel + ": " + v.String()}
	if lastModified != "" && !d.hasField(d.markers.LastModifiedLabel) {
		fields = append(fields, d.markers.LastModifiedLabel+": "+lastModified)
	}
	at := d.reviewerListEnd()
	if at < 0 {
		at = len(trimBlankTail(d.lines)) - 1
	}
	lines := make([]string, 0, len(d.lines)+len(fields))
	lines = append(lines, d.lines[:at+1]...)
	lines = append(lines, fields...)
	lines = append(lines, d.lines[at+1:]...)
	d.lines = lines
}

// Reviewer returns the first reviewer listed in the block
func (d *DocumentInfo) Reviewer() string {
	if i := d.reviewerLine(); i >= 0 {
		return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(d.lines[i]), "- "))
	}
	return ""
}

// reviewerListEnd returns the index of the last consecutive list item
// starting at reviewerLine, or -1
func (d *DocumentInfo) reviewerListEnd() int {
	i := d.reviewerLine()
	if i < 0 {
		return -1
	}
	for i+1 < len(d.lines) && strings.HasPrefix(strings.TrimSpace(d.lines[i+1]), "- ") {
		i++
	}
	return i
}

// reviewerLine returns the index of the first list item after the reviewer label, or -1
func (d *DocumentInfo) reviewerLine() int {
	label := norm.NFC.String(d.markers.ReviewerLabel)
	for i, line := range d.lines {
		if !strings.Contains(norm.NFC.String(line), label) {
			continue
		}
		for j := i + 1; j < len(d.lines); j++ {
			t := strings.TrimSpace(d.lines[j])
			if t == "" {
				continue
			}
			if strings.HasPrefix(t, "- ") {
				return j
			}
			return -1
		}
		return -1
	}
	return -1
}
