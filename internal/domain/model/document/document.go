package document

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Segment is one piece of a parsed document
type Segment interface {
	Lines() []string
}

// Text is a run of lines that belongs to no detected block
type Text struct {
	lines []string
}

// Lines returns the raw lines of the segment
func (t *Text) Lines() []string { return t.lines }

// Document is a markdown document split into plain text and detected blocks.
// Lines are kept verbatim so String() reproduces the input byte for byte.
// CRLF documents are held without the carriage returns and written back with
// CRLF on every line, including the ones added by a patch.
type Document struct {
	markers  Markers
	segments []Segment
	newline  string
}

// Parse splits text into segments. Only the first Revision-History and the
// first Document-Info block are typed; later duplicates stay plain text.
//
// A block begins at its heading, pulling in a directly preceding "---" rule
// (blank lines allowed in between), and ends before the next level 1-2 heading,
// the next "---" rule, or the end of the document.
func Parse(text string, markers Markers) *Document {
	markers = markers.WithDefaults()
	doc := &Document{markers: markers, newline: "\n"}
	lines := strings.Split(text, "\n")
	if strings.Contains(text, "\r\n") {
		doc.newline = "\r\n"
		// The last element is not followed by a newline, its "\r" is content
		for i := 0; i < len(lines)-1; i++ {
			lines[i] = strings.TrimSuffix(lines[i], "\r")
		}
	}

	var (
		pending     []string
		hasRevision bool
		hasInfo     bool
	)
	flush := func() {
		if len(pending) > 0 {
			doc.segments = append(doc.segments, &Text{lines: pending})
			pending = nil
		}
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		isRevision := !hasRevision && matchesHeading(line, markers.RevisionHeading)
		isInfo := !isRevision && !hasInfo && matchesHeading(line, markers.InfoHeading)
		if !isRevision && !isInfo {
			pending = append(pending, line)
			i++
			continue
		}

		// Claim the horizontal rule sitting above the heading
		var head []string
		k := len(pending) - 1
		for k >= 0 && strings.TrimSpace(pending[k]) == "" {
			k--
		}
		if k >= 0 && isRule(pending[k]) {
			head = append(head, pending[k:]...)
			pending = pending[:k]
		}
		flush()

		end := i + 1
		for end < len(lines) && !isSectionBreak(lines[end]) {
			end++
		}
		block := append(head, lines[i:end]...)
		if isRevision {
			doc.segments = append(doc.segments, &RevisionHistory{lines: block, heading: len(head), markers: markers})
			hasRevision = true
		} else {
			doc.segments = append(doc.segments, &DocumentInfo{lines: block, markers: markers})
			hasInfo = true
		}
		i = end
	}
	flush()
	return doc
}

// String serializes the document back to text
func (d *Document) String() string {
	return strings.Join(d.Lines(), d.Newline())
}

// Newline returns the line terminator the document uses
func (d *Document) Newline() string {
	if d.newline == "" {
		return "\n"
	}
	return d.newline
}

// Lines returns every line of the document in order
func (d *Document) Lines() []string {
	var out []string
	for _, s := range d.segments {
		out = append(out, s.Lines()...)
	}
	return out
}

// Segments returns the parsed segments
func (d *Document) Segments() []Segment { return d.segments }

// RevisionHistory returns the detected Revision-History block, or nil
func (d *Document) RevisionHistory() *RevisionHistory {
	for _, s := range d.segments {
		if rh, ok := s.(*RevisionHistory); ok {
			return rh
		}
	}
	return nil
}

// DocumentInfo returns the detected Document-Info block, or nil
func (d *Document) DocumentInfo() *DocumentInfo {
	for _, s := range d.segments {
		if di, ok := s.(*DocumentInfo); ok {
			return di
		}
	}
	return nil
}

// MaxVersion returns the highest version found in any revision row of the
// document. The scan covers every line, not only the Revision-History block.
func (d *Document) MaxVersion() (Version, bool) {
	var (
		max   Version
		found bool
	)
	for _, line := range d.Lines() {
		for _, m := range rowVersionPattern.FindAllStringSubmatch(line, -1) {
			v, err := ParseVersion(m[2])
			if err != nil {
				continue
			}
			if !found || v.Compare(max) > 0 {
				max = v
				found = true
			}
		}
	}
	return max, found
}

// NextVersion returns the version the next revision row should carry
func (d *Document) NextVersion() Version {
	max, ok := d.MaxVersion()
	if !ok {
		return InitialVersion
	}
	return max.Next()
}

// Append adds a block at the end of the document, separated by one blank line.
// The document always ends with a newline afterwards.
func (d *Document) Append(s Segment) {
	d.trimTrailingBlank()
	if len(d.segments) > 0 {
		d.segments = append(d.segments, &Text{lines: []string{""}})
	}
	d.segments = append(d.segments, s, &Text{lines: []string{""}})
}

// InsertBefore places s directly before target, or appends it if target is
// not part of the document.
func (d *Document) InsertBefore(target, s Segment) {
	idx := -1
	for i, seg := range d.segments {
		if seg == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		d.Append(s)
		return
	}

	insert := []Segment{s, &Text{lines: []string{""}}}
	if idx > 0 {
		prev := d.segments[idx-1].Lines()
		if len(prev) > 0 && strings.TrimSpace(prev[len(prev)-1]) != "" {
			insert = append([]Segment{&Text{lines: []string{""}}}, insert...)
		}
	}
	segs := make([]Segment, 0, len(d.segments)+len(insert))
	segs = append(segs, d.segments[:idx]...)
	segs = append(segs, insert...)
	segs = append(segs, d.segments[idx:]...)
	d.segments = segs
}

// trimTrailingBlank drops blank lines at the end of the document
func (d *Document) trimTrailingBlank() {
	for len(d.segments) > 0 {
		last := d.segments[len(d.segments)-1]
		switch s := last.(type) {
		case *Text:
			s.lines = trimBlankTail(s.lines)
			if len(s.lines) > 0 {
				return
			}
		case *RevisionHistory:
			s.lines = trimBlankTail(s.lines)
			return
		case *DocumentInfo:
			s.lines = trimBlankTail(s.lines)
			return
		default:
			return
		}
		d.segments = d.segments[:len(d.segments)-1]
	}
}

func trimBlankTail(lines []string) []string {
	n := len(lines)
	for n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		n--
	}
	return lines[:n]
}

// matchesHeading reports whether line is a markdown heading containing marker
func matchesHeading(line, marker string) bool {
	if marker == "" {
		return false
	}
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "#") {
		return false
	}
	return strings.Contains(norm.NFC.String(t), norm.NFC.String(marker))
}

func isRule(line string) bool {
	return strings.TrimSpace(line) == "---"
}

func isSectionBreak(line string) bool {
	t := strings.TrimSpace(line)
	return t == "---" || t == "#" || t == "##" ||
		strings.HasPrefix(t, "# ") || strings.HasPrefix(t, "## ")
}
