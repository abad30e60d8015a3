package document

import "strings"

// RevisionHistory is the block holding the revision table
type RevisionHistory struct {
	lines   []string
	heading int // index of the heading line within lines
	markers Markers
}

// NewRevisionHistory synthesizes a complete block with a single row
func NewRevisionHistory(markers Markers, first Entry) *RevisionHistory {
	markers = markers.WithDefaults()
	return &RevisionHistory{
		lines: []string{
			"---",
			"",
			markers.RevisionHeading,
			"",
			markers.RevisionIntro,
			"",
			markers.TableHeader,
			markers.TableSeparator,
			first.String(),
		},
		heading: 2,
		markers: markers,
	}
}

// Lines returns the raw lines of the block
func (r *RevisionHistory) Lines() []string { return r.lines }

// separator returns the index of the table separator after the heading, or -1
func (r *RevisionHistory) separator() int {
	for i := r.heading + 1; i < len(r.lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(r.lines[i]), "|---") {
			return i
		}
	}
	return -1
}

// Insert adds e directly below the separator row so the newest row comes first.
// A block without a table gets a fresh header, separator and row.
func (r *RevisionHistory) Insert(e Entry) {
	if sep := r.separator(); sep >= 0 {
		lines := make([]string, 0, len(r.lines)+1)
		lines = append(lines, r.lines[:sep+1]...)
		lines = append(lines, e.String())
		lines = append(lines, r.lines[sep+1:]...)
		r.lines = lines
		return
	}

	body := trimBlankTail(r.lines)
	tail := r.lines[len(body):]
	lines := make([]string, 0, len(r.lines)+4)
	lines = append(lines, body...)
	lines = append(lines, "", r.markers.TableHeader, r.markers.TableSeparator, e.String())
	lines = append(lines, tail...)
	r.lines = lines
}

// Entries returns the parsed rows below the separator in document order
func (r *RevisionHistory) Entries() []Entry {
	sep := r.separator()
	if sep < 0 {
		return nil
	}
	var out []Entry
	for _, line := range r.lines[sep+1:] {
		if e, ok := ParseEntry(line); ok {
			out = append(out, e)
		}
	}
	return out
}
