package document

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the ISO date format used in rows and fields
const DateLayout = "2006-01-02"

// rowVersionPattern matches the date and version cells of a revision row anywhere in a line
var rowVersionPattern = regexp.MustCompile(`\|\s*(\d{4}-\d{2}-\d{2})\s*\|\s*(\d+\.\d+)\s*\|`)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Entry is one row of the revision table
type Entry struct {
	Date        string
	Version     Version
	Description string
	Reviewer    string
}

// String renders the entry as a table row
func (e Entry) String() string {
	return fmt.Sprintf("| %s | %s | %s | %s |",
		e.Date, e.Version, CellText(e.Description), CellText(e.Reviewer))
}

// CellText normalizes free text for a table cell: NFC, single line, pipes escaped
func CellText(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, `\|`, "|")
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.TrimSpace(s)
}

// ParseEntry parses a revision row. It reports false for anything else,
// including the header and separator rows.
func ParseEntry(line string) (Entry, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 2 || !strings.HasPrefix(t, "|") || !strings.HasSuffix(t, "|") {
		return Entry{}, false
	}
	cells := splitCells(t[1 : len(t)-1])
	if len(cells) != 4 {
		return Entry{}, false
	}
	if !datePattern.MatchString(cells[0]) {
		return Entry{}, false
	}
	v, err := ParseVersion(cells[1])
	if err != nil {
		return Entry{}, false
	}
	return Entry{
		Date:        cells[0],
		Version:     v,
		Description: strings.ReplaceAll(cells[2], `\|`, "|"),
		Reviewer:    strings.ReplaceAll(cells[3], `\|`, "|"),
	}, true
}

// splitCells splits on unescaped pipes and trims every cell
func splitCells(s string) []string {
	var (
		cells []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == '|' {
			cur.WriteString(`\|`)
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(cells, strings.TrimSpace(cur.String()))
}
