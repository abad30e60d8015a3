package document

// Markers holds the fixed text contract used to detect and synthesize blocks.
// Detection only works when these strings match the document exactly
// (after NFC normalization), so changing them orphans existing blocks.
type Markers struct {
	InfoHeading       string // Document-Info heading line
	RevisionHeading   string // Revision-History heading line
	RevisionIntro     string // Explanatory sentence under the revision heading
	TableHeader       string // Revision table header row
	TableSeparator    string // Revision table separator row
	AuthorLabel       string // Author sub-block label
	ReviewerLabel     string // Reviewer sub-block label
	VersionLabel      string // Document version field label (without colon)
	LastModifiedLabel string // Last modified field label (without colon)
	Placeholder       string // Author line used when attribution is withheld
}

// Attribution line labels inside the author sub-block
const (
	attributionModelLabel = "- AI: "
	attributionEnvLabel   = "- 환경: "
	attributionDateLabel  = "- 작성일: "
)

// DefaultMarkers returns the markers used by existing documents
func DefaultMarkers() Markers {
	return Markers{
		InfoHeading:       "## 📝 문서 정보",
		RevisionHeading:   "## 3. 수정 이력",
		RevisionIntro:     "문서의 주요 수정 사항을 기록합니다.",
		TableHeader:       "| 일자 | 버전 | 설명 | 리뷰어 |",
		TableSeparator:    "|------|------|------|--------|",
		AuthorLabel:       "**작성자**:",
		ReviewerLabel:     "**리뷰어**:",
		VersionLabel:      "**문서 버전**",
		LastModifiedLabel: "**최종 수정**",
		Placeholder:       "- (작성자 정보 없음)",
	}
}

// WithDefaults fills empty fields from DefaultMarkers
func (m Markers) WithDefaults() Markers {
	d := DefaultMarkers()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&m.InfoHeading, d.InfoHeading)
	fill(&m.RevisionHeading, d.RevisionHeading)
	fill(&m.RevisionIntro, d.RevisionIntro)
	fill(&m.TableHeader, d.TableHeader)
	fill(&m.TableSeparator, d.TableSeparator)
	fill(&m.AuthorLabel, d.AuthorLabel)
	fill(&m.ReviewerLabel, d.ReviewerLabel)
	fill(&m.VersionLabel, d.VersionLabel)
	fill(&m.LastModifiedLabel, d.LastModifiedLabel)
	fill(&m.Placeholder, d.Placeholder)
	return m
}
