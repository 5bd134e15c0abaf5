package diff

// LineKind classifies a single raw line of unified diff text.
type LineKind int

const (
	LineOther LineKind = iota
	LineFileHeader
	LineHunkHeader
	LineAddition
	LineDeletion
	LineContext
)

// Line is the result of classifying one raw diff line. It is consumed during
// parsing and not retained.
type Line struct {
	Kind    LineKind
	Path    string // set for LineFileHeader
	Content string // marker-stripped content for additions/deletions, label for hunk headers
}

// FileChange accumulates the changes observed for a single file while
// scanning a diff. Added/Removed are bounded by the parser configuration;
// AddedTotal/RemovedTotal count every line regardless of the cap.
type FileChange struct {
	Path         string
	Added        []string
	Removed      []string
	Hunks        []string
	AddedTotal   int
	RemovedTotal int
	Binary       bool
}

// ParseResult holds the per-file records of one parse operation, in the order
// files first appear in the diff, plus whole-diff aggregate counts.
type ParseResult struct {
	Files          []*FileChange
	TotalAdded     int
	TotalRemoved   int
	InputTruncated bool

	index map[string]*FileChange
}

// TotalFiles returns the number of distinct files seen in the diff.
func (r *ParseResult) TotalFiles() int {
	return len(r.Files)
}

// File returns the change record for path, or nil when the path was not part
// of the diff.
func (r *ParseResult) File(path string) *FileChange {
	if r.index == nil {
		return nil
	}
	return r.index[path]
}

func (r *ParseResult) file(path string) *FileChange {
	if r.index == nil {
		r.index = make(map[string]*FileChange)
	}
	if fc, ok := r.index[path]; ok {
		return fc
	}
	fc := &FileChange{Path: path}
	r.index[path] = fc
	r.Files = append(r.Files, fc)
	return fc
}

// Complexity is a qualitative per-file change size label.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// ChangeKind describes the direction of a single file's change.
type ChangeKind string

const (
	ChangeKindAddition     ChangeKind = "Addition"
	ChangeKindDeletion     ChangeKind = "Deletion"
	ChangeKindModification ChangeKind = "Modification"
)

// FileAnalysis is the derived qualitative assessment of one file's changes.
type FileAnalysis struct {
	Path            string     `json:"path"`
	ChangeKind      ChangeKind `json:"change_kind"`
	Complexity      Complexity `json:"complexity"`
	BusinessImpact  string     `json:"business_impact"`
	ImpactRationale string     `json:"impact_rationale"`
	LinesAdded      int        `json:"lines_added"`
	LinesRemoved    int        `json:"lines_removed"`
}

// ChangeType is the single discrete category summarizing the intent of a
// whole diff.
type ChangeType string

const (
	ChangeFeature     ChangeType = "feature"
	ChangeBugfix      ChangeType = "bugfix"
	ChangeRefactor    ChangeType = "refactor"
	ChangeDocs        ChangeType = "docs"
	ChangeTesting     ChangeType = "testing"
	ChangeSecurity    ChangeType = "security"
	ChangePerformance ChangeType = "performance"
	ChangeStyle       ChangeType = "style"
	ChangeConfig      ChangeType = "config"
	ChangeDependency  ChangeType = "dependency"
	ChangeHotfix      ChangeType = "hotfix"
	ChangeBreaking    ChangeType = "breaking-change"
)

// Confidence levels are discrete: the classifier maps qualitative judgments
// onto fixed values rather than emitting arbitrary floats.
const (
	ConfidenceDefault float64 = 0.4
	ConfidenceRatio   float64 = 0.6
	ConfidenceKeyword float64 = 0.7
	ConfidenceStrong  float64 = 0.9
)

// Aspects holds the rule-derived description paragraphs for the whole diff.
type Aspects struct {
	BusinessLogic       string `json:"business_logic"`
	Architecture        string `json:"architecture"`
	TechnicalComplexity string `json:"technical_complexity"`
	Security            string `json:"security"`
	Dependencies        string `json:"dependencies"`
	Risk                string `json:"risk"`
}

// Analysis is the terminal classification object produced once per diff.
type Analysis struct {
	ChangeType       ChangeType     `json:"change_type"`
	Confidence       float64        `json:"confidence"`
	Aspects          Aspects        `json:"aspects"`
	Files            []FileAnalysis `json:"files"`
	UnnecessaryFiles []string       `json:"potentially_unnecessary_files,omitempty"`
	Summary          string         `json:"summary"`
	TotalFiles       int            `json:"total_files"`
	TotalAdded       int            `json:"total_added"`
	TotalRemoved     int            `json:"total_removed"`
	InputTruncated   bool           `json:"input_truncated,omitempty"`
}

// DetailLevel selects how much detail the composed summary carries.
type DetailLevel string

const (
	DetailBasic    DetailLevel = "basic"
	DetailExtended DetailLevel = "extended"
	DetailSecurity DetailLevel = "security"
)
