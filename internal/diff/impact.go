package diff

import (
	"path/filepath"
	"strings"
)

const (
	highComplexityLines   = 50
	mediumComplexityLines = 20
)

var codeExtensions = map[string]bool{
	".go": true, ".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".py": true, ".java": true, ".rb": true, ".rs": true, ".c": true,
	".cc": true, ".cpp": true, ".h": true, ".cs": true, ".php": true,
	".kt": true, ".swift": true, ".scala": true, ".ex": true, ".exs": true,
}

var lowImpactExtensions = map[string]bool{
	".md": true, ".markdown": true, ".txt": true, ".rst": true,
	".yml": true, ".yaml": true, ".toml": true, ".ini": true, ".cfg": true, ".json": true,
	".css": true, ".scss": true, ".less": true, ".svg": true,
}

// AnalyzeFile derives a qualitative assessment from a file's change record.
// It is total: every record yields a FileAnalysis; files the rules cannot
// place get the explicit Unknown label rather than a guess.
func AnalyzeFile(fc *FileChange) FileAnalysis {
	added := fc.AddedTotal
	removed := fc.RemovedTotal

	kind := ChangeKindModification
	switch {
	case added > 2*removed:
		kind = ChangeKindAddition
	case removed > 2*added:
		kind = ChangeKindDeletion
	}

	total := added + removed
	complexity := ComplexityLow
	switch {
	case total > highComplexityLines:
		complexity = ComplexityHigh
	case total > mediumComplexityLines:
		complexity = ComplexityMedium
	}

	impact, rationale := assessBusinessImpact(fc, total)

	return FileAnalysis{
		Path:            fc.Path,
		ChangeKind:      kind,
		Complexity:      complexity,
		BusinessImpact:  impact,
		ImpactRationale: rationale,
		LinesAdded:      added,
		LinesRemoved:    removed,
	}
}

func assessBusinessImpact(fc *FileChange, totalLines int) (string, string) {
	ext := strings.ToLower(filepath.Ext(fc.Path))

	if lowImpactExtensions[ext] {
		return "Low", "Documentation, configuration or styling changes"
	}

	if codeExtensions[ext] {
		switch {
		case HasBusinessLogic(fc.Added) && totalLines > mediumComplexityLines:
			return "High", "Core business logic modifications"
		case HasAPIRoutes(fc.Added) || HasSchemaChanges(fc.Added):
			return "High", "API surface or data model changes"
		case HasSecurityKeywords(fc.Added):
			return "Medium", "Security-sensitive code paths touched"
		case totalLines > mediumComplexityLines:
			return "Medium", "Substantial application code changes"
		default:
			return "Medium", "Application code changes"
		}
	}

	if fc.Binary {
		return "Low", "Binary content, not analyzed"
	}

	return "Unknown", "Unrecognized file type, requires manual assessment"
}
