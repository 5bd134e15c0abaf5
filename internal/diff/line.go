package diff

import (
	"regexp"
	"strings"
)

// Lines longer than this are treated as noise (minified or generated content)
// and excluded from downstream analysis, though still counted in raw totals.
const maxLineLength = 500

var (
	fileHeaderRegexp = regexp.MustCompile(`^diff --git a/(.+?) b/(.+)$`)
	hunkRangeRegexp  = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@ ?`)
)

// ClassifyLine categorizes one raw diff line. For additions and deletions the
// returned content has the leading marker stripped and whitespace trimmed.
// File header lines that do not match the expected pattern classify as Other
// so the parser keeps its current file context.
func ClassifyLine(raw string) Line {
	switch {
	case strings.HasPrefix(raw, "diff --git"):
		m := fileHeaderRegexp.FindStringSubmatch(raw)
		if m == nil {
			return Line{Kind: LineOther}
		}
		return Line{Kind: LineFileHeader, Path: m[1]}
	case strings.HasPrefix(raw, "@@"):
		label := strings.TrimSpace(hunkRangeRegexp.ReplaceAllString(raw, ""))
		return Line{Kind: LineHunkHeader, Content: label}
	case strings.HasPrefix(raw, "+") && !strings.HasPrefix(raw, "+++"):
		return Line{Kind: LineAddition, Content: strings.TrimSpace(raw[1:])}
	case strings.HasPrefix(raw, "-") && !strings.HasPrefix(raw, "---"):
		return Line{Kind: LineDeletion, Content: strings.TrimSpace(raw[1:])}
	}
	return Line{Kind: LineContext}
}
