package render

import (
	"sort"
	"strings"
)

// MinCeiling is the smallest ceiling the section-aware path handles; below
// it the governor falls back to plain character truncation.
const MinCeiling = 200

const truncatedMarker = "\n[content truncated]"

const truncationNotice = "\n\n---\n*Some content was omitted to fit the response size limit. The full document was written to disk.*"

// Section priority when the document must shrink: earlier entries survive.
var sectionPriority = []string{
	"overview",
	"type of change",
	"description",
	"checklist",
	"testing",
	"notes",
}

// Govern fits a rendered markdown document under a hard character ceiling.
// It keeps the title and the highest-priority sections whole, truncates the
// first section that does not fit, and appends a notice when anything was
// dropped. It never fails: any structural surprise falls back to straight
// character truncation.
func Govern(doc string, ceiling int) (out string) {
	if ceiling <= 0 || len(doc) <= ceiling {
		return doc
	}
	defer func() {
		if r := recover(); r != nil {
			out = hardTruncate(doc, ceiling)
		}
	}()
	if ceiling < MinCeiling {
		return hardTruncate(doc, ceiling)
	}

	title, sections := splitSections(doc)
	if len(sections) == 0 {
		return hardTruncate(doc, ceiling)
	}

	budget := ceiling - len(truncationNotice)
	if len(title) > budget {
		return hardTruncate(doc, ceiling)
	}

	var b strings.Builder
	b.WriteString(title)
	budget -= len(title)

	for _, sec := range prioritize(sections) {
		if len(sec) <= budget {
			b.WriteString(sec)
			budget -= len(sec)
			continue
		}
		if keep := budget - len(truncatedMarker); keep > 40 {
			b.WriteString(sec[:keep])
			b.WriteString(truncatedMarker)
		}
		break
	}

	b.WriteString(truncationNotice)
	return b.String()
}

func hardTruncate(doc string, ceiling int) string {
	const marker = "\n...[truncated]"
	if ceiling <= len(marker) {
		return doc[:ceiling]
	}
	return doc[:ceiling-len(marker)] + marker
}

// splitSections divides the document into the title block (everything before
// the first top-level "## " header) and the sections that follow it, each
// section including its header line.
func splitSections(doc string) (string, []string) {
	starts := sectionStarts(doc)
	if len(starts) == 0 {
		return doc, nil
	}
	title := doc[:starts[0]]
	var sections []string
	for i, start := range starts {
		end := len(doc)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sections = append(sections, doc[start:end])
	}
	return title, sections
}

func sectionStarts(doc string) []int {
	var starts []int
	if strings.HasPrefix(doc, "## ") {
		starts = append(starts, 0)
	}
	offset := 0
	for {
		idx := strings.Index(doc[offset:], "\n## ")
		if idx < 0 {
			break
		}
		starts = append(starts, offset+idx+1)
		offset += idx + 1
	}
	return starts
}

// prioritize orders sections by the fixed priority list; sections with
// unrecognized headers keep their original relative order after the known
// ones.
func prioritize(sections []string) []string {
	rank := func(sec string) int {
		header := sectionHeader(sec)
		for i, name := range sectionPriority {
			if strings.HasPrefix(header, name) {
				return i
			}
		}
		return len(sectionPriority)
	}
	ordered := make([]string, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rank(ordered[i]) < rank(ordered[j])
	})
	return ordered
}

func sectionHeader(sec string) string {
	line := sec
	if idx := strings.IndexByte(sec, '\n'); idx >= 0 {
		line = sec[:idx]
	}
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "## ")))
}
