package render

import (
	"strings"
	"testing"
)

func sampleDoc() string {
	var b strings.Builder
	b.WriteString("# Add retry logic\n\n")
	b.WriteString("## Overview\n\nShort overview paragraph.\n\n")
	b.WriteString("## Type of Change\n\n- **Category**: feature\n\n")
	b.WriteString("## Description\n\n")
	b.WriteString(strings.Repeat("Detailed change narrative line.\n", 40))
	b.WriteString("\n## Checklist\n\n- [ ] item\n\n")
	b.WriteString("## Testing\n\n" + strings.Repeat("Testing notes line.\n", 30))
	b.WriteString("\n## Notes\n\nGenerated footer.\n")
	return b.String()
}

func TestGovern_UnderCeilingPassthrough(t *testing.T) {
	doc := sampleDoc()
	if got := Govern(doc, len(doc)+1); got != doc {
		t.Fatalf("document under the ceiling must pass through unchanged")
	}
	if got := Govern(doc, 0); got != doc {
		t.Fatalf("non-positive ceiling disables governing")
	}
}

func TestGovern_NeverExceedsCeiling(t *testing.T) {
	doc := sampleDoc()
	for _, ceiling := range []int{200, 300, 500, 1000, 2000, len(doc) - 1} {
		out := Govern(doc, ceiling)
		if len(out) > ceiling {
			t.Fatalf("ceiling %d exceeded: %d chars", ceiling, len(out))
		}
	}
}

func TestGovern_KeepsHighPrioritySections(t *testing.T) {
	doc := sampleDoc()
	out := Govern(doc, 600)

	if !strings.Contains(out, "# Add retry logic") {
		t.Fatalf("title must survive governing:\n%s", out)
	}
	if !strings.Contains(out, "## Overview") {
		t.Fatalf("overview has highest priority and must survive:\n%s", out)
	}
	if strings.Contains(out, "## Notes") {
		t.Fatalf("lowest-priority section must be dropped first:\n%s", out)
	}
	if !strings.Contains(out, "Some content was omitted") {
		t.Fatalf("governed output must carry the omission notice:\n%s", out)
	}
}

func TestGovern_TruncatedSectionMarked(t *testing.T) {
	doc := sampleDoc()
	out := Govern(doc, 700)
	if !strings.Contains(out, "[content truncated]") && !sectionsAllWhole(out, doc) {
		t.Fatalf("partially kept section must be marked:\n%s", out)
	}
}

func sectionsAllWhole(out, doc string) bool {
	// When the budget lands exactly on a section boundary no marker appears.
	_, sections := splitSections(doc)
	for _, sec := range sections {
		if strings.Contains(out, sec) {
			continue
		}
		header := sectionHeader(sec)
		if strings.Contains(strings.ToLower(out), "## "+header) {
			return false
		}
	}
	return true
}

func TestGovern_TinyCeilingFallsBack(t *testing.T) {
	doc := sampleDoc()
	out := Govern(doc, 100)
	if len(out) > 100 {
		t.Fatalf("fallback truncation exceeded ceiling: %d", len(out))
	}
	if !strings.HasPrefix(doc, strings.TrimSuffix(out, "\n...[truncated]")) {
		t.Fatalf("fallback must be a prefix of the document")
	}
}

func TestGovern_NoSectionsFallsBack(t *testing.T) {
	doc := strings.Repeat("plain text without any headers\n", 20)
	out := Govern(doc, 250)
	if len(out) > 250 {
		t.Fatalf("fallback truncation exceeded ceiling: %d", len(out))
	}
}

func TestSplitSections(t *testing.T) {
	title, sections := splitSections("# T\n\n## Overview\n\nbody\n\n## Testing\n\nbody2\n")
	if title != "# T\n\n" {
		t.Fatalf("unexpected title %q", title)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !strings.HasPrefix(sections[0], "## Overview") || !strings.HasPrefix(sections[1], "## Testing") {
		t.Fatalf("sections mis-split: %q", sections)
	}
}

func TestPrioritize(t *testing.T) {
	sections := []string{
		"## Notes\n\nn\n",
		"## Testing\n\nt\n",
		"## Overview\n\no\n",
		"## Description\n\nd\n",
	}
	ordered := prioritize(sections)
	want := []string{"## Overview", "## Description", "## Testing", "## Notes"}
	for i, prefix := range want {
		if !strings.HasPrefix(ordered[i], prefix) {
			t.Fatalf("position %d: expected %s, got %q", i, prefix, ordered[i])
		}
	}
}
