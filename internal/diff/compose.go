package diff

import (
	"fmt"
	"regexp"
	"strings"
)

const maxExampleLines = 2

var innerWhitespace = regexp.MustCompile(`\s+`)

type ComposeOptions struct {
	MaxNarrativeFiles int // files expanded in the narrative; remainder collapses into one notice
	Detail            DetailLevel
}

// ComposeSummary renders the parsed diff and per-file assessments into the
// markdown changes-summary block. Excluded paths (lock files, build output,
// logs) stay out of the narrative but are still counted in the statistics.
// Output is bounded regardless of diff size.
func ComposeSummary(res *ParseResult, analyses []FileAnalysis, patterns map[string]*regexp.Regexp, opts ComposeOptions) string {
	if opts.MaxNarrativeFiles <= 0 {
		opts.MaxNarrativeFiles = 20
	}
	if res == nil || res.TotalFiles() == 0 {
		return "## Changes Summary\n\nNo changes detected.\n"
	}

	byPath := make(map[string]FileAnalysis, len(analyses))
	for _, fa := range analyses {
		byPath[fa.Path] = fa
	}

	var narrative []*FileChange
	for _, fc := range res.Files {
		if excluded, _ := shouldExcludePath(fc.Path, patterns); excluded {
			continue
		}
		narrative = append(narrative, fc)
	}

	var b strings.Builder
	b.WriteString("## Changes Summary\n\n")

	shown := len(narrative)
	if shown > opts.MaxNarrativeFiles {
		shown = opts.MaxNarrativeFiles
	}
	fmt.Fprintf(&b, "### Modified Files (%d)\n\n", len(narrative))

	funcs, classes, typeDecls := 0, 0, 0
	for i, fc := range narrative {
		funcs += CountFunctions(fc.Added)
		classes += CountClasses(fc.Added)
		typeDecls += CountTypeDecls(fc.Added)
		if i >= shown {
			continue
		}
		fa, ok := byPath[fc.Path]
		if !ok {
			fa = AnalyzeFile(fc)
		}
		fmt.Fprintf(&b, "- `%s` — %s, %s complexity, %s impact (%s)\n",
			fc.Path, fa.ChangeKind, fa.Complexity, fa.BusinessImpact, fa.ImpactRationale)
		fmt.Fprintf(&b, "  - +%d/-%d lines\n", fa.LinesAdded, fa.LinesRemoved)
		for _, example := range exampleLines(fc) {
			fmt.Fprintf(&b, "  - e.g. `%s`\n", example)
		}
		if opts.Detail == DetailExtended && len(fc.Hunks) > 0 {
			fmt.Fprintf(&b, "  - sections: %s\n", strings.Join(dedupe(fc.Hunks, 5), "; "))
		}
	}
	if remaining := len(narrative) - shown; remaining > 0 {
		fmt.Fprintf(&b, "\n...and %d more files not shown\n", remaining)
	}

	b.WriteString("\n### Statistics\n\n")
	fmt.Fprintf(&b, "- Files changed: %d\n", res.TotalFiles())
	fmt.Fprintf(&b, "- Lines added: %d\n", res.TotalAdded)
	fmt.Fprintf(&b, "- Lines removed: %d\n", res.TotalRemoved)
	fmt.Fprintf(&b, "- Functions touched: %d\n", funcs)
	fmt.Fprintf(&b, "- Classes touched: %d\n", classes)
	fmt.Fprintf(&b, "- Type declarations touched: %d\n", typeDecls)
	avg := (res.TotalAdded + res.TotalRemoved) / maxInt(1, res.TotalFiles())
	fmt.Fprintf(&b, "- Average changes per file: %d (%s overall complexity)\n", avg, overallComplexity(avg))
	fmt.Fprintf(&b, "- Estimated tokens: %d\n", estimateTokens(b.String()))

	if opts.Detail == DetailSecurity {
		b.WriteString(composeSecuritySection(narrative))
	}

	if res.InputTruncated {
		b.WriteString("\n> Note: the diff exceeded the processing size limit and was truncated before analysis. Consider splitting your changes into smaller commits.\n")
	}

	return b.String()
}

func composeSecuritySection(files []*FileChange) string {
	var b strings.Builder
	found := false
	for _, fc := range files {
		if !HasSecurityKeywords(fc.Added) {
			continue
		}
		if !found {
			b.WriteString("\n### Security Review\n\n")
			found = true
		}
		withheld := len(CredentialLineIndices(fc.Added))
		if withheld > 0 {
			fmt.Fprintf(&b, "- `%s`: security-sensitive keywords present; %d credential-like line(s) withheld from examples\n", fc.Path, withheld)
		} else {
			fmt.Fprintf(&b, "- `%s`: security-sensitive keywords present\n", fc.Path)
		}
	}
	if !found {
		return "\n### Security Review\n\n- No security-sensitive changes detected\n"
	}
	return b.String()
}

// exampleLines picks up to two representative added lines, cleaned for
// display. Lines flagged as credential-like are never surfaced.
func exampleLines(fc *FileChange) []string {
	flagged := CredentialLineIndices(fc.Added)
	var examples []string
	for i, l := range fc.Added {
		if flagged[i] {
			continue
		}
		cleaned := cleanExample(l)
		if len(cleaned) < 5 || len(cleaned) > 120 {
			continue
		}
		examples = append(examples, cleaned)
		if len(examples) == maxExampleLines {
			break
		}
	}
	return examples
}

func cleanExample(line string) string {
	cleaned := innerWhitespace.ReplaceAllString(strings.TrimSpace(line), " ")
	cleaned = strings.TrimSuffix(cleaned, ";")
	return strings.ReplaceAll(cleaned, "`", "'")
}

func dedupe(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if len(out) == limit {
			break
		}
	}
	return out
}

func overallComplexity(avgChangesPerFile int) Complexity {
	switch {
	case avgChangesPerFile > highComplexityLines:
		return ComplexityHigh
	case avgChangesPerFile > mediumComplexityLines:
		return ComplexityMedium
	}
	return ComplexityLow
}
