package diff

import (
	"regexp"
	"strings"
)

var (
	testPathPattern       = regexp.MustCompile(`(?i)(^|/)(tests?|__tests__|spec)/|_test\.\w+$|\.(test|spec)\.\w+$`)
	docPathPattern        = regexp.MustCompile(`(?i)\.(md|markdown|rst|txt|adoc)$|(^|/)docs?/`)
	stylePathPattern      = regexp.MustCompile(`(?i)\.(css|scss|less|styl)$`)
	dependencyPathPattern = regexp.MustCompile(`(?i)package(-lock)?\.json$|yarn\.lock$|pnpm-lock\.yaml$|go\.(mod|sum)$|requirements\.txt$|Gemfile(\.lock)?$|Cargo\.(toml|lock)$|pom\.xml$`)
	configPathPattern     = regexp.MustCompile(`(?i)\.(ya?ml|toml|ini|cfg|conf)$|(^|/)(Dockerfile|Makefile)$|(^|/)\.github/`)

	bugKeywords         = regexp.MustCompile(`(?i)\b(fix(es|ed)?|bug|issue|crash|fault|regression|resolve[sd]?)\b`)
	securityKeywords    = regexp.MustCompile(`(?i)\b(auth(entication|orization)?|security|vulnerab\w*|password|login|token|sanitiz\w*|xss|csrf|encrypt\w*)\b`)
	performanceKeywords = regexp.MustCompile(`(?i)\b(performance|optimi[sz]\w*|cache|caching|latency|throughput|benchmark|memoiz\w*)\b`)
	styleKeywords       = regexp.MustCompile(`(?i)\b(styling|stylesheet|prettier|eslint|lint(ing)?|formatting)\b`)
)

// ClassifyChangeType assigns one discrete category to the whole diff together
// with a discrete confidence level. Evaluation is strictly top-down and the
// first matching rule wins; the fixed precedence keeps classification
// deterministic and explainable:
//
//	breaking-change marker -> testing paths -> documentation paths -> hotfix
//	marker -> bug keywords -> security keywords -> performance keywords ->
//	style signals -> dependency manifests -> config files ->
//	(added > 2x removed) -> refactor.
//
// Excluded paths still count toward the path-based rules, but their content
// never feeds the keyword scans: lock files are full of "resolved" URLs and
// would otherwise read as bugfixes.
func ClassifyChangeType(diffText string, res *ParseResult, patterns map[string]*regexp.Regexp) (ChangeType, float64) {
	lowered := strings.ToLower(diffText)

	total := res.TotalFiles()
	testFiles, docFiles, styleFiles, depFiles, configFiles := 0, 0, 0, 0, 0
	var addedLines []string
	for _, fc := range res.Files {
		switch {
		case testPathPattern.MatchString(fc.Path):
			testFiles++
		case docPathPattern.MatchString(fc.Path):
			docFiles++
		case stylePathPattern.MatchString(fc.Path):
			styleFiles++
		case dependencyPathPattern.MatchString(fc.Path):
			depFiles++
		case configPathPattern.MatchString(fc.Path):
			configFiles++
		}
		if excluded, _ := shouldExcludePath(fc.Path, patterns); excluded {
			continue
		}
		addedLines = append(addedLines, fc.Added...)
	}

	switch {
	case strings.Contains(lowered, "breaking change") || strings.Contains(diffText, "BREAKING CHANGE"):
		return ChangeBreaking, ConfidenceStrong
	case testFiles > 0 && testFiles*2 >= total:
		return ChangeTesting, ConfidenceStrong
	case docFiles > 0 && docFiles*2 > total:
		return ChangeDocs, ConfidenceStrong
	case strings.Contains(lowered, "hotfix"):
		return ChangeHotfix, ConfidenceStrong
	case countMatches(addedLines, bugKeywords) >= 2:
		return ChangeBugfix, ConfidenceKeyword
	case countMatches(addedLines, securityKeywords) >= 2:
		return ChangeSecurity, ConfidenceKeyword
	case countMatches(addedLines, performanceKeywords) >= 2:
		return ChangePerformance, ConfidenceKeyword
	case (styleFiles > 0 && styleFiles*2 > total) || countMatches(addedLines, styleKeywords) >= 2:
		return ChangeStyle, ConfidenceKeyword
	case depFiles > 0 && depFiles*2 > total:
		return ChangeDependency, ConfidenceKeyword
	case configFiles > 0 && configFiles*2 > total:
		return ChangeConfig, ConfidenceKeyword
	case res.TotalAdded > 2*res.TotalRemoved:
		return ChangeFeature, ConfidenceRatio
	}
	return ChangeRefactor, ConfidenceDefault
}
