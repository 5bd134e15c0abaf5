package diff

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-logr/logr"

	"github.com/prscribe/prscribe/internal/logging"
)

type Options struct {
	Parser            ParserConfig
	MaxNarrativeFiles int
	Detail            DetailLevel
	Logger            logr.Logger
}

// Analyzer runs the full Parse -> Classify -> Compose pipeline. All state is
// per-invocation; an Analyzer only holds configuration and compiled patterns,
// so a single instance is safe for concurrent use.
type Analyzer struct {
	opts    Options
	log     logging.Logger
	parser  *Parser
	exclude map[string]*regexp.Regexp
}

func NewAnalyzer(opts Options) *Analyzer {
	log := logging.New(opts.Logger)
	if opts.Detail == "" {
		opts.Detail = DetailBasic
	}
	if opts.MaxNarrativeFiles <= 0 {
		opts.MaxNarrativeFiles = 20
	}
	return &Analyzer{
		opts:    opts,
		log:     log.WithName("analyzer"),
		parser:  NewParser(opts.Parser, log),
		exclude: buildExcludePatterns(),
	}
}

// Analyze produces the terminal classification for a diff. It never fails:
// each stage is fault-isolated and degrades to a conservative default, so the
// pipeline always terminates with a valid Analysis.
func (a *Analyzer) Analyze(diffText string) Analysis {
	res := a.parser.Parse(diffText)

	analysis := Analysis{
		ChangeType:     ChangeRefactor,
		Confidence:     ConfidenceDefault,
		TotalFiles:     res.TotalFiles(),
		TotalAdded:     res.TotalAdded,
		TotalRemoved:   res.TotalRemoved,
		InputTruncated: res.InputTruncated,
	}

	a.classifyStage(diffText, res, &analysis)
	a.composeStage(res, &analysis)

	return analysis
}

func (a *Analyzer) classifyStage(diffText string, res *ParseResult, analysis *Analysis) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(fmt.Errorf("classify stage panic: %v", r), "falling back to default classification")
			analysis.ChangeType = ChangeRefactor
			analysis.Confidence = ConfidenceDefault
		}
	}()

	analysis.ChangeType, analysis.Confidence = ClassifyChangeType(diffText, res, a.exclude)

	analysis.Files = make([]FileAnalysis, 0, len(res.Files))
	for _, fc := range res.Files {
		analysis.Files = append(analysis.Files, AnalyzeFile(fc))
	}

	analysis.UnnecessaryFiles = a.flagUnnecessaryFiles(res)
	analysis.Aspects = a.deriveAspects(res, analysis)
}

func (a *Analyzer) composeStage(res *ParseResult, analysis *Analysis) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(fmt.Errorf("compose stage panic: %v", r), "falling back to minimal summary")
			analysis.Summary = fmt.Sprintf(
				"## Changes Summary\n\n%d file(s) changed, +%d/-%d lines.\n",
				analysis.TotalFiles, analysis.TotalAdded, analysis.TotalRemoved)
		}
	}()

	analysis.Summary = ComposeSummary(res, analysis.Files, a.exclude, ComposeOptions{
		MaxNarrativeFiles: a.opts.MaxNarrativeFiles,
		Detail:            a.opts.Detail,
	})
}

var debugLeftoverPattern = regexp.MustCompile(`(?i)^\s*(console\.(log|debug)|fmt\.Println|print(ln)?\(|debugger\b|binding\.pry)`)
var junkPathPattern = regexp.MustCompile(`(?i)(^|/)\.DS_Store$|\.(tmp|bak|swp|orig)$|(^|/)(\.idea|\.vscode)/|(^|/)thumbs\.db$`)

// flagUnnecessaryFiles lists files that likely should not ship: editor junk,
// temp files, and files whose additions are mostly leftover debug statements.
func (a *Analyzer) flagUnnecessaryFiles(res *ParseResult) []string {
	var flagged []string
	for _, fc := range res.Files {
		if junkPathPattern.MatchString(fc.Path) {
			flagged = append(flagged, fc.Path)
			continue
		}
		if len(fc.Added) >= 3 {
			debugLines := countMatches(fc.Added, debugLeftoverPattern)
			if debugLines*2 > len(fc.Added) {
				flagged = append(flagged, fc.Path)
			}
		}
	}
	return flagged
}

func (a *Analyzer) deriveAspects(res *ParseResult, analysis *Analysis) Aspects {
	var businessFiles, apiFiles, schemaFiles, securityFiles, asyncFiles, depFiles int
	highComplexity := 0
	for i, fc := range res.Files {
		if excluded, _ := shouldExcludePath(fc.Path, a.exclude); excluded {
			if dependencyPathPattern.MatchString(fc.Path) {
				depFiles++
			}
			continue
		}
		if HasBusinessLogic(fc.Added) {
			businessFiles++
		}
		if HasAPIRoutes(fc.Added) {
			apiFiles++
		}
		if HasSchemaChanges(fc.Added) {
			schemaFiles++
		}
		if HasSecurityKeywords(fc.Added) {
			securityFiles++
		}
		if HasAsyncOps(fc.Added) {
			asyncFiles++
		}
		if dependencyPathPattern.MatchString(fc.Path) {
			depFiles++
		}
		if i < len(analysis.Files) && analysis.Files[i].Complexity == ComplexityHigh {
			highComplexity++
		}
	}

	aspects := Aspects{
		BusinessLogic:       "No direct business logic changes detected.",
		Architecture:        "No structural changes to APIs or module boundaries detected.",
		TechnicalComplexity: fmt.Sprintf("%d file(s) changed with %d added and %d removed lines.", res.TotalFiles(), res.TotalAdded, res.TotalRemoved),
		Security:            "No security-sensitive changes detected.",
		Dependencies:        "No dependency changes detected.",
		Risk:                "Low risk: small, contained change set.",
	}

	if businessFiles > 0 {
		aspects.BusinessLogic = fmt.Sprintf("%d file(s) touch business logic code paths (services, handlers or domain workflows).", businessFiles)
	}
	if apiFiles > 0 || schemaFiles > 0 {
		parts := []string{}
		if apiFiles > 0 {
			parts = append(parts, fmt.Sprintf("%d file(s) change API routes or endpoints", apiFiles))
		}
		if schemaFiles > 0 {
			parts = append(parts, fmt.Sprintf("%d file(s) change data models or schemas", schemaFiles))
		}
		aspects.Architecture = strings.Join(parts, "; ") + "."
	}
	if highComplexity > 0 {
		aspects.TechnicalComplexity += fmt.Sprintf(" %d file(s) carry high-complexity changes.", highComplexity)
	}
	if asyncFiles > 0 {
		aspects.TechnicalComplexity += fmt.Sprintf(" %d file(s) use async or concurrency idioms.", asyncFiles)
	}
	if securityFiles > 0 {
		aspects.Security = fmt.Sprintf("%d file(s) touch security-sensitive code (auth, credentials or session handling); review carefully.", securityFiles)
	}
	if depFiles > 0 {
		aspects.Dependencies = fmt.Sprintf("%d dependency manifest(s) changed.", depFiles)
	}

	switch {
	case securityFiles > 0 && highComplexity > 0:
		aspects.Risk = "High risk: complex changes on security-sensitive paths."
	case highComplexity > 2 || res.TotalAdded+res.TotalRemoved > 500:
		aspects.Risk = "Medium risk: large change set; consider splitting for review."
	case securityFiles > 0:
		aspects.Risk = "Medium risk: security-sensitive paths touched."
	}

	return aspects
}
