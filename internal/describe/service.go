package describe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/prscribe/prscribe/internal/diff"
	"github.com/prscribe/prscribe/internal/history"
	"github.com/prscribe/prscribe/internal/logging"
	"github.com/prscribe/prscribe/internal/render"
)

// Boundary validation errors. These are the only errors surfaced to callers
// as hard failures; everything inside the pipeline degrades gracefully.
var (
	ErrMissingTitle       = errors.New("title is required")
	ErrMissingDescription = errors.New("description is required")
	ErrDescriptionTooLong = errors.New("description exceeds the maximum length; keep it under 20000 characters")
	ErrNoDiffSource       = errors.New("no diff provided and no git repository available; pass a diff or run inside a repository")
)

const maxDescriptionChars = 20000

// Request is the strongly-typed input of one generation.
type Request struct {
	Title       string
	Description string
	Diff        string // optional; resolved from git when empty
	Template    string // optional; auto-selected from the change type when empty
	Screenshots []string
	BaseBranch  string // optional; default base discovery when empty
	Staged      bool   // prefer the staged diff over a branch range
	PRNumber    int    // set when regenerating an existing pull request
}

// Validate checks the request boundary. It returns one of the enumerated
// validation errors, never a generic failure.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrMissingDescription
	}
	if len(r.Description) > maxDescriptionChars {
		return ErrDescriptionTooLong
	}
	return nil
}

// DiffSource is the git-access collaborator.
type DiffSource interface {
	StagedDiff(ctx context.Context) (string, error)
	UnstagedDiff(ctx context.Context) (string, error)
	RangeDiff(ctx context.Context, base, head string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	DefaultBaseBranch(ctx context.Context) (string, error)
}

// HistoryStore records finished generations. Optional; persistence failures
// never block generation.
type HistoryStore interface {
	Save(ctx context.Context, gen *history.Generation) error
}

type ServiceConfig struct {
	Git          DiffSource // optional
	History      HistoryStore
	Analyzer     diff.Options
	OutputDir    string
	ResponseChar int // ceiling for the truncated transport variant
	Logger       logr.Logger
}

type Service struct {
	git          DiffSource
	historyS     HistoryStore
	analyzer     *diff.Analyzer
	analyzerOpts diff.Options
	registry     *render.Registry
	output       string
	charCap      int
	log          logging.Logger
	now          func() time.Time
}

func NewService(cfg ServiceConfig, registry *render.Registry) *Service {
	log := logging.New(cfg.Logger)
	if cfg.ResponseChar <= 0 {
		cfg.ResponseChar = 4800
	}
	if registry == nil {
		registry = render.NewRegistry(log)
	}
	return &Service{
		git:          cfg.Git,
		historyS:     cfg.History,
		analyzer:     diff.NewAnalyzer(cfg.Analyzer),
		analyzerOpts: cfg.Analyzer,
		registry:     registry,
		output:       cfg.OutputDir,
		charCap:      cfg.ResponseChar,
		log:          log.WithName("describe"),
		now:          time.Now,
	}
}

// Result of one generation. Document is the full rendered markdown;
// Truncated is the size-governed variant for narrow transports.
type Result struct {
	Document  string
	Truncated string
	Path      string // where the full document was written, empty if not persisted
	Analysis  diff.Analysis
	Branch    string
	Template  string
}

// Generate runs the whole pipeline. Only boundary validation and diff-source
// resolution return errors; pipeline stages degrade internally.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	diffText := req.Diff
	branch := ""
	if s.git != nil {
		if b, err := s.git.CurrentBranch(ctx); err == nil {
			branch = b
		}
	}
	if strings.TrimSpace(diffText) == "" {
		resolved, err := s.resolveDiff(ctx, req)
		if err != nil {
			return Result{}, err
		}
		diffText = resolved
	}

	analysis := s.analyzer.Analyze(diffText)

	templateName := req.Template
	if templateName == "" {
		templateName = autoTemplate(analysis.ChangeType)
	}
	tpl := s.registry.Get(templateName)

	doc := render.Render(tpl, render.Input{
		Title:       req.Title,
		Description: req.Description,
		Summary:     analysis.Summary,
		ChangeType:  string(analysis.ChangeType),
		Confidence:  analysis.Confidence,
		Breaking:    analysis.ChangeType == diff.ChangeBreaking,
		Screenshots: req.Screenshots,
		GeneratedAt: s.now(),
	})

	result := Result{
		Document:  doc,
		Truncated: render.Govern(doc, s.charCap),
		Analysis:  analysis,
		Branch:    branch,
		Template:  tpl.Name,
	}

	if s.output != "" {
		path, err := s.writeDocument(branch, doc)
		if err != nil {
			s.log.Error(err, "failed to persist document", "dir", s.output)
		} else {
			result.Path = path
		}
	}

	s.record(ctx, req, result)

	return result, nil
}

// Analyze exposes the rule-based diff analysis without rendering a document.
func (s *Service) Analyze(diffText string) diff.Analysis {
	return s.analyzer.Analyze(diffText)
}

// AnalyzeDetail runs the analysis at a specific detail level, overriding the
// configured default for this call only.
func (s *Service) AnalyzeDetail(diffText string, detail diff.DetailLevel) diff.Analysis {
	if detail == "" || detail == s.analyzerOpts.Detail {
		return s.analyzer.Analyze(diffText)
	}
	opts := s.analyzerOpts
	opts.Detail = detail
	return diff.NewAnalyzer(opts).Analyze(diffText)
}

// Templates lists the available templates.
func (s *Service) Templates() []render.Template {
	return s.registry.Names()
}

func (s *Service) resolveDiff(ctx context.Context, req Request) (string, error) {
	if s.git == nil {
		return "", ErrNoDiffSource
	}

	if req.Staged {
		staged, err := s.git.StagedDiff(ctx)
		if err != nil {
			return "", fmt.Errorf("read staged diff: %w", err)
		}
		return staged, nil
	}

	base := req.BaseBranch
	if base == "" {
		discovered, err := s.git.DefaultBaseBranch(ctx)
		if err != nil {
			s.log.Debug("base branch discovery failed, falling back to staged diff", "error", err.Error())
			staged, serr := s.git.StagedDiff(ctx)
			if serr != nil {
				return "", fmt.Errorf("read staged diff: %w", serr)
			}
			return staged, nil
		}
		base = discovered
	}

	out, err := s.git.RangeDiff(ctx, base, "HEAD")
	if err != nil {
		return "", fmt.Errorf("read diff against %s: %w", base, err)
	}
	return out, nil
}

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (s *Service) writeDocument(branch, doc string) (string, error) {
	if err := os.MkdirAll(s.output, 0o755); err != nil {
		return "", err
	}
	name := "PR_DESCRIPTION.md"
	if branch != "" {
		name = fmt.Sprintf("pr-%s.md", unsafePathChars.ReplaceAllString(branch, "-"))
	}
	path := filepath.Join(s.output, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) record(ctx context.Context, req Request, result Result) {
	if s.historyS == nil {
		return
	}
	gen := &history.Generation{
		Branch:     result.Branch,
		Title:      req.Title,
		ChangeType: string(result.Analysis.ChangeType),
		Confidence: result.Analysis.Confidence,
		Template:   result.Template,
		Document:   result.Document,
	}
	if req.PRNumber > 0 {
		n := req.PRNumber
		gen.PRNumber = &n
	}
	if err := s.historyS.Save(ctx, gen); err != nil {
		s.log.Error(err, "failed to record generation history")
	}
}

func autoTemplate(ct diff.ChangeType) string {
	switch ct {
	case diff.ChangeFeature:
		return "feature"
	case diff.ChangeBugfix, diff.ChangeHotfix:
		return "bugfix"
	case diff.ChangeRefactor:
		return "refactor"
	}
	return "default"
}
