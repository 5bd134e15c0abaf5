package diff

import (
	"fmt"
	"strings"
	"testing"
)

func stubTokenEstimate(t *testing.T) {
	t.Helper()
	old := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return len(text) / 4 }
	t.Cleanup(func() { estimateTokensFunc = old })
}

func composeFor(t *testing.T, res *ParseResult, opts ComposeOptions) string {
	t.Helper()
	stubTokenEstimate(t)
	var analyses []FileAnalysis
	for _, fc := range res.Files {
		analyses = append(analyses, AnalyzeFile(fc))
	}
	return ComposeSummary(res, analyses, buildExcludePatterns(), opts)
}

func TestComposeSummary_Empty(t *testing.T) {
	stubTokenEstimate(t)
	out := ComposeSummary(&ParseResult{}, nil, buildExcludePatterns(), ComposeOptions{})
	if out != "## Changes Summary\n\nNo changes detected.\n" {
		t.Fatalf("unexpected empty summary %q", out)
	}
}

func TestComposeSummary_EachFileAppearsOnce(t *testing.T) {
	res := resultWith(
		changed("internal/server.go", []string{"srv := New()"}, 2),
		changed("internal/client.go", []string{"cli := Dial()"}, 1),
	)
	out := composeFor(t, res, ComposeOptions{})

	for _, path := range []string{"internal/server.go", "internal/client.go"} {
		if n := strings.Count(out, "`"+path+"`"); n != 1 {
			t.Fatalf("path %s must appear exactly once, appeared %d times", path, n)
		}
	}
}

func TestComposeSummary_ExcludedPathsOutOfNarrativeButCounted(t *testing.T) {
	res := resultWith(
		changed("internal/server.go", []string{"srv := New()"}, 0),
		changed("package-lock.json", []string{`"lodash": "4.17.21"`}, 500),
	)
	out := composeFor(t, res, ComposeOptions{})

	if strings.Contains(out, "package-lock.json") {
		t.Fatalf("excluded path leaked into the narrative:\n%s", out)
	}
	if !strings.Contains(out, "### Modified Files (1)") {
		t.Fatalf("narrative count must exclude filtered files:\n%s", out)
	}
	if !strings.Contains(out, "- Files changed: 2") {
		t.Fatalf("statistics must count every file:\n%s", out)
	}
	if !strings.Contains(out, "- Lines removed: 500") {
		t.Fatalf("statistics must include excluded file lines:\n%s", out)
	}
}

func TestComposeSummary_NarrativeCap(t *testing.T) {
	var files []*FileChange
	for i := 0; i < 25; i++ {
		files = append(files, changed(fmt.Sprintf("pkg/file%02d.go", i), []string{"x := 1"}, 0))
	}
	out := composeFor(t, resultWith(files...), ComposeOptions{MaxNarrativeFiles: 20})

	if !strings.Contains(out, "...and 5 more files not shown") {
		t.Fatalf("expected overflow notice:\n%s", out)
	}
	if strings.Contains(out, "`pkg/file24.go`") {
		t.Fatalf("files past the cap must not be expanded")
	}
	if !strings.Contains(out, "`pkg/file19.go`") {
		t.Fatalf("files inside the cap must be expanded")
	}
}

func TestComposeSummary_ExampleLinesCleaned(t *testing.T) {
	res := resultWith(changed("internal/handler.go", []string{
		"result  :=   compute(a,   b);",
		"second example line",
		"third line never shown",
	}, 0))
	out := composeFor(t, res, ComposeOptions{})

	if !strings.Contains(out, "e.g. `result := compute(a, b)`") {
		t.Fatalf("example must be whitespace-normalized with the semicolon stripped:\n%s", out)
	}
	if !strings.Contains(out, "e.g. `second example line`") {
		t.Fatalf("second example missing:\n%s", out)
	}
	if strings.Contains(out, "third line never shown") {
		t.Fatalf("at most two examples per file")
	}
}

func TestComposeSummary_CredentialLinesWithheld(t *testing.T) {
	res := resultWith(changed("internal/auth.go", []string{
		`password = "hunter2-super-secret"`,
		"safe line of ordinary code",
	}, 0))
	out := composeFor(t, res, ComposeOptions{})

	if strings.Contains(out, "hunter2-super-secret") {
		t.Fatalf("credential value leaked into the summary:\n%s", out)
	}
	if !strings.Contains(out, "e.g. `safe line of ordinary code`") {
		t.Fatalf("non-credential example should still appear:\n%s", out)
	}
}

func TestComposeSummary_Statistics(t *testing.T) {
	res := resultWith(changed("internal/service.go", []string{
		"func NewService() *Service {",
		"type Service struct {",
	}, 1))
	out := composeFor(t, res, ComposeOptions{})

	for _, want := range []string{
		"- Files changed: 1",
		"- Lines added: 2",
		"- Lines removed: 1",
		"- Functions touched: 1",
		"- Type declarations touched: 1",
		"- Estimated tokens:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("statistics missing %q:\n%s", want, out)
		}
	}
}

func TestComposeSummary_ExtendedDetailShowsHunks(t *testing.T) {
	fc := changed("internal/server.go", []string{"x := 1"}, 0)
	fc.Hunks = []string{"func (s *Server) Run() error {", "func (s *Server) Close() {"}
	out := composeFor(t, resultWith(fc), ComposeOptions{Detail: DetailExtended})

	if !strings.Contains(out, "sections: func (s *Server) Run() error {; func (s *Server) Close() {") {
		t.Fatalf("extended detail must list hunk sections:\n%s", out)
	}
}

func TestComposeSummary_SecurityDetail(t *testing.T) {
	res := resultWith(
		changed("internal/auth.go", []string{`token = "abcdef123456"`, "validate the oauth token"}, 0),
		changed("internal/util.go", []string{"plain helper code"}, 0),
	)
	out := composeFor(t, res, ComposeOptions{Detail: DetailSecurity})

	if !strings.Contains(out, "### Security Review") {
		t.Fatalf("security detail must add the review section:\n%s", out)
	}
	if !strings.Contains(out, "`internal/auth.go`: security-sensitive keywords present; 1 credential-like line(s) withheld") {
		t.Fatalf("credential withholding must be reported:\n%s", out)
	}
	if strings.Contains(out, "`internal/util.go`: security") {
		t.Fatalf("files without security keywords must not be listed")
	}
}

func TestComposeSummary_TruncationNote(t *testing.T) {
	res := resultWith(changed("main.go", []string{"x := 1"}, 0))
	res.InputTruncated = true
	out := composeFor(t, res, ComposeOptions{})

	if !strings.Contains(out, "splitting your changes into smaller commits") {
		t.Fatalf("truncated input must be surfaced in the summary:\n%s", out)
	}
}
