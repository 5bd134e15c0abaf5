package diff

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/prscribe/prscribe/internal/logging"
)

func newTestParser(cfg ParserConfig) *Parser {
	return NewParser(cfg, logging.New(logr.Discard()))
}

const twoFileDiff = `diff --git a/cmd/main.go b/cmd/main.go
index 123..456 100644
--- a/cmd/main.go
+++ b/cmd/main.go
@@ -1,3 +1,4 @@ func main() {
 import "fmt"
+var count int
-var total int
diff --git a/README.md b/README.md
index 789..abc 100644
--- a/README.md
+++ b/README.md
@@ -1 +1,2 @@
 # Title
+New paragraph.
`

func TestParse_Empty(t *testing.T) {
	res := newTestParser(ParserConfig{}).Parse("   \n  ")
	if res.TotalFiles() != 0 || res.TotalAdded != 0 || res.TotalRemoved != 0 {
		t.Fatalf("empty diff must produce an empty result, got %+v", res)
	}
	if res.InputTruncated {
		t.Fatalf("empty diff must not be marked truncated")
	}
}

func TestParse_OrderAndCounts(t *testing.T) {
	res := newTestParser(ParserConfig{}).Parse(twoFileDiff)

	if res.TotalFiles() != 2 {
		t.Fatalf("expected 2 files, got %d", res.TotalFiles())
	}
	if res.Files[0].Path != "cmd/main.go" || res.Files[1].Path != "README.md" {
		t.Fatalf("files out of order: %s, %s", res.Files[0].Path, res.Files[1].Path)
	}
	if res.TotalAdded != 2 || res.TotalRemoved != 1 {
		t.Fatalf("unexpected totals +%d/-%d", res.TotalAdded, res.TotalRemoved)
	}

	main := res.File("cmd/main.go")
	if main == nil {
		t.Fatalf("cmd/main.go missing from index")
	}
	if len(main.Added) != 1 || main.Added[0] != "var count int" {
		t.Fatalf("unexpected added lines %v", main.Added)
	}
	if len(main.Removed) != 1 || main.Removed[0] != "var total int" {
		t.Fatalf("unexpected removed lines %v", main.Removed)
	}
	if len(main.Hunks) != 1 || main.Hunks[0] != "func main() {" {
		t.Fatalf("unexpected hunks %v", main.Hunks)
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := newTestParser(ParserConfig{})
	first := p.Parse(twoFileDiff)
	second := p.Parse(twoFileDiff)
	if first.TotalAdded != second.TotalAdded || first.TotalRemoved != second.TotalRemoved ||
		first.TotalFiles() != second.TotalFiles() {
		t.Fatalf("repeated parses disagree: %+v vs %+v", first, second)
	}
}

func TestParse_NoiseLineCountedButNotRetained(t *testing.T) {
	long := "+" + strings.Repeat("x", maxLineLength+1)
	diff := "diff --git a/app.min.js b/app.min.js\n" + long + "\n+short line here\n"

	res := newTestParser(ParserConfig{}).Parse(diff)
	fc := res.File("app.min.js")
	if fc == nil {
		t.Fatalf("file missing")
	}
	if fc.AddedTotal != 2 {
		t.Fatalf("noise line must still count in totals, got %d", fc.AddedTotal)
	}
	if len(fc.Added) != 1 || fc.Added[0] != "short line here" {
		t.Fatalf("noise line must not be retained, got %v", fc.Added)
	}
}

func TestParse_PerFileCapIsExact(t *testing.T) {
	var b strings.Builder
	b.WriteString("diff --git a/big.go b/big.go\n")
	for i := 0; i < 5; i++ {
		b.WriteString("+line number ")
		b.WriteByte(byte('a' + i))
		b.WriteString("\n")
	}

	res := newTestParser(ParserConfig{MaxLinesPerFile: 3}).Parse(b.String())
	fc := res.File("big.go")
	if len(fc.Added) != 3 {
		t.Fatalf("expected exactly 3 retained lines, got %d", len(fc.Added))
	}
	if fc.AddedTotal != 5 || res.TotalAdded != 5 {
		t.Fatalf("totals must count past the cap, got file=%d diff=%d", fc.AddedTotal, res.TotalAdded)
	}
}

func TestParse_BinarySectionSkipped(t *testing.T) {
	diff := `diff --git a/logo.png b/logo.png
Binary files a/logo.png and b/logo.png differ
+not really an addition
diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1 +1,2 @@
+real addition
`
	res := newTestParser(ParserConfig{}).Parse(diff)
	if res.TotalFiles() != 2 {
		t.Fatalf("expected 2 files, got %d", res.TotalFiles())
	}
	bin := res.File("logo.png")
	if !bin.Binary {
		t.Fatalf("binary file not flagged")
	}
	if bin.AddedTotal != 0 {
		t.Fatalf("binary section content must be skipped, counted %d", bin.AddedTotal)
	}
	if res.File("main.go").AddedTotal != 1 {
		t.Fatalf("parsing must resume after the binary section")
	}
}

func TestParse_MalformedLinesTolerated(t *testing.T) {
	diff := "garbage before any header\n" +
		"diff --git not a valid header\n" +
		"+orphan addition before any file\n" +
		"diff --git a/ok.go b/ok.go\n" +
		"+kept := true\n"

	res := newTestParser(ParserConfig{}).Parse(diff)
	if res.TotalFiles() != 1 {
		t.Fatalf("expected 1 file, got %d", res.TotalFiles())
	}
	fc := res.File("ok.go")
	if len(fc.Added) != 1 || fc.Added[0] != "kept := true" {
		t.Fatalf("unexpected added lines %v", fc.Added)
	}
}

func TestParse_OversizedInputTruncatedAtBoundary(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("diff --git a/file.go b/file.go\n")
		b.WriteString("+some added content line\n")
	}
	diff := b.String()

	res := newTestParser(ParserConfig{MaxInputBytes: len(diff) / 2}).Parse(diff)
	if !res.InputTruncated {
		t.Fatalf("oversized input must be marked truncated")
	}
	if res.TotalFiles() == 0 || res.TotalAdded == 0 {
		t.Fatalf("truncated diff must still parse, got %d files", res.TotalFiles())
	}
}

func TestTruncateAtBoundary_HardLimit(t *testing.T) {
	text := strings.Repeat("diff --git a/f b/f\n+x\n", 100)
	out := truncateAtBoundary(text, 200)
	if len(out) > 200 {
		t.Fatalf("truncation exceeded limit: %d bytes", len(out))
	}
	if out == "" {
		t.Fatalf("truncation must keep a prefix")
	}
}
