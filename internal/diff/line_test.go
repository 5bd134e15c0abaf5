package diff

import "testing"

func TestClassifyLine_FileHeader(t *testing.T) {
	line := ClassifyLine("diff --git a/internal/server.go b/internal/server.go")
	if line.Kind != LineFileHeader {
		t.Fatalf("expected file header, got %v", line.Kind)
	}
	if line.Path != "internal/server.go" {
		t.Fatalf("unexpected path %q", line.Path)
	}
}

func TestClassifyLine_MalformedHeaderKeepsContext(t *testing.T) {
	line := ClassifyLine("diff --git mangled header")
	if line.Kind != LineOther {
		t.Fatalf("malformed header must classify as Other, got %v", line.Kind)
	}
}

func TestClassifyLine_HunkHeaderStripsRange(t *testing.T) {
	line := ClassifyLine("@@ -10,4 +10,8 @@ func (s *Server) Run() error {")
	if line.Kind != LineHunkHeader {
		t.Fatalf("expected hunk header, got %v", line.Kind)
	}
	if line.Content != "func (s *Server) Run() error {" {
		t.Fatalf("unexpected hunk label %q", line.Content)
	}
}

func TestClassifyLine_AdditionAndDeletion(t *testing.T) {
	add := ClassifyLine("+\tcount := 0")
	if add.Kind != LineAddition || add.Content != "count := 0" {
		t.Fatalf("unexpected addition %+v", add)
	}
	del := ClassifyLine("-count := 1")
	if del.Kind != LineDeletion || del.Content != "count := 1" {
		t.Fatalf("unexpected deletion %+v", del)
	}
}

func TestClassifyLine_FileMarkersAreNotChanges(t *testing.T) {
	if got := ClassifyLine("+++ b/main.go"); got.Kind == LineAddition {
		t.Fatalf("+++ marker must not count as an addition")
	}
	if got := ClassifyLine("--- a/main.go"); got.Kind == LineDeletion {
		t.Fatalf("--- marker must not count as a deletion")
	}
}

func TestClassifyLine_Context(t *testing.T) {
	if got := ClassifyLine(" unchanged line"); got.Kind != LineContext {
		t.Fatalf("expected context, got %v", got.Kind)
	}
	if got := ClassifyLine("index 123..456 100644"); got.Kind != LineContext {
		t.Fatalf("expected context, got %v", got.Kind)
	}
}
