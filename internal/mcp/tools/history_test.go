package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prscribe/prscribe/internal/history"
)

type stubHistoryReader struct {
	lastLimit  int
	lastBranch string
	entries    []history.Generation
	latest     *history.Generation
	count      int
	err        error
}

func (s *stubHistoryReader) Recent(ctx context.Context, limit int) ([]history.Generation, error) {
	s.lastLimit = limit
	return s.entries, s.err
}

func (s *stubHistoryReader) LatestForBranch(ctx context.Context, branch string) (*history.Generation, error) {
	s.lastBranch = branch
	return s.latest, s.err
}

func (s *stubHistoryReader) Count(ctx context.Context) (int, error) {
	return s.count, s.err
}

func TestGetHistory_DefaultLimit(t *testing.T) {
	reader := &stubHistoryReader{}
	h := &GetHistoryHandler{Repo: reader}

	if _, err := h.ToolAdapter(context.Background(), callReq(nil)); err != nil {
		t.Fatalf("ToolAdapter: %v", err)
	}
	if reader.lastLimit != 10 {
		t.Fatalf("expected default limit 10, got %d", reader.lastLimit)
	}
}

func TestGetHistory_ExplicitLimit(t *testing.T) {
	reader := &stubHistoryReader{
		entries: []history.Generation{
			{Branch: "feat/x", Title: "Add x", ChangeType: "feature", CreatedAt: time.Now()},
		},
		count: 12,
	}
	h := &GetHistoryHandler{Repo: reader}

	result, err := h.ToolAdapter(context.Background(), callReq(map[string]any{"limit": float64(3)}))
	if err != nil {
		t.Fatalf("ToolAdapter: %v", err)
	}
	if reader.lastLimit != 3 {
		t.Fatalf("expected limit 3, got %d", reader.lastLimit)
	}

	var decoded struct {
		Total       int                  `json:"total"`
		Generations []history.Generation `json:"generations"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &decoded); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if decoded.Total != 12 {
		t.Fatalf("expected total 12, got %d", decoded.Total)
	}
	if len(decoded.Generations) != 1 || decoded.Generations[0].Branch != "feat/x" {
		t.Fatalf("unexpected entries: %+v", decoded.Generations)
	}
}

func TestGetHistory_ByBranch(t *testing.T) {
	reader := &stubHistoryReader{latest: &history.Generation{
		Branch: "feat/x", Title: "Add x", Document: "# Add x\n",
	}}
	h := &GetHistoryHandler{Repo: reader}

	result, err := h.ToolAdapter(context.Background(), callReq(map[string]any{"branch": "feat/x"}))
	if err != nil {
		t.Fatalf("ToolAdapter: %v", err)
	}
	if reader.lastBranch != "feat/x" {
		t.Fatalf("branch not forwarded, got %q", reader.lastBranch)
	}

	var decoded history.Generation
	if err := json.Unmarshal([]byte(resultText(t, result)), &decoded); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if decoded.Document != "# Add x\n" {
		t.Fatalf("branch lookup must return the full document: %+v", decoded)
	}
}

func TestGetHistory_UnknownBranch(t *testing.T) {
	h := &GetHistoryHandler{Repo: &stubHistoryReader{}}

	result, err := h.ToolAdapter(context.Background(), callReq(map[string]any{"branch": "missing"}))
	if err != nil {
		t.Fatalf("ToolAdapter: %v", err)
	}
	if !result.IsError {
		t.Fatalf("unknown branch must yield an error result")
	}
}

func TestGetHistory_StoreError(t *testing.T) {
	h := &GetHistoryHandler{Repo: &stubHistoryReader{err: errors.New("db down")}}
	if _, err := h.ToolAdapter(context.Background(), callReq(nil)); err == nil {
		t.Fatalf("store failure must propagate")
	}
}
