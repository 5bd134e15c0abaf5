package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prscribe/prscribe/internal/history"
)

type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Generation, error)
	LatestForBranch(ctx context.Context, branch string) (*history.Generation, error)
	Count(ctx context.Context) (int, error)
}

type GetHistoryHandler struct {
	Repo HistoryReader
}

func (h *GetHistoryHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	if branch, _ := args["branch"].(string); branch != "" {
		gen, err := h.Repo.LatestForBranch(ctx, branch)
		if err != nil {
			return nil, err
		}
		if gen == nil {
			return mcp.NewToolResultError("no generations recorded for branch " + branch), nil
		}
		return mcp.NewToolResultText(string(mustMarshal(gen))), nil
	}

	limit := 10
	if rawLimit, ok := args["limit"].(float64); ok {
		if parsed := int(rawLimit); parsed > 0 {
			limit = parsed
		}
	}
	entries, err := h.Repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	total, err := h.Repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	response := struct {
		Total       int                  `json:"total"`
		Generations []history.Generation `json:"generations"`
	}{Total: total, Generations: entries}
	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}
