package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prscribe/prscribe/internal/diff"
)

type AnalyzeService interface {
	AnalyzeDetail(diffText string, detail diff.DetailLevel) diff.Analysis
}

type AnalyzeDiffHandler struct {
	Service AnalyzeService
}

func (h *AnalyzeDiffHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	diffText, _ := args["diff"].(string)
	if diffText == "" {
		return mcp.NewToolResultError("diff parameter is required"), nil
	}
	detail, _ := args["detail"].(string)

	analysis := h.Service.AnalyzeDetail(diffText, diff.DetailLevel(detail))
	return mcp.NewToolResultText(string(mustMarshal(analysis))), nil
}
