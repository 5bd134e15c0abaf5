package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prscribe/prscribe/internal/render"
)

type TemplateService interface {
	Templates() []render.Template
}

type GetTemplatesHandler struct {
	Service TemplateService
}

func (h *GetTemplatesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var entries []entry
	for _, tpl := range h.Service.Templates() {
		entries = append(entries, entry{Name: tpl.Name, Description: tpl.Description})
	}
	return mcp.NewToolResultText(string(mustMarshal(entries))), nil
}
