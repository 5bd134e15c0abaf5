package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"prscribe",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"generate_pr_description": mcp.NewTool("generate_pr_description",
			mcp.WithDescription("Generate a pull request description from the local git diff (or a supplied diff), classified by deterministic heuristics and rendered from a markdown template. Returns the description, size-limited for this transport; the full document is written to disk."),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Pull request title"),
			),
			mcp.WithString("description",
				mcp.Required(),
				mcp.Description("Short human-written summary of the intent of the change"),
			),
			mcp.WithString("diff",
				mcp.Description("Unified diff text. When omitted, the diff is read from the local repository (branch range or staged changes)."),
			),
			mcp.WithString("template",
				mcp.Description("Template name: default, feature, bugfix or refactor. Auto-selected from the detected change type when omitted."),
			),
			mcp.WithString("options",
				mcp.Description(`Optional JSON object: {"staged": bool, "base_branch": string, "screenshots": [url...]}`),
			),
		),
		"analyze_diff": mcp.NewTool("analyze_diff",
			mcp.WithDescription("Run the rule-based diff analysis without rendering a document. Returns change type, confidence, per-file assessments and aspect paragraphs as JSON."),
			mcp.WithString("diff",
				mcp.Required(),
				mcp.Description("Unified diff text to analyze"),
			),
			mcp.WithString("detail",
				mcp.Description("Detail level: basic, extended or security (default: basic)"),
			),
		),
		"generate_from_pr": mcp.NewTool("generate_from_pr",
			mcp.WithDescription("Regenerate a description for an existing GitHub pull request. Fetches the PR metadata and diff from the repository's origin remote."),
			mcp.WithNumber("pr_number",
				mcp.Required(),
				mcp.Description("The pull request number (e.g. 1234)"),
			),
			mcp.WithString("template",
				mcp.Description("Template name override"),
			),
		),
		"get_templates": mcp.NewTool("get_templates",
			mcp.WithDescription("List the available PR description templates with their descriptions."),
		),
		"get_generation_history": mcp.NewTool("get_generation_history",
			mcp.WithDescription("List recent PR description generations recorded in the history store."),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of entries to return (default: 10)"),
			),
			mcp.WithString("branch",
				mcp.Description("Return only the latest generation for this branch, including its full document"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
