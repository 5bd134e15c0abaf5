package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/prscribe/prscribe/internal/describe"
	"github.com/prscribe/prscribe/internal/gitrepo"
	"github.com/prscribe/prscribe/internal/ingestion"
	"github.com/prscribe/prscribe/internal/logging"
)

type GenerateFromPRHandler struct {
	Service GenerateService
	Repo    *gitrepo.Repo
	Token   string
	Log     logging.Logger
}

func (h *GenerateFromPRHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	number, err := parseIntArgument(args["pr_number"], "pr_number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	template, _ := args["template"].(string)

	remoteURL, err := h.Repo.RemoteURL(ctx)
	if err != nil {
		return mcp.NewToolResultError("could not resolve the repository remote: " + err.Error()), nil
	}
	owner, repoName, err := ingestion.ParseRemote(remoteURL)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fetcher := ingestion.NewPRFetcher(ingestion.NewGitHubClient(h.Token), owner, repoName)
	info, err := fetcher.FetchPR(ctx, number)
	if err != nil {
		h.Log.Error(err, "PR metadata fetch failed", "pr", number)
		return mcp.NewToolResultError(err.Error()), nil
	}
	diffText, err := fetcher.FetchPRDiff(ctx, number)
	if err != nil {
		h.Log.Error(err, "PR diff fetch failed", "pr", number)
		return mcp.NewToolResultError(err.Error()), nil
	}

	description := info.Body
	if description == "" {
		description = "Regenerated description for an existing pull request."
	}

	result, err := h.Service.Generate(ctx, describe.Request{
		Title:       info.Title,
		Description: description,
		Diff:        diffText,
		Template:    template,
		PRNumber:    number,
	})
	if err != nil {
		if isValidationError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fallbackDocument(info.Title, description, err)), nil
	}

	return mcp.NewToolResultText(result.Truncated), nil
}
