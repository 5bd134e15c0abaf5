package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"github.com/prscribe/prscribe/internal/describe"
)

// GenerateService is the describe-pipeline surface the MCP handlers use.
type GenerateService interface {
	Generate(ctx context.Context, req describe.Request) (describe.Result, error)
}

type GeneratePRHandler struct {
	Service GenerateService
}

func (h *GeneratePRHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	title, _ := args["title"].(string)
	description, _ := args["description"].(string)
	diffText, _ := args["diff"].(string)
	template, _ := args["template"].(string)

	genReq := describe.Request{
		Title:       title,
		Description: description,
		Diff:        diffText,
		Template:    template,
	}
	applyOptions(&genReq, args["options"])

	result, err := h.Service.Generate(ctx, genReq)
	if err != nil {
		if isValidationError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// Internal failures degrade to a minimal valid document rather than
		// propagating past the tool boundary.
		return mcp.NewToolResultText(fallbackDocument(title, description, err)), nil
	}

	return mcp.NewToolResultText(result.Truncated), nil
}

// applyOptions reads the loosely-structured options JSON argument. Unknown or
// malformed options are ignored rather than rejected.
func applyOptions(req *describe.Request, raw any) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return
	}
	opts := gjson.Parse(s)
	if v := opts.Get("staged"); v.Exists() {
		req.Staged = v.Bool()
	}
	if v := opts.Get("base_branch"); v.Exists() {
		req.BaseBranch = v.String()
	}
	for _, v := range opts.Get("screenshots").Array() {
		if url := v.String(); url != "" {
			req.Screenshots = append(req.Screenshots, url)
		}
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, describe.ErrMissingTitle) ||
		errors.Is(err, describe.ErrMissingDescription) ||
		errors.Is(err, describe.ErrDescriptionTooLong) ||
		errors.Is(err, describe.ErrNoDiffSource)
}

func fallbackDocument(title, description string, cause error) string {
	return fmt.Sprintf(`# %s

## Overview

%s

## Description

The diff could not be analyzed (%v). Please review the changes manually.
`, title, description, cause)
}
