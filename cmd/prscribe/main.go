package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prscribe/prscribe/internal/config"
	"github.com/prscribe/prscribe/internal/describe"
	"github.com/prscribe/prscribe/internal/diff"
	"github.com/prscribe/prscribe/internal/gitrepo"
	"github.com/prscribe/prscribe/internal/ingestion"
	"github.com/prscribe/prscribe/internal/logging"
	"github.com/prscribe/prscribe/internal/render"
)

var rootCmd = &cobra.Command{
	Use:   "prscribe",
	Short: "Generate PR descriptions from git diffs",
}

var generateCmd = &cobra.Command{
	Use:           "generate",
	Short:         "Generate a PR description for the current repository",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		template, _ := cmd.Flags().GetString("template")
		base, _ := cmd.Flags().GetString("base")
		staged, _ := cmd.Flags().GetBool("staged")
		prNumber, _ := cmd.Flags().GetInt("pr")
		diffFile, _ := cmd.Flags().GetString("diff-file")

		service, repo := newService()
		ctx := cmd.Context()

		req := describe.Request{
			Title:       title,
			Description: description,
			Template:    template,
			BaseBranch:  base,
			Staged:      staged,
		}

		if diffFile != "" {
			data, err := os.ReadFile(diffFile)
			if err != nil {
				return err
			}
			req.Diff = string(data)
		}

		if prNumber > 0 {
			if err := fillFromPR(ctx, repo, prNumber, &req); err != nil {
				return err
			}
		} else {
			fillFromCommits(ctx, repo, &req)
			if !staged {
				if status, err := repo.StatusFiles(ctx); err == nil && len(status) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "note: %d uncommitted change(s) will not be part of the branch diff\n", len(status))
				}
			}
		}

		result, err := service.Generate(ctx, req)
		if err != nil {
			return err
		}

		if sha, err := repo.HeadSHA(ctx); err == nil && result.Branch != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "generated for %s@%.12s\n", result.Branch, sha)
		}
		if result.Path != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", result.Path)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Document)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:           "analyze [diff-file]",
	Short:         "Analyze a diff and print the structured result as JSON",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, _ := cmd.Flags().GetString("detail")

		var diffText string
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			diffText = string(data)
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			diffText = string(data)
		}

		service, repo := newService()
		if strings.TrimSpace(diffText) == "" {
			// No diff supplied, fall back to the working tree.
			staged, err := repo.StagedDiff(cmd.Context())
			if err != nil {
				return err
			}
			diffText = staged
			if strings.TrimSpace(diffText) == "" {
				unstaged, err := repo.UnstagedDiff(cmd.Context())
				if err != nil {
					return err
				}
				diffText = unstaged
			}
		}

		analysis := service.AnalyzeDetail(diffText, diff.DetailLevel(detail))
		out, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available description templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		service, _ := newService()
		for _, tpl := range service.Templates() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tpl.Name, tpl.Description)
		}
		return nil
	},
}

func newService() (*describe.Service, *gitrepo.Repo) {
	baseLogger := logging.AtLevel(config.LogLevel())
	lg := logging.New(baseLogger)

	repo := gitrepo.New(gitrepo.RepoConfig{
		Path:   config.RepoPath(),
		Remote: config.GitRemote(),
	})

	registry := render.NewRegistry(lg)
	if path := config.TemplatesFile(); path != "" {
		if err := registry.LoadFile(path); err != nil {
			lg.Error(err, "failed to load user templates, using built-ins", "path", path)
		}
	}

	svc := describe.NewService(describe.ServiceConfig{
		Git: repo,
		Analyzer: diff.Options{
			Parser: diff.ParserConfig{
				MaxLinesPerFile: config.MaxLinesPerFile(),
				MaxInputBytes:   config.MaxDiffBytes(),
			},
			MaxNarrativeFiles: config.MaxNarrativeFiles(),
			Detail:            diff.DetailLevel(config.DetailLevel()),
			Logger:            baseLogger,
		},
		OutputDir:    config.OutputDir(),
		ResponseChar: config.ResponseCharLimit(),
		Logger:       baseLogger,
	}, registry)
	return svc, repo
}

// fillFromCommits derives a missing title and description from the commit
// messages between the base branch and HEAD.
func fillFromCommits(ctx context.Context, repo *gitrepo.Repo, req *describe.Request) {
	if req.Title != "" && req.Description != "" {
		return
	}
	base := req.BaseBranch
	if base == "" {
		if discovered, err := repo.DefaultBaseBranch(ctx); err == nil {
			base = discovered
		}
	}
	messages, err := repo.CommitMessages(ctx, base, "HEAD")
	if err != nil || len(messages) == 0 {
		return
	}
	if req.Title == "" {
		req.Title = messages[0]
	}
	if req.Description == "" {
		var b strings.Builder
		for _, m := range messages {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		req.Description = b.String()
	}
}

func fillFromPR(ctx context.Context, repo *gitrepo.Repo, number int, req *describe.Request) error {
	remote, err := repo.RemoteURL(ctx)
	if err != nil {
		return err
	}
	owner, name, err := ingestion.ParseRemote(remote)
	if err != nil {
		return err
	}
	fetcher := ingestion.NewPRFetcher(ingestion.NewGitHubClient(config.GitHubToken()), owner, name)

	info, err := fetcher.FetchPR(ctx, number)
	if err != nil {
		return err
	}
	prDiff, err := fetcher.FetchPRDiff(ctx, number)
	if err != nil {
		return err
	}

	if req.Title == "" {
		req.Title = info.Title
	}
	if req.Description == "" {
		req.Description = info.Body
	}
	if req.Description == "" {
		req.Description = fmt.Sprintf("Changes proposed in pull request #%d.", number)
	}
	req.Diff = prDiff
	req.PRNumber = number
	return nil
}

func main() {
	config.Init(rootCmd)

	generateCmd.Flags().String("title", "", "Pull request title")
	generateCmd.Flags().String("description", "", "Short summary of the intent of the change")
	generateCmd.Flags().String("template", "", "Template name (default: auto-selected)")
	generateCmd.Flags().String("base", "", "Base branch for the diff range")
	generateCmd.Flags().Bool("staged", false, "Use the staged diff instead of a branch range")
	generateCmd.Flags().Int("pr", 0, "Fetch title, body and diff from an existing pull request")
	generateCmd.Flags().String("diff-file", "", "Read the diff from a file instead of git")

	analyzeCmd.Flags().String("detail", "basic", "Detail level: basic, extended or security")

	rootCmd.AddCommand(generateCmd, analyzeCmd, templatesCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("prscribe: %v", err)
	}
}
