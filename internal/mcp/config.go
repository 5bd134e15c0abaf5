package mcp

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/prscribe/prscribe/internal/config"
	"github.com/prscribe/prscribe/internal/describe"
	"github.com/prscribe/prscribe/internal/diff"
	"github.com/prscribe/prscribe/internal/gitrepo"
	"github.com/prscribe/prscribe/internal/history"
	histmigrate "github.com/prscribe/prscribe/internal/history/migrate"
	"github.com/prscribe/prscribe/internal/logging"
	"github.com/prscribe/prscribe/internal/mcp/tools"
	"github.com/prscribe/prscribe/internal/render"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Close        func()
}

func DefaultConfig() Config {
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

	var historyRepo *history.Repository
	var closeFn func()
	if config.HistoryEnabled() && config.PostgresURL() != "" {
		database, err := history.NewDatabase(history.Config{DSN: config.PostgresURL()})
		if err != nil {
			log.Fatalf("failed to connect history database: %v", err)
		}
		if err := histmigrate.EnsureCurrent(context.Background(), database.Bun(), "", config.AutoMigrate()); err != nil {
			log.Fatalf("history database schema check failed: %v", err)
		}
		historyRepo = history.NewRepository(database)
		closeFn = func() {
			if err := database.Close(); err != nil {
				lg.Error(err, "error closing history database")
			}
		}
	}

	svcCfg := describe.ServiceConfig{
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
	}
	if historyRepo != nil {
		svcCfg.History = historyRepo
	}
	service := describe.NewService(svcCfg, registry)

	adapters := map[string]ToolAdapter{
		"generate_pr_description": &tools.GeneratePRHandler{Service: service},
		"analyze_diff":            &tools.AnalyzeDiffHandler{Service: service},
		"get_templates":           &tools.GetTemplatesHandler{Service: service},
		"generate_from_pr": &tools.GenerateFromPRHandler{
			Service: service,
			Repo:    repo,
			Token:   config.GitHubToken(),
			Log:     lg.WithName("generate_from_pr"),
		},
	}
	if historyRepo != nil {
		adapters["get_generation_history"] = &tools.GetHistoryHandler{Repo: historyRepo}
	}

	return Config{
		ToolAdapters: adapters,
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Close: closeFn,
	}
}
