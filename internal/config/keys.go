package config

const (
	KeyLogLevel          = "log_level"
	KeyRepoPath          = "repo_path"
	KeyOutputDir         = "output_dir"
	KeyTemplatesFile     = "templates_file"
	KeyGitHubToken       = "github_token"
	KeyGitRemote         = "git_remote"
	KeyHistoryEnabled    = "history_enabled"
	KeyPostgresURL       = "postgres_url"
	KeyAutoMigrate       = "auto_migrate"
	KeyMaxDiffBytes      = "max_diff_bytes"
	KeyMaxLinesPerFile   = "max_lines_per_file"
	KeyMaxNarrativeFiles = "max_narrative_files"
	KeyResponseCharLimit = "response_char_limit"
	KeyDetailLevel       = "detail_level"
)
