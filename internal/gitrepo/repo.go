package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

type RepoConfig struct {
	Path   string
	Remote string // default: origin
}

type Repo struct {
	cfg    RepoConfig
	runner Runner
}

func New(cfg RepoConfig) *Repo {
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	if cfg.Path == "" {
		cfg.Path = "."
	}
	return &Repo{cfg: cfg, runner: Runner{Timeout: 2 * time.Minute}}
}

type Runner struct {
	Timeout time.Duration
}

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Start(); err != nil {
		return "", formatGitError(args, err, stderr.String())
	}
	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return "", formatGitError(args, err, stderr.String())
		}
		return stdout.String(), nil
	case <-time.After(r.Timeout):
		_ = c.Process.Kill()
		<-done
		return "", formatGitTimeoutError(args, r.Timeout, stderr.String())
	case <-ctx.Done():
		_ = c.Process.Kill()
		<-done
		return "", formatGitContextError(args, ctx.Err(), stderr.String())
	}
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}

func formatGitTimeoutError(args []string, timeout time.Duration, stderr string) error {
	return formatGitError(args, fmt.Errorf("command timed out after %s", timeout), stderr)
}

func formatGitContextError(args []string, cause error, stderr string) error {
	if cause == nil {
		cause = errors.New("context canceled")
	}
	return formatGitError(args, cause, stderr)
}

// Run is a helper to execute arbitrary git subcommands in the repo path.
func (r *Repo) Run(ctx context.Context, args ...string) (string, error) {
	return r.runner.Git(ctx, r.cfg.Path, args...)
}

// StagedDiff returns the unified diff of the index against HEAD.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	return r.Run(ctx, "diff", "--cached", "--no-color", "--no-ext-diff", "--find-renames")
}

// UnstagedDiff returns the unified diff of the working tree against the index.
func (r *Repo) UnstagedDiff(ctx context.Context) (string, error) {
	return r.Run(ctx, "diff", "--no-color", "--no-ext-diff", "--find-renames")
}

// RangeDiff returns the unified diff for base..head.
func (r *Repo) RangeDiff(ctx context.Context, base, head string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("base ref is required")
	}
	if head == "" {
		head = "HEAD"
	}
	rangeSpec := fmt.Sprintf("%s..%s", base, head)
	return r.Run(ctx, "diff", "--no-color", "--no-ext-diff", "--find-renames", rangeSpec)
}

// CurrentBranch returns the checked-out branch name, or an empty string on a
// detached HEAD.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", nil
	}
	return branch, nil
}

// DefaultBaseBranch resolves the remote's default branch, falling back to
// main/master probes when origin/HEAD is not recorded locally.
func (r *Repo) DefaultBaseBranch(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "symbolic-ref", "--short", fmt.Sprintf("refs/remotes/%s/HEAD", r.cfg.Remote))
	if err == nil {
		ref := strings.TrimSpace(out)
		if ref != "" {
			return strings.TrimPrefix(ref, r.cfg.Remote+"/"), nil
		}
	}
	for _, candidate := range []string{"main", "master"} {
		if _, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not determine default base branch")
}

// CommitMessages returns the subject lines for base..head, newest first.
func (r *Repo) CommitMessages(ctx context.Context, base, head string) ([]string, error) {
	if head == "" {
		head = "HEAD"
	}
	args := []string{"log", "--pretty=format:%s", head}
	if base != "" {
		args = []string{"log", "--pretty=format:%s", fmt.Sprintf("%s..%s", base, head)}
	}
	out, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	var messages []string
	for _, l := range strings.Split(out, "\n") {
		if strings.TrimSpace(l) != "" {
			messages = append(messages, strings.TrimSpace(l))
		}
	}
	return messages, nil
}

// StatusFiles returns porcelain status lines for the working tree.
func (r *Repo) StatusFiles(ctx context.Context) ([]string, error) {
	out, err := r.Run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// RemoteURL returns the fetch URL of the configured remote.
func (r *Repo) RemoteURL(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "remote", "get-url", r.cfg.Remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HeadSHA returns the current HEAD commit SHA.
func (r *Repo) HeadSHA(ctx context.Context) (string, error) {
	out, err := r.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
