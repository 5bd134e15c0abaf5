package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// ParseRemote derives owner and repository name from a git remote URL
// (https or ssh form).
func ParseRemote(remoteURL string) (owner, repo string, err error) {
	info, err := vcsurl.Parse(remoteURL)
	if err != nil {
		return "", "", fmt.Errorf("parse remote url %q: %w", remoteURL, err)
	}
	if info.Username == "" || info.Name == "" {
		return "", "", fmt.Errorf("remote url %q has no owner/repo", remoteURL)
	}
	return info.Username, info.Name, nil
}

// PRInfo is the subset of pull request metadata the describe pipeline uses.
type PRInfo struct {
	Number    int
	Title     string
	Body      string
	Author    string
	State     string
	BaseRef   string
	HeadRef   string
	CreatedAt time.Time
}

type PRFetcher struct {
	client *github.Client
	owner  string
	repo   string
}

func NewPRFetcher(client *github.Client, owner, repo string) *PRFetcher {
	return &PRFetcher{client: client, owner: owner, repo: repo}
}

// FetchPR retrieves a pull request's metadata.
func (f *PRFetcher) FetchPR(ctx context.Context, number int) (PRInfo, error) {
	pr, _, err := f.client.PullRequests.Get(ctx, f.owner, f.repo, number)
	if err != nil {
		return PRInfo{}, fmt.Errorf("fetch PR #%d: %w", number, err)
	}
	return PRInfo{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		Author:    pr.GetUser().GetLogin(),
		State:     pr.GetState(),
		BaseRef:   pr.GetBase().GetRef(),
		HeadRef:   pr.GetHead().GetRef(),
		CreatedAt: pr.GetCreatedAt().Time,
	}, nil
}

// FetchPRDiff retrieves the unified diff for a pull request.
func (f *PRFetcher) FetchPRDiff(ctx context.Context, number int) (string, error) {
	diff, _, err := f.client.PullRequests.GetRaw(ctx, f.owner, f.repo, number, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", fmt.Errorf("fetch diff for PR #%d: %w", number, err)
	}
	return diff, nil
}
