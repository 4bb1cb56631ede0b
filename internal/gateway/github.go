// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client from the fetch pipeline.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/repofetch/repofetch/internal/domain"
)

// RepoSummary holds the numeric fields extracted from a repository summary lookup.
type RepoSummary struct {
	Stars int
	Forks int
}

// Fetcher defines the behavior of a gateway for fetching repository
// information from GitHub. The three lookups mirror the three REST calls the
// pipeline performs per repository.
type Fetcher interface {
	FetchSummary(ctx context.Context, owner, repo string) (RepoSummary, error)
	FetchBranchCount(ctx context.Context, owner, repo string) (int, error)
	FetchCommitCount(ctx context.Context, owner, repo string) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger zerolog.Logger
}

// NewGitHubGateway creates a gateway for the public, unauthenticated API.
// The timeout applies to each individual HTTP call; it is the only place the
// configured timeout is enforced.
func NewGitHubGateway(timeout time.Duration, logger zerolog.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{
		Transport: rateLimitWaiter,
		Timeout:   timeout,
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

// FetchSummary requests the repository summary and extracts stars and forks.
// Absent count fields decode to zero, which is taken as-is rather than
// treated as an error.
func (g *GitHubGateway) FetchSummary(ctx context.Context, owner, repo string) (RepoSummary, error) {
	g.logger.Debug().Str("repo", repo).Msg("fetching repository summary")
	r, _, err := g.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return RepoSummary{}, domain.WrapE(domain.KindRemoteUnavailable, err,
			"summary lookup failed for %s/%s", owner, repo)
	}
	return RepoSummary{
		Stars: r.GetStargazersCount(),
		Forks: r.GetForksCount(),
	}, nil
}

// FetchBranchCount requests the branch list and returns its length.
// Only the provider's default first page is requested.
func (g *GitHubGateway) FetchBranchCount(ctx context.Context, owner, repo string) (int, error) {
	g.logger.Debug().Str("repo", repo).Msg("fetching branch list")
	branches, _, err := g.client.Repositories.ListBranches(ctx, owner, repo, nil)
	if err != nil {
		return 0, domain.WrapE(domain.KindRemoteUnavailable, err,
			"branch lookup failed for %s/%s", owner, repo)
	}
	return len(branches), nil
}

// FetchCommitCount requests the commit list and returns its length. Only the
// provider's default first page is requested, so this is a recent-commit
// count capped around 30, not a full history count.
func (g *GitHubGateway) FetchCommitCount(ctx context.Context, owner, repo string) (int, error) {
	g.logger.Debug().Str("repo", repo).Msg("fetching commit list")
	commits, _, err := g.client.Repositories.ListCommits(ctx, owner, repo, nil)
	if err != nil {
		return 0, domain.WrapE(domain.KindRemoteUnavailable, err,
			"commit lookup failed for %s/%s", owner, repo)
	}
	return len(commits), nil
}
