// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/repofetch/repofetch/internal/domain"
	"github.com/repofetch/repofetch/internal/gateway"
)

// Collector fetches the metrics for a list of repositories, one repository
// at a time, in input order. A failing repository never aborts the loop: it
// is logged, the outcome's success flag is cleared, and the loop moves on.
type Collector struct {
	fetcher gateway.Fetcher
	logger  zerolog.Logger
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, logger zerolog.Logger) *Collector {
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Collect runs the three lookups for every repository and returns the
// outcome. AllSucceeded is true iff every repository produced a complete
// record; Records only contains complete records, in input order.
func (c *Collector) Collect(ctx context.Context, user string, repos []string) domain.FetchOutcome {
	outcome := domain.FetchOutcome{AllSucceeded: true}
	for _, repo := range repos {
		c.logger.Info().Str("repo", repo).Msg("fetching data for repository")
		record, err := c.collectOne(ctx, user, repo)
		if err != nil {
			c.logger.Error().Err(err).Str("repo", repo).Msg("repository fetch failed")
			outcome.AllSucceeded = false
			continue
		}
		c.logger.Info().
			Str("repo", repo).
			Int("stars", record.Stars).
			Int("forks", record.Forks).
			Int("branches", record.Branches).
			Int("commits", record.Commits).
			Msg("repository fetch complete")
		outcome.Records = append(outcome.Records, record)
	}
	return outcome
}

// collectOne performs the three dependent lookups for a single repository.
// A record is only built when all three succeed; there are no partial
// records. Unexpected faults are contained here so they cannot abort the
// caller's loop.
func (c *Collector) collectOne(ctx context.Context, user, repo string) (record domain.RepositoryRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.E(domain.KindRemoteUnavailable, "unexpected fault while processing %s/%s: %v", user, repo, r)
		}
	}()

	summary, err := c.fetcher.FetchSummary(ctx, user, repo)
	if err != nil {
		return domain.RepositoryRecord{}, err
	}
	branches, err := c.fetcher.FetchBranchCount(ctx, user, repo)
	if err != nil {
		return domain.RepositoryRecord{}, err
	}
	commits, err := c.fetcher.FetchCommitCount(ctx, user, repo)
	if err != nil {
		return domain.RepositoryRecord{}, err
	}

	return domain.RepositoryRecord{
		User:     user,
		Name:     repo,
		Stars:    summary.Stars,
		Forks:    summary.Forks,
		Branches: branches,
		Commits:  commits,
	}, nil
}
