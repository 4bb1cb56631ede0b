package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/repofetch/repofetch/internal/domain"
	"github.com/repofetch/repofetch/internal/gateway"
	"github.com/repofetch/repofetch/internal/output"
)

// failingWriter simulates a filesystem fault during persistence.
type failingWriter struct{}

func (failingWriter) Write(path string, records []domain.RepositoryRecord) error {
	return domain.E(domain.KindPersistenceFault, "disk full")
}

func newTestRunner(fetcher gateway.Fetcher, writer RecordWriter, out *bytes.Buffer) *Runner {
	return NewRunner(NewCollector(fetcher, zerolog.Nop()), writer, zerolog.Nop(), out)
}

func TestRunner_Run_EndToEnd(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "Hello-World").Return(gateway.RepoSummary{Stars: 100, Forks: 50}, nil)
	fetcher.On("FetchBranchCount", mock.Anything, "octocat", "Hello-World").Return(2, nil)
	fetcher.On("FetchCommitCount", mock.Anything, "octocat", "Hello-World").Return(2, nil)

	outPath := filepath.Join(t.TempDir(), "repo_stats.csv")
	var buf bytes.Buffer
	runner := newTestRunner(fetcher, output.NewCSVWriter(zerolog.Nop()), &buf)

	cfg := &domain.Config{Username: "octocat", Repositories: []string{"Hello-World"}}
	err := runner.Run(context.Background(), cfg, outPath)

	require.NoError(t, err)
	assert.Equal(t, StateDone, runner.State())

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "User,Repository_Name,Stars,Forks,Branches_Count,Commits_Count", lines[0])
	assert.Equal(t, "octocat,Hello-World,100,50,2,2", lines[1])

	assert.Contains(t, buf.String(), "Total Stars:")
	assert.Contains(t, buf.String(), "Total Forks:")
}

func TestRunner_Run_ValidationFailure(t *testing.T) {
	fetcher := new(mockFetcher)
	outPath := filepath.Join(t.TempDir(), "repo_stats.csv")
	var buf bytes.Buffer
	runner := newTestRunner(fetcher, output.NewCSVWriter(zerolog.Nop()), &buf)

	cfg := &domain.Config{Username: "-bad", Repositories: []string{"Hello-World"}}
	err := runner.Run(context.Background(), cfg, outPath)

	require.Error(t, err)
	assert.Equal(t, domain.KindDomainViolation, domain.KindOf(err))
	assert.Equal(t, StateFailed, runner.State())
	// The fetch stage is never reached.
	fetcher.AssertNotCalled(t, "FetchSummary", mock.Anything, mock.Anything, mock.Anything)
	assert.NoFileExists(t, outPath)
}

func TestRunner_Run_PartialFetchFailureWritesNothing(t *testing.T) {
	remoteErr := errors.New("404 not found")
	fetcher := new(mockFetcher)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "ok-repo").Return(gateway.RepoSummary{Stars: 10, Forks: 5}, nil)
	fetcher.On("FetchBranchCount", mock.Anything, "octocat", "ok-repo").Return(1, nil)
	fetcher.On("FetchCommitCount", mock.Anything, "octocat", "ok-repo").Return(3, nil)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "missing-repo").Return(gateway.RepoSummary{}, remoteErr)

	outPath := filepath.Join(t.TempDir(), "repo_stats.csv")
	var buf bytes.Buffer
	runner := newTestRunner(fetcher, output.NewCSVWriter(zerolog.Nop()), &buf)

	cfg := &domain.Config{Username: "octocat", Repositories: []string{"ok-repo", "missing-repo"}}
	err := runner.Run(context.Background(), cfg, outPath)

	require.Error(t, err)
	assert.Equal(t, domain.KindRemoteUnavailable, domain.KindOf(err))
	assert.Equal(t, StateFailed, runner.State())
	// No row is written for ok-repo either: the write gate is all-or-nothing.
	assert.NoFileExists(t, outPath)
}

func TestRunner_Run_AllRepositoriesFail(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "gone").Return(gateway.RepoSummary{}, errors.New("404"))

	var buf bytes.Buffer
	runner := newTestRunner(fetcher, output.NewCSVWriter(zerolog.Nop()), &buf)

	cfg := &domain.Config{Username: "octocat", Repositories: []string{"gone"}}
	err := runner.Run(context.Background(), cfg, filepath.Join(t.TempDir(), "out.csv"))

	require.Error(t, err)
	assert.Equal(t, domain.KindRemoteUnavailable, domain.KindOf(err))
	assert.Contains(t, err.Error(), "1 of 1 repositories failed")
}

func TestRunner_Run_PersistenceFailure(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "Hello-World").Return(gateway.RepoSummary{Stars: 1, Forks: 1}, nil)
	fetcher.On("FetchBranchCount", mock.Anything, "octocat", "Hello-World").Return(1, nil)
	fetcher.On("FetchCommitCount", mock.Anything, "octocat", "Hello-World").Return(1, nil)

	var buf bytes.Buffer
	runner := newTestRunner(fetcher, failingWriter{}, &buf)

	cfg := &domain.Config{Username: "octocat", Repositories: []string{"Hello-World"}}
	err := runner.Run(context.Background(), cfg, "irrelevant.csv")

	require.Error(t, err)
	assert.Equal(t, domain.KindPersistenceFault, domain.KindOf(err))
	assert.Equal(t, StateFailed, runner.State())
}

func TestRunner_Run_SummaryAggregatesTotals(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "a-repo").Return(gateway.RepoSummary{Stars: 100, Forks: 50}, nil)
	fetcher.On("FetchBranchCount", mock.Anything, "octocat", "a-repo").Return(1, nil)
	fetcher.On("FetchCommitCount", mock.Anything, "octocat", "a-repo").Return(1, nil)
	fetcher.On("FetchSummary", mock.Anything, "octocat", "b-repo").Return(gateway.RepoSummary{Stars: 100, Forks: 50}, nil)
	fetcher.On("FetchBranchCount", mock.Anything, "octocat", "b-repo").Return(1, nil)
	fetcher.On("FetchCommitCount", mock.Anything, "octocat", "b-repo").Return(1, nil)

	var buf bytes.Buffer
	runner := newTestRunner(fetcher, output.NewCSVWriter(zerolog.Nop()), &buf)

	cfg := &domain.Config{Username: "octocat", Repositories: []string{"a-repo", "b-repo"}}
	err := runner.Run(context.Background(), cfg, filepath.Join(t.TempDir(), "out.csv"))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "200")
	assert.Contains(t, buf.String(), "100")
}
