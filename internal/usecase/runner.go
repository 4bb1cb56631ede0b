package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"github.com/repofetch/repofetch/internal/domain"
	"github.com/repofetch/repofetch/internal/validate"
)

// State is the orchestrator's position in the pipeline. Failed is absorbing:
// once entered, the run is over and the carried error selects the exit code.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateFetching
	StateWriting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateFetching:
		return "fetching"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecordWriter persists fetched records. Implemented by output.CSVWriter.
type RecordWriter interface {
	Write(path string, records []domain.RepositoryRecord) error
}

// Runner sequences validation, fetching and persistence, and gates the write
// stage on a fully successful fetch run: if any repository failed, nothing
// is written, not even the repositories that succeeded.
type Runner struct {
	collector *Collector
	writer    RecordWriter
	logger    zerolog.Logger
	out       io.Writer
	state     State
}

// NewRunner creates a Runner. out receives the human-facing summary.
func NewRunner(collector *Collector, writer RecordWriter, logger zerolog.Logger, out io.Writer) *Runner {
	return &Runner{
		collector: collector,
		writer:    writer,
		logger:    logger,
		out:       out,
		state:     StateIdle,
	}
}

// State reports the runner's current pipeline state.
func (r *Runner) State() State { return r.state }

// Run executes the pipeline for a decoded configuration, writing the CSV to
// outputPath. A nil return means the runner reached Done; otherwise the
// returned error is classified and the runner is in Failed.
func (r *Runner) Run(ctx context.Context, cfg *domain.Config, outputPath string) error {
	r.transition(StateValidating)
	if err := validate.Config(cfg); err != nil {
		return r.fail(err)
	}

	r.transition(StateFetching)
	outcome := r.collector.Collect(ctx, cfg.Username, cfg.Repositories)
	if !outcome.AllSucceeded || len(outcome.Records) == 0 {
		failed := len(cfg.Repositories) - len(outcome.Records)
		return r.fail(domain.E(domain.KindRemoteUnavailable,
			"%d of %d repositories failed to fetch; nothing was written", failed, len(cfg.Repositories)))
	}

	r.transition(StateWriting)
	if err := r.writer.Write(outputPath, outcome.Records); err != nil {
		return r.fail(err)
	}

	r.printSummary(outcome.Records)
	r.transition(StateDone)
	return nil
}

func (r *Runner) transition(next State) {
	r.logger.Debug().Stringer("from", r.state).Stringer("to", next).Msg("pipeline transition")
	r.state = next
}

func (r *Runner) fail(err error) error {
	r.logger.Error().Err(err).Stringer("stage", r.state).Msg("pipeline failed")
	r.state = StateFailed
	return err
}

// printSummary reports the stars/forks totals across all fetched records.
func (r *Runner) printSummary(records []domain.RepositoryRecord) {
	starVals := make([]float64, len(records))
	forkVals := make([]float64, len(records))
	for i, rec := range records {
		starVals[i] = float64(rec.Stars)
		forkVals[i] = float64(rec.Forks)
	}
	// records is never empty here (gated above), so Sum cannot fail.
	totalStars, _ := stats.Sum(starVals)
	totalForks, _ := stats.Sum(forkVals)

	fmt.Fprintf(r.out, "\n%s\n", color.New(color.Bold).Sprint("Summary:"))
	fmt.Fprintf(r.out, "  Repositories: %d\n", len(records))
	fmt.Fprintf(r.out, "  Total Stars:  %s\n", color.GreenString("%.0f", totalStars))
	fmt.Fprintf(r.out, "  Total Forks:  %s\n", color.CyanString("%.0f", totalForks))
}
