// Package output persists fetched repository records to a CSV file.
package output

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/repofetch/repofetch/internal/domain"
)

// Header is the fixed CSV column order. It is written exactly once, when the
// destination file is first created; subsequent runs append rows only.
var Header = []string{"User", "Repository_Name", "Stars", "Forks", "Branches_Count", "Commits_Count"}

// CSVWriter appends repository records to a CSV file. The file handle only
// lives for the duration of a single Write call.
type CSVWriter struct {
	logger zerolog.Logger
}

// NewCSVWriter creates a new CSVWriter instance.
func NewCSVWriter(logger zerolog.Logger) *CSVWriter {
	return &CSVWriter{logger: logger}
}

// Write appends one row per record to the file at path, creating the file
// with a header row first if it does not exist yet. An empty record list is
// a warning, never an error; filesystem faults are persistence failures.
func (w *CSVWriter) Write(path string, records []domain.RepositoryRecord) error {
	if len(records) == 0 {
		w.logger.Warn().Str("path", path).Msg("no records to write, skipping output file")
		return nil
	}

	_, statErr := os.Stat(path)
	fileExists := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return domain.WrapE(domain.KindPersistenceFault, err, "cannot open output file %q", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if !fileExists {
		if err := cw.Write(Header); err != nil {
			return domain.WrapE(domain.KindPersistenceFault, err, "cannot write header to %q", path)
		}
	}
	for _, rec := range records {
		row := []string{
			rec.User,
			rec.Name,
			strconv.Itoa(rec.Stars),
			strconv.Itoa(rec.Forks),
			strconv.Itoa(rec.Branches),
			strconv.Itoa(rec.Commits),
		}
		if err := cw.Write(row); err != nil {
			return domain.WrapE(domain.KindPersistenceFault, err, "cannot write record for %q to %q", rec.Name, path)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return domain.WrapE(domain.KindPersistenceFault, err, "cannot flush output file %q", path)
	}
	w.logger.Info().Str("path", path).Int("records", len(records)).Msg("wrote output file")
	return nil
}
