// Package runner turns uploaded spreadsheets or posted records into stored
// classification runs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/ingest"
	"keywordmatrix/internal/metrics"
	"keywordmatrix/internal/models"
	"keywordmatrix/internal/store"
)

var (
	ErrNoInput    = errors.New("no keyword files or records provided")
	ErrNoKeywords = errors.New("no keywords found in input")
)

// File is one named input spreadsheet.
type File struct {
	Name string
	Body io.Reader
}

// Runner classifies input and saves the result.
type Runner struct {
	registry *classifier.Registry
	store    store.Store
	now      func() time.Time
}

// New creates a runner. A nil registry uses the built-in rules; a nil store
// skips persistence.
func New(reg *classifier.Registry, s store.Store) *Runner {
	if reg == nil {
		reg = classifier.DefaultRegistry()
	}
	return &Runner{registry: reg, store: s, now: time.Now}
}

// Registry returns the rule registry in use.
func (r *Runner) Registry() *classifier.Registry {
	return r.registry
}

// FromFiles parses, combines and classifies the files. A file that cannot
// be parsed is reported as an issue and skipped; the run fails only when no
// file yields a keyword.
func (r *Runner) FromFiles(ctx context.Context, source string, files []File) (*models.Run, error) {
	if len(files) == 0 {
		return nil, ErrNoInput
	}

	var (
		batches  []*ingest.Batch
		names    []string
		failures []models.RowIssue
		errs     []error
	)
	for _, f := range files {
		names = append(names, f.Name)
		batch, err := ingest.ParseFile(f.Name, f.Body)
		if err != nil {
			slog.Warn("skipping input file", "file", f.Name, "error", err)
			failures = append(failures, models.RowIssue{Source: f.Name, Error: err.Error()})
			errs = append(errs, err)
			continue
		}
		batches = append(batches, batch)
	}

	records, issues := ingest.Combine(batches...)
	if len(records) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return r.FromRecords(ctx, source, names, records, append(failures, issues...))
}

// FromRecords classifies already parsed records. The normalized keyword is
// always derived from the raw keyword, so a caller-supplied one is ignored
// unless the raw keyword is missing. Totals are filled in when missing and
// duplicates are dropped.
func (r *Runner) FromRecords(ctx context.Context, source string, names []string, records []models.KeywordRecord, issues []models.RowIssue) (*models.Run, error) {
	prepared := make([]models.KeywordRecord, 0, len(records))
	for _, rec := range records {
		if rec.RawKeyword == "" {
			rec.RawKeyword = rec.Keyword
		}
		rec.Keyword = classifier.Normalize(rec.RawKeyword)
		if rec.Keyword == "" {
			continue
		}
		if rec.TotalSearchVolume == 0 && rec.TotalClicks == 0 {
			rec.ComputeTotals()
		}
		prepared = append(prepared, rec)
	}
	prepared = classifier.Dedup(prepared)
	if len(prepared) == 0 {
		return nil, ErrNoKeywords
	}

	start := r.now()
	classified := classifier.Classify(r.registry, prepared)
	run := &models.Run{
		ID:        uuid.New(),
		Source:    source,
		Files:     names,
		CreatedAt: start.UTC(),
		Records:   classified,
		Stats:     classifier.Aggregate(classified),
		Issues:    issues,
	}
	elapsed := r.now().Sub(start).Seconds()

	if r.store != nil {
		if err := r.store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
	}
	metrics.RecordRun(run, elapsed)

	slog.Info("classified keywords",
		"run", run.ID,
		"source", source,
		"keywords", len(classified),
		"issues", len(issues),
		"duration", elapsed,
	)
	return run, nil
}
