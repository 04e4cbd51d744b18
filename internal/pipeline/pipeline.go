// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gbsample-core/genbank"
	"gbsample-core/seqfilter"
	"gbsample/internal/artifact"
	"gbsample/internal/entrez"
	"gbsample/internal/report"
)

// Retriever is the remote capability the pipeline depends on. Implemented by
// *entrez.Client; faked in tests.
type Retriever interface {
	ResolveTaxonomy(ctx context.Context, taxid string) (string, error)
	Search(ctx context.Context, taxid, organism string) (entrez.Session, error)
	FetchBatch(ctx context.Context, s entrez.Session, start, max int) ([]genbank.Record, error)
}

// Config parameterizes one run.
type Config struct {
	TaxID      string
	Criteria   seqfilter.Criteria
	SampleSize int // records requested from the result set
	Start      int // offset into the result set
}

// Summary is the auditable outcome of a run. Retrieved < TotalCount means
// the sample was truncated; the gap is reported, never silent.
type Summary struct {
	Organism    string
	TotalCount  int
	Retrieved   int
	Filtered    int
	FetchFailed bool
	ArchivePath string
	ReportPath  string
	ChartPath   string
}

// Run drives one retrieval: resolve → search → fetch → filter → persist.
// Remote stage failures before any artifact exists surface as errors; a
// fetch failure after a successful search degrades to an empty batch so the
// run still produces (empty) archive and report. Persist failures abort the
// remaining output steps.
func Run(ctx context.Context, rt Retriever, store artifact.Store, log *slog.Logger, progress io.Writer, cfg Config) (Summary, error) {
	var sum Summary
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(progress, format, a...) }

	if err := cfg.Criteria.Validate(); err != nil {
		return sum, fmt.Errorf("pipeline: invalid length range: %w", err)
	}

	p("Searching for records with taxID: %s\n", cfg.TaxID)
	organism, err := rt.ResolveTaxonomy(ctx, cfg.TaxID)
	if err != nil {
		log.Error("taxonomy resolution failed", "taxid", cfg.TaxID, "err", err)
		return sum, err
	}
	sum.Organism = organism
	p("Organism: %s (TaxID: %s)\n", organism, cfg.TaxID)

	sess, err := rt.Search(ctx, cfg.TaxID, organism)
	if err != nil {
		log.Error("search failed", "taxid", cfg.TaxID, "err", err)
		return sum, err
	}
	sum.TotalCount = sess.Count
	if sess.State != entrez.SessionActive {
		p("No records found for %s\n", organism)
		return sum, nil
	}
	p("Found %d records\n", sess.Count)

	p("\nFetching sample records...\n")
	recs, err := rt.FetchBatch(ctx, sess, cfg.Start, cfg.SampleSize)
	if err != nil {
		if ctx.Err() != nil {
			return sum, ctx.Err()
		}
		// Degrade to an empty batch; outputs below still record the outcome.
		log.Error("batch fetch failed, continuing with zero records",
			"taxid", cfg.TaxID, "retrieved", 0, "err", err)
		sum.FetchFailed = true
		recs = nil
	}
	sum.Retrieved = len(recs)
	if sum.Retrieved < sum.TotalCount {
		p("Retrieved %d of %d available records\n", sum.Retrieved, sum.TotalCount)
	}

	filtered := seqfilter.Apply(recs, cfg.Criteria)
	sum.Filtered = len(filtered)
	p("Filtered to %d records within length range.\n", sum.Filtered)

	path, err := store.Write(artifact.ArchiveName(cfg.TaxID), func(w io.Writer) error {
		return genbank.Write(w, filtered)
	})
	if err != nil {
		log.Error("archive write failed", "taxid", cfg.TaxID, "retrieved", sum.Retrieved, "err", err)
		return sum, err
	}
	sum.ArchivePath = path
	p("Saved filtered sample records to %s\n", path)

	rows := report.Rows(filtered)
	path, err = store.Write(artifact.ReportName(cfg.TaxID), func(w io.Writer) error {
		return report.WriteCSV(w, rows)
	})
	if err != nil {
		log.Error("report write failed", "taxid", cfg.TaxID, "retrieved", sum.Retrieved, "err", err)
		return sum, err
	}
	sum.ReportPath = path
	p("Saved CSV report to %s\n", path)

	if len(rows) == 0 {
		log.Info("no filtered records; skipping chart", "taxid", cfg.TaxID)
		return sum, nil
	}
	chart, err := report.RenderChart(cfg.TaxID, rows)
	if err != nil {
		perr := &artifact.PersistError{Path: artifact.ChartName(cfg.TaxID), Err: err}
		log.Error("chart render failed", "taxid", cfg.TaxID, "retrieved", sum.Retrieved, "err", err)
		return sum, perr
	}
	path, err = store.Write(artifact.ChartName(cfg.TaxID), func(w io.Writer) error {
		_, werr := chart.WriteTo(w)
		return werr
	})
	if err != nil {
		log.Error("chart write failed", "taxid", cfg.TaxID, "retrieved", sum.Retrieved, "err", err)
		return sum, err
	}
	sum.ChartPath = path
	p("Saved chart to %s\n", path)

	return sum, nil
}
