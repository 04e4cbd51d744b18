// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"gbsample-core/seqfilter"
	"gbsample/internal/artifact"
	"gbsample/internal/cli"
	"gbsample/internal/cmdutil"
	"gbsample/internal/entrez"
	"gbsample/internal/pipeline"
	"gbsample/internal/version"
)

// RunContext executes one retrieval run. Exit codes: 0 success, the
// configured no-records code when the taxon has no sequences, 2 usage error,
// 3 runtime failure, 130 cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("gbsample")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); cmdutil.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "gbsample version %s\n", version.Version)
		if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	level := slog.LevelInfo
	if opts.Quiet {
		level = slog.LevelError
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client := entrez.NewClient(entrez.Config{
		Email:    opts.Email,
		APIKey:   opts.APIKey,
		BaseURL:  opts.BaseURL,
		MaxBatch: opts.BatchCap,
		Retries:  opts.Retries,
		Timeout:  opts.Timeout,
	})
	store := artifact.Store{Dir: opts.OutDir}

	sum, err := pipeline.Run(parent, client, store, log, outw, pipeline.Config{
		TaxID:      opts.TaxID,
		Criteria:   seqfilter.Criteria{MinLength: opts.MinLen, MaxLength: opts.MaxLen},
		SampleSize: opts.SampleSize,
		Start:      opts.Start,
	})

	if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if sum.TotalCount == 0 {
		return opts.NoRecordsExitCode
	}
	return 0
}

// Run is the background-context convenience wrapper.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
