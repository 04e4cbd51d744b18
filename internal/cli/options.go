// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gbsample/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Query
	TaxID  string
	Email  string
	APIKey string

	// Length filter (inclusive)
	MinLen int
	MaxLen int

	// Retrieval window
	SampleSize int
	Start      int
	BatchCap   int

	// Transport
	Retries int
	Timeout time.Duration
	BaseURL string

	// Output
	OutDir            string
	Quiet             bool
	NoRecordsExitCode int

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: length-filtered GenBank sampler for a taxon

Resolves a taxonomic ID against NCBI Entrez, fetches a bounded sample of
nucleotide records, filters them by sequence length, and writes a GenBank
archive, a CSV report, and a length chart.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Credentials fall back to NCBI_EMAIL / NCBI_API_KEY (a .env file in the
// working directory is honored when present).
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Query
	fs.StringVar(&opt.TaxID, "taxid", "", "taxonomic ID of the organism [*]")
	fs.StringVar(&opt.Email, "email", "", "contact email sent with every NCBI request [$NCBI_EMAIL]")
	fs.StringVar(&opt.APIKey, "api-key", "", "NCBI API key (raises the request rate) [$NCBI_API_KEY]")

	// Length filter
	fs.IntVar(&opt.MinLen, "min-length", 0, "minimum sequence length, inclusive [0]")
	fs.IntVar(&opt.MaxLen, "max-length", -1, "maximum sequence length, inclusive [*]")

	// Retrieval window
	fs.IntVar(&opt.SampleSize, "sample-size", 20, "records to fetch from the result set [20]")
	fs.IntVar(&opt.Start, "start", 0, "offset into the result set [0]")
	fs.IntVar(&opt.BatchCap, "batch-cap", 500, "service-side cap on records per fetch [500]")

	// Transport
	fs.IntVar(&opt.Retries, "retries", 0, "extra attempts on transient remote failures [0]")
	fs.DurationVar(&opt.Timeout, "timeout", 30*time.Second, "per-request timeout [30s]")
	fs.StringVar(&opt.BaseURL, "base-url", "", "E-utilities base URL override (testing) [NCBI]")

	// Output
	fs.StringVar(&opt.OutDir, "outdir", ".", "directory for output artifacts [.]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress non-error diagnostics [false]")
	fs.IntVar(&opt.NoRecordsExitCode, "no-records-exit-code", 1, "exit code when the taxon has no records [1]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	if opt.Email == "" {
		opt.Email = os.Getenv("NCBI_EMAIL")
	}
	if opt.APIKey == "" {
		opt.APIKey = os.Getenv("NCBI_API_KEY")
	}

	// Validation
	switch {
	case opt.TaxID == "":
		return opt, errors.New("--taxid is required")
	case opt.Email == "":
		return opt, errors.New("--email (or NCBI_EMAIL) is required by NCBI usage policy")
	case opt.MaxLen < 0:
		return opt, errors.New("--max-length is required and must be ≥ 0")
	case opt.MinLen < 0:
		return opt, errors.New("--min-length must be ≥ 0")
	case opt.MinLen > opt.MaxLen:
		return opt, fmt.Errorf("--min-length (%d) exceeds --max-length (%d)", opt.MinLen, opt.MaxLen)
	case opt.SampleSize < 1:
		return opt, errors.New("--sample-size must be ≥ 1")
	case opt.Start < 0:
		return opt, errors.New("--start must be ≥ 0")
	case opt.BatchCap < 1:
		return opt, errors.New("--batch-cap must be ≥ 1")
	case opt.Retries < 0:
		return opt, errors.New("--retries must be ≥ 0")
	case opt.NoRecordsExitCode < 0 || opt.NoRecordsExitCode > 125:
		return opt, errors.New("--no-records-exit-code must be in 0..125")
	}
	return opt, nil
}
