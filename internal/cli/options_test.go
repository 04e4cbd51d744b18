// internal/cli/options_test.go
package cli

import (
	"flag"
	"strings"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func mustFail(t *testing.T, want string, args ...string) {
	t.Helper()
	_, err := ParseArgs(newFS(), args)
	if err == nil {
		t.Fatalf("expected error containing %q", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not mention %q", err, want)
	}
}

func base(extra ...string) []string {
	args := []string{"--taxid", "9606", "--email", "a@b.org", "--max-length", "2000"}
	return append(args, extra...)
}

func TestMinimalOK(t *testing.T) {
	o := mustParse(t, base()...)
	if o.TaxID != "9606" || o.MaxLen != 2000 || o.MinLen != 0 {
		t.Errorf("bad parse %+v", o)
	}
	if o.SampleSize != 20 || o.BatchCap != 500 || o.NoRecordsExitCode != 1 {
		t.Errorf("bad defaults %+v", o)
	}
}

func TestTaxIDStaysOpaque(t *testing.T) {
	o := mustParse(t, "--taxid", "txid-with-text", "--email", "a@b.org", "--max-length", "10")
	if o.TaxID != "txid-with-text" {
		t.Errorf("taxid must be accepted as opaque text, got %q", o.TaxID)
	}
}

func TestEmailFromEnv(t *testing.T) {
	t.Setenv("NCBI_EMAIL", "env@b.org")
	t.Setenv("NCBI_API_KEY", "envkey")
	o := mustParse(t, "--taxid", "9606", "--max-length", "10")
	if o.Email != "env@b.org" || o.APIKey != "envkey" {
		t.Errorf("env fallback failed: %+v", o)
	}
}

func TestFlagBeatsEnv(t *testing.T) {
	t.Setenv("NCBI_EMAIL", "env@b.org")
	o := mustParse(t, "--taxid", "9606", "--email", "flag@b.org", "--max-length", "10")
	if o.Email != "flag@b.org" {
		t.Errorf("flag must win over env, got %q", o.Email)
	}
}

func TestValidation(t *testing.T) {
	t.Setenv("NCBI_EMAIL", "")
	t.Setenv("NCBI_API_KEY", "")
	mustFail(t, "--taxid", "--email", "a@b.org", "--max-length", "10")
	mustFail(t, "--email", "--taxid", "9606", "--max-length", "10")
	mustFail(t, "--max-length", "--taxid", "9606", "--email", "a@b.org")
	mustFail(t, "exceeds", base("--min-length", "3000")...)
	mustFail(t, "--sample-size", base("--sample-size", "0")...)
	mustFail(t, "--start", base("--start", "-1")...)
	mustFail(t, "--batch-cap", base("--batch-cap", "0")...)
	mustFail(t, "--retries", base("--retries", "-1")...)
}

func TestVersionSkipsValidation(t *testing.T) {
	o := mustParse(t, "--version")
	if !o.Version {
		t.Errorf("version flag lost")
	}
}
