// internal/entrez/errors.go
package entrez

import (
	"errors"
	"fmt"
)

// ErrNoActiveSession reports a fetch attempted before a successful Search.
// This is a programming error at the call site, not a remote failure.
var ErrNoActiveSession = errors.New("entrez: no active search session (run Search first)")

// ResolutionError wraps a failed taxonomy lookup or search for a taxid.
type ResolutionError struct {
	TaxID string
	Op    string // "efetch-taxonomy" or "esearch"
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("entrez: resolve taxid %s (%s): %v", e.TaxID, e.Op, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FetchError wraps a failed batch retrieval. The pipeline treats the batch
// as empty and continues; Retrieved lets diagnostics report partial progress.
type FetchError struct {
	TaxID     string
	Start     int
	Max       int
	Retrieved int
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("entrez: fetch taxid %s [start=%d max=%d retrieved=%d]: %v",
		e.TaxID, e.Start, e.Max, e.Retrieved, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
