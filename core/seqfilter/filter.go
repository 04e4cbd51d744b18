// core/seqfilter/filter.go
package seqfilter

import (
	"errors"
	"fmt"

	"gbsample-core/genbank"
)

// Criteria is an inclusive sequence-length range.
type Criteria struct {
	MinLength int
	MaxLength int
}

var errNegativeBound = errors.New("length bounds must be ≥ 0")

// Validate rejects negative bounds and inverted ranges. Callers must check
// before Apply; an inverted range is a caller mistake, not an empty result.
func (c Criteria) Validate() error {
	if c.MinLength < 0 || c.MaxLength < 0 {
		return errNegativeBound
	}
	if c.MinLength > c.MaxLength {
		return fmt.Errorf("min length (%d) exceeds max length (%d)", c.MinLength, c.MaxLength)
	}
	return nil
}

// Apply returns the records whose length lies within c, preserving input
// order. Pure: the input slice is never mutated.
func Apply(records []genbank.Record, c Criteria) []genbank.Record {
	out := make([]genbank.Record, 0, len(records))
	for _, r := range records {
		if r.Length >= c.MinLength && r.Length <= c.MaxLength {
			out = append(out, r)
		}
	}
	return out
}
