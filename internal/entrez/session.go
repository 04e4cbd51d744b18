// internal/entrez/session.go
package entrez

// SessionState tracks whether a server-side search history exists.
type SessionState int

const (
	SessionUninitialized SessionState = iota
	SessionEmpty                      // search succeeded, zero records
	SessionActive                     // history tokens populated
)

func (s SessionState) String() string {
	switch s {
	case SessionEmpty:
		return "empty"
	case SessionActive:
		return "active"
	default:
		return "uninitialized"
	}
}

// Session is the outcome of ResolveTaxonomy + Search. Immutable once
// returned; WebEnv and QueryKey are opaque server tokens and only carry
// meaning while State is SessionActive.
type Session struct {
	State    SessionState
	TaxID    string
	Organism string
	Count    int
	WebEnv   string
	QueryKey string
}
