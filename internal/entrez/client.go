// internal/entrez/client.go
package entrez

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"gbsample-core/genbank"
)

const (
	// DefaultBaseURL is the public E-utilities endpoint.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	// DefaultMaxBatch is the service-side cap on records per efetch call.
	DefaultMaxBatch = 500

	dbNucleotide = "nucleotide"
	dbTaxonomy   = "taxonomy"
)

// Config is an immutable per-client value. Credentials are never installed
// as process-global state; every request site receives them through here.
type Config struct {
	Email    string
	APIKey   string
	Tool     string
	BaseURL  string        // override for tests
	MaxBatch int           // 0 = DefaultMaxBatch
	Retries  int           // extra attempts on 5xx/transport errors; 0 = none
	Timeout  time.Duration // per-request; 0 = 30s
}

// Client talks to the E-utilities endpoints with client-side throttling.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient applies Config defaults and picks the request rate NCBI permits:
// 3 req/s anonymously, 10 req/s with an API key.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}
	if cfg.Tool == "" {
		cfg.Tool = "gbsample"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	rps := rate.Limit(3)
	if cfg.APIKey != "" {
		rps = 10
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rps, 1),
	}
}

// MaxBatch reports the effective per-call record cap.
func (c *Client) MaxBatch() int { return c.cfg.MaxBatch }

type taxaSet struct {
	XMLName xml.Name `xml:"TaxaSet"`
	Taxa    []struct {
		ScientificName string `xml:"ScientificName"`
	} `xml:"Taxon"`
}

// ResolveTaxonomy maps a taxid (opaque text, no numeric assumption) to its
// scientific name via efetch against the taxonomy database.
func (c *Client) ResolveTaxonomy(ctx context.Context, taxid string) (string, error) {
	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":      {dbTaxonomy},
		"id":      {taxid},
		"retmode": {"xml"},
	})
	if err != nil {
		return "", &ResolutionError{TaxID: taxid, Op: "efetch-taxonomy", Err: err}
	}
	var ts taxaSet
	if err := xml.Unmarshal(body, &ts); err != nil {
		return "", &ResolutionError{TaxID: taxid, Op: "efetch-taxonomy", Err: err}
	}
	if len(ts.Taxa) == 0 || ts.Taxa[0].ScientificName == "" {
		return "", &ResolutionError{TaxID: taxid, Op: "efetch-taxonomy", Err: errors.New("no taxon entry in response")}
	}
	return ts.Taxa[0].ScientificName, nil
}

type eSearchResult struct {
	XMLName  xml.Name `xml:"eSearchResult"`
	Count    int      `xml:"Count"`
	WebEnv   string   `xml:"WebEnv"`
	QueryKey string   `xml:"QueryKey"`
	Error    string   `xml:"ERROR"`
}

// Search runs an esearch over the nucleotide database with server-side
// history retained, so later fetches reference the result set by token
// instead of resending the query. Count==0 yields a SessionEmpty session,
// which is a normal terminal outcome, not an error.
func (c *Client) Search(ctx context.Context, taxid, organism string) (Session, error) {
	s := Session{TaxID: taxid, Organism: organism}
	body, err := c.get(ctx, "esearch.fcgi", url.Values{
		"db":         {dbNucleotide},
		"term":       {fmt.Sprintf("txid%s[Organism]", taxid)},
		"usehistory": {"y"},
	})
	if err != nil {
		return s, &ResolutionError{TaxID: taxid, Op: "esearch", Err: err}
	}
	var res eSearchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return s, &ResolutionError{TaxID: taxid, Op: "esearch", Err: err}
	}
	if res.Error != "" {
		return s, &ResolutionError{TaxID: taxid, Op: "esearch", Err: errors.New(res.Error)}
	}
	s.Count = res.Count
	if res.Count == 0 {
		s.State = SessionEmpty
		return s, nil
	}
	if res.WebEnv == "" || res.QueryKey == "" {
		return s, &ResolutionError{TaxID: taxid, Op: "esearch", Err: errors.New("history tokens missing from response")}
	}
	s.State = SessionActive
	s.WebEnv = res.WebEnv
	s.QueryKey = res.QueryKey
	return s, nil
}

// FetchBatch retrieves up to min(max, Config.MaxBatch) GenBank records
// starting at offset start, reusing the session's history tokens. Calling it
// without an active session fails fast before any I/O.
func (c *Client) FetchBatch(ctx context.Context, s Session, start, max int) ([]genbank.Record, error) {
	if s.State != SessionActive {
		return nil, ErrNoActiveSession
	}
	if start < 0 {
		start = 0
	}
	if max <= 0 {
		return nil, nil
	}
	if max > c.cfg.MaxBatch {
		max = c.cfg.MaxBatch
	}
	body, err := c.get(ctx, "efetch.fcgi", url.Values{
		"db":        {dbNucleotide},
		"rettype":   {"gb"},
		"retmode":   {"text"},
		"retstart":  {strconv.Itoa(start)},
		"retmax":    {strconv.Itoa(max)},
		"WebEnv":    {s.WebEnv},
		"query_key": {s.QueryKey},
	})
	if err != nil {
		return nil, &FetchError{TaxID: s.TaxID, Start: start, Max: max, Err: err}
	}
	recs, err := genbank.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{TaxID: s.TaxID, Start: start, Max: max, Retrieved: len(recs), Err: err}
	}
	return recs, nil
}

// get issues one throttled GET. 5xx and transport errors are retried with
// exponential backoff up to Config.Retries extra attempts; other non-200
// statuses are permanent.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("email", c.cfg.Email)
	params.Set("tool", c.cfg.Tool)
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + endpoint + "?" + params.Encode()

	op := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%s: %s", endpoint, resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("%s: %s", endpoint, resp.Status))
		}
		return body, nil
	}
	pol := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.cfg.Retries)), ctx)
	return backoff.RetryWithData(op, pol)
}
