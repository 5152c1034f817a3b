// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez wraps the two NCBI E-utilities calls the pipeline needs:
// esearch (query to PMID list) and efetch (PMID list to article XML).
package entrez

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/industry-papers/internal/httputil"
	"github.com/pdiddy/industry-papers/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	searchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	fetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const database = "pubmed"

// RequestError reports a failed call to the E-utilities: either a transport
// failure or a non-2xx response that survived retries.
type RequestError struct {
	// Op is the E-utilities operation, "esearch" or "efetch".
	Op string

	// Status is the HTTP status code, 0 for transport failures.
	Status int

	Err error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client calls the NCBI E-utilities.
type Client struct {
	HTTP *http.Client
	Cfg  types.EntrezConfig
}

// NewClient builds a Client with a per-request timeout taken from cfg.
func NewClient(cfg types.EntrezConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// Search queries esearch for PMIDs matching query, capped at maxResults.
// The returned IDs are in the service's relevance order.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", fmt.Sprintf("%d", maxResults))

	body, err := c.get(ctx, "esearch", searchBase, params)
	if err != nil {
		return nil, err
	}

	var result esearchResult
	if err := xml.Unmarshal(body, &result); err != nil {
		return nil, &RequestError{Op: "esearch", Err: fmt.Errorf("parsing response: %w", err)}
	}
	return result.IDList.IDs, nil
}

// Fetch retrieves the full article XML document for the given PMIDs. The
// caller is responsible for keeping len(ids) within the single-request
// batch limit.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, &RequestError{Op: "efetch", Err: fmt.Errorf("no ids to fetch")}
	}

	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))

	return c.get(ctx, "efetch", fetchBase, params)
}

// baseParams returns the parameters common to every E-utilities call,
// including the polite-use identification NCBI asks for.
func (c *Client) baseParams() url.Values {
	params := url.Values{
		"db":      {database},
		"retmode": {"xml"},
	}
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}
	if c.Cfg.Email != "" {
		params.Set("email", c.Cfg.Email)
	}
	if c.Cfg.Tool != "" {
		params.Set("tool", c.Cfg.Tool)
	}
	return params
}

func (c *Client) get(ctx context.Context, op, base string, params url.Values) ([]byte, error) {
	reqURL := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Cfg.MaxRetries)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	return body, nil
}

// esearch response XML structures.
type esearchResult struct {
	XMLName xml.Name   `xml:"eSearchResult"`
	Count   int        `xml:"Count"`
	IDList  esearchIDs `xml:"IdList"`
}

type esearchIDs struct {
	IDs []string `xml:"Id"`
}
