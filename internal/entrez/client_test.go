package entrez

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/industry-papers/internal/httputil"
	"github.com/pdiddy/industry-papers/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testCfg() types.EntrezConfig {
	return types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		Tool:       "industry-papers-test",
		Email:      "dev@example.org",
		MaxRetries: 2,
	}
}

const searchXML = `<?xml version="1.0"?>
<eSearchResult>
  <Count>3</Count>
  <RetMax>3</RetMax>
  <IdList>
    <Id>36680001</Id>
    <Id>36680002</Id>
    <Id>36680003</Id>
  </IdList>
</eSearchResult>`

func TestSearchReturnsIDsInOrder(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("term")
		if r.URL.Query().Get("db") != "pubmed" {
			t.Errorf("db = %q, want pubmed", r.URL.Query().Get("db"))
		}
		if r.URL.Query().Get("retmax") != "5" {
			t.Errorf("retmax = %q, want 5", r.URL.Query().Get("retmax"))
		}
		if r.URL.Query().Get("tool") != "industry-papers-test" {
			t.Errorf("tool = %q, want industry-papers-test", r.URL.Query().Get("tool"))
		}
		w.Write([]byte(searchXML))
	}))
	defer ts.Close()

	oldBase := searchBase
	searchBase = ts.URL
	defer func() { searchBase = oldBase }()

	c := NewClient(testCfg())
	ids, err := c.Search(context.Background(), "covid-19 vaccine AND 2023", 5)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	want := []string{"36680001", "36680002", "36680003"}
	if len(ids) != len(want) {
		t.Fatalf("len(ids) = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if gotQuery != "covid-19 vaccine AND 2023" {
		t.Errorf("term = %q", gotQuery)
	}
}

func TestSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	oldBase := searchBase
	searchBase = ts.URL
	defer func() { searchBase = oldBase }()

	c := NewClient(testCfg())
	_, err := c.Search(context.Background(), "anything", 5)
	if err == nil {
		t.Fatal("Search() should fail on HTTP 400")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("error type = %T, want *RequestError", err)
	}
	if reqErr.Op != "esearch" || reqErr.Status != http.StatusBadRequest {
		t.Errorf("RequestError = %+v", reqErr)
	}
}

func TestSearchMalformedXML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<eSearchResult><IdList>"))
	}))
	defer ts.Close()

	oldBase := searchBase
	searchBase = ts.URL
	defer func() { searchBase = oldBase }()

	c := NewClient(testCfg())
	if _, err := c.Search(context.Background(), "anything", 5); err == nil {
		t.Fatal("Search() should fail on truncated XML")
	}
}

func TestFetchJoinsIDs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "1,2,3" {
			t.Errorf("id = %q, want 1,2,3", got)
		}
		w.Write([]byte("<PubmedArticleSet></PubmedArticleSet>"))
	}))
	defer ts.Close()

	oldBase := fetchBase
	fetchBase = ts.URL
	defer func() { fetchBase = oldBase }()

	c := NewClient(testCfg())
	body, err := c.Fetch(context.Background(), []string{"1", "2", "3"})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !strings.Contains(string(body), "PubmedArticleSet") {
		t.Errorf("unexpected body %q", body)
	}
}

func TestFetchEmptyIDs(t *testing.T) {
	c := NewClient(testCfg())
	if _, err := c.Fetch(context.Background(), nil); err == nil {
		t.Fatal("Fetch() with no ids should fail")
	}
}

func TestFetchRetriesThrottling(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("<PubmedArticleSet></PubmedArticleSet>"))
	}))
	defer ts.Close()

	oldBase := fetchBase
	fetchBase = ts.URL
	defer func() { fetchBase = oldBase }()

	c := NewClient(testCfg())
	if _, err := c.Fetch(context.Background(), []string{"1"}); err != nil {
		t.Fatalf("Fetch() error after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
