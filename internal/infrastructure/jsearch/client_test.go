package jsearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Search_BuildsUpstreamRequest(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"job_id":"j-1","job_title":"Engineer","employer_name":"Acme","job_is_remote":true}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "jsearch.p.rapidapi.com", nil)
	raws, err := c.Search(context.Background(), Query{
		Text:            "engineer",
		Country:         "in",
		EmploymentTypes: []string{"FULLTIME", "PARTTIME"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(raws) != 1 || raws[0].JobID != "j-1" || !raws[0].IsRemote {
		t.Fatalf("unexpected results: %+v", raws)
	}

	if gotReq.URL.Path != "/search" {
		t.Fatalf("unexpected path %q", gotReq.URL.Path)
	}
	q := gotReq.URL.Query()
	if q.Get("query") != "engineer" || q.Get("country") != "in" {
		t.Fatalf("unexpected query params: %v", q)
	}
	if q.Get("page") != "1" || q.Get("num_pages") != "1" || q.Get("date_posted") != "all" {
		t.Fatalf("fixed paging params missing: %v", q)
	}
	if q.Get("employment_types") != "FULLTIME,PARTTIME" {
		t.Fatalf("employment types not comma-joined: %q", q.Get("employment_types"))
	}
	if q.Has("location") {
		t.Fatalf("country query must not carry a location param")
	}
	if gotReq.Header.Get("X-RapidAPI-Key") != "test-key" {
		t.Fatalf("missing API key header")
	}
	if gotReq.Header.Get("X-RapidAPI-Host") != "jsearch.p.rapidapi.com" {
		t.Fatalf("missing API host header")
	}
}

func TestClient_Search_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "h", nil)
	_, err := c.Search(context.Background(), Query{Text: "engineer"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", statusErr.Status)
	}
}

func TestClient_Search_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "k", "h", nil)
	_, err := c.Search(context.Background(), Query{Text: "engineer"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
