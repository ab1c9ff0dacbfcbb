package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	c := NewClient(WithMaxRetries(5))
	c.baseDelay = time.Millisecond

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.GetJSON(context.Background(), server.URL, &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if !out.OK {
		t.Error("response not decoded")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("request count = %d, want 3", got)
	}
}

func TestGetJSONNotFoundIsTerminal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient()
	c.baseDelay = time.Millisecond

	err := c.GetJSON(context.Background(), server.URL, nil)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || !httpErr.IsNotFound() {
		t.Fatalf("expected a 404 HTTPError, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("404 should unwrap to ErrNotFound")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("404 was retried: %d requests", got)
	}
}

func TestJSONSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient()
	in := map[string]string{"name": "rand"}
	if err := c.JSON(context.Background(), http.MethodPut, server.URL, in, nil); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
}

type fakeURLs struct{}

func (fakeURLs) Registry(name, version string) string      { return "https://example.com/" + name }
func (fakeURLs) Download(name, version string) string      { return "" }
func (fakeURLs) Documentation(name, version string) string { return "https://docs.example.com/" + name }
func (fakeURLs) PURL(name, version string) string          { return "pkg:cargo/" + name }

func TestBuildURLsSkipsEmpty(t *testing.T) {
	got := BuildURLs(fakeURLs{}, "rand", "0.9.2")
	if len(got) != 3 {
		t.Fatalf("url count = %d, want 3: %v", len(got), got)
	}
	if _, ok := got["download"]; ok {
		t.Error("empty download URL should be omitted")
	}
}
