// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

func TestMain(m *testing.M) {
	httputil.RetryBaseDelay = time.Millisecond
	m.Run()
}

func TestEnsureURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare domain", "example.com", "http://example.com", false},
		{"www domain", "www.example.com", "http://www.example.com", false},
		{"http scheme kept", "http://example.com", "http://example.com", false},
		{"https scheme kept", "https://example.com/blog", "https://example.com/blog", false},
		{"port and path", "example.com:8080/a/b", "http://example.com:8080/a/b", false},
		{"spaces rejected", "not a url??", "", true},
		{"whitespace rejected", "foo bar.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnsureURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("EnsureURL(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnsureURL(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("EnsureURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	html := `<html><head><style>body { color: red }</style></head>
<body>
  <script>var x = 1;</script>
  <h1>Launch   Day</h1>
  <p>We shipped
  the thing.</p>
  <noscript>enable js</noscript>
</body></html>`

	got, err := ExtractText(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	want := "Launch Day We shipped the thing."
	if got != want {
		t.Errorf("ExtractText = %q, want %q", got, want)
	}
}

func TestExtractText_CapsLength(t *testing.T) {
	html := "<body><p>" + strings.Repeat("a", 50) + "</p></body>"

	got, err := ExtractText(strings.NewReader(html), 10)
	if err != nil {
		t.Fatalf("ExtractText returned error: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		web   string
		given string
		want  string
	}{
		{"both", "web text", "user text", "web text\n\nuser text"},
		{"web only", "web text", "", "web text"},
		{"given only", "", "user text", "user text"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merge(tt.web, tt.given); got != tt.want {
				t.Errorf("Merge(%q, %q) = %q, want %q", tt.web, tt.given, got, tt.want)
			}
		})
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Hello from the page</p></body></html>`)
	}))
	defer ts.Close()

	f := NewHTTPFetcher(types.FetchConfig{})
	got, err := f.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got != "Hello from the page" {
		t.Errorf("Fetch = %q", got)
	}
}

func TestHTTPFetcher_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer ts.Close()

	f := NewHTTPFetcher(types.FetchConfig{})
	if _, err := f.Fetch(context.Background(), ts.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

// stubFetcher returns a fixed result or error.
type stubFetcher struct {
	text string
	err  error
}

func (s stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func TestAcquire_MergesFetchedAndGiven(t *testing.T) {
	req := types.PostRequest{WebsiteURL: "example.com", GivenContent: "notes"}

	got := Acquire(context.Background(), stubFetcher{text: "page text"}, req, io.Discard)
	if got != "page text\n\nnotes" {
		t.Errorf("Acquire = %q", got)
	}
}

func TestAcquire_FetchFailureFallsBackToGiven(t *testing.T) {
	req := types.PostRequest{WebsiteURL: "not a url??", GivenContent: "notes"}
	var warnings strings.Builder

	got := Acquire(context.Background(), stubFetcher{err: errors.New("invalid URL")}, req, &warnings)
	if got != "notes" {
		t.Errorf("Acquire = %q, want %q", got, "notes")
	}
	if !strings.Contains(warnings.String(), "warning") {
		t.Errorf("expected a warning, got %q", warnings.String())
	}
}

func TestAcquire_NoInputsIsEmpty(t *testing.T) {
	got := Acquire(context.Background(), stubFetcher{}, types.PostRequest{}, io.Discard)
	if got != "" {
		t.Errorf("Acquire = %q, want empty", got)
	}
}
