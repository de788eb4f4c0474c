// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content acquires source material for the pipeline: it fetches and
// extracts visible text from a web page, merges it with caller-supplied
// literal text, and produces the single content blob the downstream stages
// consume. Fetch failures degrade to "no web content"; they never abort a
// run.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// DefaultMaxContentLength caps extracted page text when the config does not
// override it.
const DefaultMaxContentLength = 10000

const defaultFetchTimeout = 120 * time.Second

// urlPattern checks general URL shape: optional scheme and www prefix, a
// domain, then optional TLD, port, and path.
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?(www\.)?([a-zA-Z0-9.-]+)(\.[a-zA-Z]{2,})?(:\d+)?(/[^\s]*)?$`)

// EnsureURL normalizes a URL string, prefixing http:// when no scheme is
// given, and rejects strings that fail the general URL-shape check.
func EnsureURL(s string) (string, error) {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "http://" + s
	}
	if !urlPattern.MatchString(s) {
		return "", fmt.Errorf("invalid URL: %q", s)
	}
	return s, nil
}

// Fetcher retrieves extracted page text for a URL. The pipeline depends on
// this interface so tests can supply a stub.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches pages over HTTP and extracts their visible text.
type HTTPFetcher struct {
	cfg    types.FetchConfig
	client *http.Client
}

// NewHTTPFetcher builds a fetcher from cfg, applying the default timeout and
// content cap when unset.
func NewHTTPFetcher(cfg types.FetchConfig) *HTTPFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultFetchTimeout
	}
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = DefaultMaxContentLength
	}
	return &HTTPFetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch validates and normalizes url, downloads the page, and returns up to
// MaxContentLength characters of visible text.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	validated, err := EnsureURL(url)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validated, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", validated, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, validated)
	}

	return ExtractText(resp.Body, f.cfg.MaxContentLength)
}

// ExtractText parses HTML and returns its visible text with whitespace
// collapsed, capped at max characters. Script, style, and other non-content
// elements are dropped.
func ExtractText(r io.Reader, max int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	if max > 0 {
		if runes := []rune(text); len(runes) > max {
			text = string(runes[:max])
		}
	}
	return text, nil
}

// Merge concatenates fetched web content and literal text, web content
// first, separated by a blank line. Empty parts are dropped; the result is
// empty when both are.
func Merge(webContent, given string) string {
	var parts []string
	if webContent != "" {
		parts = append(parts, webContent)
	}
	if given != "" {
		parts = append(parts, given)
	}
	return strings.Join(parts, "\n\n")
}

// Acquire runs the acquisition stage for one request. Fetch errors are
// reported as warnings on w and absorbed; the blob falls back to the literal
// content alone.
func Acquire(ctx context.Context, f Fetcher, req types.PostRequest, w io.Writer) string {
	var web string
	if req.WebsiteURL != "" {
		text, err := f.Fetch(ctx, req.WebsiteURL)
		if err != nil {
			fmt.Fprintf(w, "warning: fetching %s: %v\n", req.WebsiteURL, err)
		} else {
			web = text
		}
	}
	return Merge(web, req.GivenContent)
}
