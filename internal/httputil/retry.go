// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable failures. Tests override this to avoid real sleeps.
var RetryBaseDelay = time.Second

const defaultMaxRetries = 2

// RetryableStatus reports whether an HTTP status code warrants a retry:
// 429 (Too Many Requests) and all 5xx responses.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// DoWithRetry executes an HTTP request and retries transport errors and
// retryable status codes with exponential backoff. The delay starts at
// RetryBaseDelay and doubles each attempt.
//
// When maxRetries is 0 or negative the default (2) is used. On each retry
// the stale response body is drained and closed, and the request body is
// rewound via GetBody (set by http.NewRequest for buffered readers). If the
// context is cancelled during a backoff wait the function returns ctx.Err().
// After exhausting retries the last response or transport error is returned
// as-is so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq.Body = body
		}

		resp, err := client.Do(attemptReq)
		if err == nil && !RetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		// Exhausted retries; hand back whatever the last attempt produced.
		if attempt >= maxRetries {
			return resp, err
		}

		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(1<<attempt) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
