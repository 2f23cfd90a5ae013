// internal/common/httpclient/client.go
package httpclient

import (
	"net/http"
	"time"
)

// New returns the outbound HTTP client shared by all provider adapters. The
// timeout is the hard per-call ceiling; request contexts cancel earlier when
// the browser disconnects.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
	}
}
