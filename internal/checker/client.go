package checker

import (
	"net/http"
	"time"
	"urlcheck/pkg/transport"
)

// NewHTTPClient returns the client used for checks. Redirects are never
// followed so the first response's status is the one classified. A zero
// timeout keeps net/http's default of no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: transport.WithLogger(http.DefaultTransport),
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
