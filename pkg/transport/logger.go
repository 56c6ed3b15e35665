// Package transport contains http.RoundTripper middlewares used by the checker's
// HTTP client.
package transport

import (
	"net/http"
	"time"
	"urlcheck/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoundTripperFunc allows using a function as an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls f(r).
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithLogger returns a RoundTripper that logs every outbound request at debug
// level after it completes. When next is nil, http.DefaultTransport is used.
func WithLogger(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		ctx := r.Context()
		if !logger.IsDebug(ctx) {
			return next.RoundTrip(r) //nolint: wrapcheck
		}

		requestID := uuid.New().String()
		start := time.Now()

		resp, err := next.RoundTrip(r)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.Float64("latency", time.Since(start).Seconds()),
		}
		if err != nil {
			logger.Debug(ctx, "outbound request failed", append(fields, zap.Error(err))...)

			return nil, err //nolint: wrapcheck
		}

		logger.Debug(ctx, "outbound request", append(fields, zap.Int("status_code", resp.StatusCode))...)

		return resp, nil
	})
}
