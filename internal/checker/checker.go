package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/metrics"
	"urlcheck/pkg/serrors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// maxDrainBytes bounds how much of a response body is read before closing it,
// so keep-alive connections can be reused without downloading whole pages.
const maxDrainBytes = 4 << 10

// HTTPChecker checks URLs with a single GET request. It is safe for
// concurrent use.
type HTTPChecker struct {
	httpClient *http.Client // httpClient performs the requests; see NewHTTPClient
	checks     metric.Int64Counter
	duration   metric.Float64Histogram
}

// Ensure HTTPChecker conforms to the Checker interface at compile time.
var _ Checker = (*HTTPChecker)(nil)

// New constructs an HTTPChecker. A nil meter disables metrics.
func New(httpClient *http.Client, meter metric.Meter) (*HTTPChecker, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(metrics.MeterName)
	}

	checks, err := meter.Int64Counter("urlcheck.checks",
		metric.WithDescription("Number of URLs checked, by verdict."))
	if err != nil {
		return nil, fmt.Errorf("could not create checks counter: %w", err)
	}
	duration, err := meter.Float64Histogram("urlcheck.check.duration",
		metric.WithDescription("Duration of a single URL check."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create check duration histogram: %w", err)
	}

	return &HTTPChecker{
		httpClient: httpClient,
		checks:     checks,
		duration:   duration,
	}, nil
}

// Check requests URL once and classifies the response with Classify. Network
// failures (DNS, refused connection, TLS, timeout, cancellation) yield a failed
// outcome of kind serrors.ErrRequestFailed.
func (c *HTTPChecker) Check(ctx context.Context, URL string) domain.Outcome {
	start := time.Now()
	outcome := c.check(ctx, URL)

	verdict := attribute.String("verdict", "failed")
	switch outcome.Verdict {
	case domain.VerdictOk:
		verdict = attribute.String("verdict", "ok")
	case domain.VerdictRedirect:
		verdict = attribute.String("verdict", "redirect")
	case domain.VerdictNone:
	}
	c.checks.Add(ctx, 1, metric.WithAttributes(verdict))
	c.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(verdict))

	return outcome
}

func (c *HTTPChecker) check(ctx context.Context, URL string) domain.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return domain.FailedOutcome(URL, 0, serrors.Wrap(serrors.ErrRequestFailed, err, ""))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FailedOutcome(URL, 0, serrors.Wrap(serrors.ErrRequestFailed, err, ""))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		_ = resp.Body.Close()
	}()

	return Classify(URL, resp.StatusCode)
}

// Classify maps a response status to an outcome: 200 is Ok, 300 and 301 are
// Redirect, anything else fails with serrors.ErrUnexpectedStatus.
func Classify(URL string, statusCode int) domain.Outcome {
	switch statusCode {
	case http.StatusOK:
		return domain.OkOutcome(URL, statusCode, domain.VerdictOk)
	case http.StatusMultipleChoices, http.StatusMovedPermanently:
		return domain.OkOutcome(URL, statusCode, domain.VerdictRedirect)
	default:
		return domain.FailedOutcome(URL, statusCode, serrors.With(serrors.ErrUnexpectedStatus,
			"Error checking URL: %s (status code: %s)", URL, statusLabel(statusCode)))
	}
}

// statusLabel renders a code with its reason phrase, e.g. "404 Not Found".
func statusLabel(statusCode int) string {
	text := http.StatusText(statusCode)
	if text == "" {
		text = "<unknown status code>"
	}

	return strconv.Itoa(statusCode) + " " + text
}
