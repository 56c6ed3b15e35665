// Package pipeline drives a run: it reads and filters candidate URLs, hands
// them to a checker.Checker and records the outcomes, in input order, to a Sink.
package pipeline

import (
	"context"
	"urlcheck/internal/checker"
	"urlcheck/internal/config"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/serrors"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure how a run dispatches checks.
type Options struct {
	// Concurrency is the maximum number of checks in flight. Values below 1
	// are treated as 1, which checks URLs strictly one after another.
	Concurrency int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Concurrency: cfg.Checker.Concurrency,
	}
}

// Pipeline wires a Checker to a Sink.
type Pipeline struct {
	checker checker.Checker
	options Options
}

// New constructs a Pipeline.
func New(c checker.Checker, options Options) *Pipeline {
	return &Pipeline{checker: c, options: options}
}

// CheckFile checks every valid line of inputPath and appends successful
// outcomes to outputPath. The input is read before the output file is opened,
// so an unreadable input never creates or touches the output. The returned
// string is the absolute output path.
func (p *Pipeline) CheckFile(ctx context.Context, inputPath, outputPath string) (domain.Summary, string, error) {
	lines, err := ReadCandidates(inputPath)
	if err != nil {
		return domain.Summary{}, "", err
	}
	urls, rejected := Filter(lines)

	sink, err := OpenFileSink(outputPath)
	if err != nil {
		return domain.Summary{}, "", err
	}

	summary, err := p.Run(ctx, urls, sink)
	summary.Rejected = rejected
	if closeErr := sink.Close(); closeErr != nil && err == nil {
		err = serrors.Wrap(serrors.ErrOutput, closeErr, "")
	}

	return summary, sink.Path(), err
}

// CheckTarget checks a single URL and records its outcome to sink. A target
// that does not look like a URL is reported to the sink with
// serrors.ErrInvalidURL and no request is made.
func (p *Pipeline) CheckTarget(ctx context.Context, target string, sink Sink) (domain.Summary, error) {
	if !checker.IsValidURL(target) {
		outcome := domain.FailedOutcome(target, 0, serrors.With(serrors.ErrInvalidURL, "invalid URL: %s", target))
		if err := sink.Record(outcome); err != nil {
			return domain.Summary{}, serrors.Wrap(serrors.ErrOutput, err, "")
		}

		return domain.Summary{Rejected: 1}, nil
	}

	return p.Run(ctx, []string{target}, sink)
}

// Run checks urls with at most Options.Concurrency requests in flight and
// records each outcome to sink in the order of urls, flushing before it
// returns. Failed checks only affect the summary. A sink error aborts the run
// with serrors.ErrOutput. If ctx is canceled, outcomes received so far stay
// recorded and ctx's error is returned.
func (p *Pipeline) Run(ctx context.Context, urls []string, sink Sink) (domain.Summary, error) {
	var summary domain.Summary

	ctx = logger.WithFields(ctx, zap.String("runID", uuid.New().String()))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limit := max(p.options.Concurrency, 1)
	logger.Debug(ctx, "starting checks", zap.Int("urls", len(urls)), zap.Int("concurrency", limit))

	// each check hands its outcome to its own slot so the loop below can
	// consume them in input order, whatever order they complete in.
	results := make([]chan domain.Outcome, len(urls))
	for i := range results {
		results[i] = make(chan domain.Outcome, 1)
	}

	var g errgroup.Group
	g.SetLimit(limit)
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for i, u := range urls {
			if ctx.Err() != nil {
				return
			}
			g.Go(func() error {
				results[i] <- p.checker.Check(ctx, u)

				return nil
			})
		}
	}()
	defer func() {
		cancel()
		<-dispatched
		_ = g.Wait()
	}()

	for i := range urls {
		var outcome domain.Outcome
		select {
		case outcome = <-results[i]:
		case <-ctx.Done():
			// an outcome that already arrived is kept even after cancellation
			select {
			case outcome = <-results[i]:
			default:
				return summary, interrupted(ctx, sink)
			}
		}

		if !outcome.OK() {
			// a failure caused by the interruption itself is not counted
			if ctx.Err() != nil {
				return summary, interrupted(ctx, sink)
			}
			logger.Debug(ctx, "URL check failed", zap.String("url", outcome.URL), zap.Error(outcome.Err))
		}

		if err := sink.Record(outcome); err != nil {
			return summary, serrors.Wrap(serrors.ErrOutput, err, "")
		}
		summary.Add(outcome)
	}

	if err := sink.Flush(); err != nil {
		return summary, serrors.Wrap(serrors.ErrOutput, err, "")
	}

	logger.Debug(ctx, "checks finished",
		zap.Int("checked", summary.Checked()),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

// interrupted flushes what was recorded so far and returns the reason the
// run stopped.
func interrupted(ctx context.Context, sink Sink) error {
	if err := sink.Flush(); err != nil {
		return serrors.Wrap(serrors.ErrOutput, err, "")
	}

	return errors.Wrap(context.Cause(ctx), "run interrupted")
}
