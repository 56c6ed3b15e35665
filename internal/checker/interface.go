// Package checker decides whether a line looks like a URL and, for those that
// do, requests it once and classifies the response status.
package checker

import (
	"context"
	"urlcheck/pkg/domain"
)

// Checker issues one request for URL and reports its outcome. Implementations
// never return an error separately: failures are carried by the Outcome.
//
//go:generate mockgen -package mockchecker -source=interface.go -destination=mock/mockchecker.go *
type Checker interface {
	Check(ctx context.Context, URL string) domain.Outcome
}
