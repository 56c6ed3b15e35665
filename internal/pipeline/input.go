package pipeline

import (
	"os"
	"strings"
	"unicode/utf8"
	"urlcheck/internal/checker"
	"urlcheck/pkg/serrors"

	"github.com/go-faster/errors"
)

// ReadCandidates reads the whole input file and splits it on '\n'. Lines are
// returned untouched, including empty ones and any trailing '\r'. Missing,
// unreadable or non UTF-8 files fail with serrors.ErrInput.
func ReadCandidates(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInput, errors.Wrap(err, "could not read input file"), "")
	}
	if !utf8.Valid(b) {
		return nil, serrors.With(serrors.ErrInput, "input file %s is not valid UTF-8 text", path)
	}

	return strings.Split(string(b), "\n"), nil
}

// Filter keeps the lines accepted by checker.IsValidURL in their input
// order and reports how many were dropped.
func Filter(lines []string) ([]string, int) {
	valid := make([]string, 0, len(lines))
	for _, line := range lines {
		if checker.IsValidURL(line) {
			valid = append(valid, line)
		}
	}

	return valid, len(lines) - len(valid)
}
