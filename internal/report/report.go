// Package report writes a machine-readable JSON summary of a run.
package report

import (
	"os"
	"time"
	"urlcheck/pkg/domain"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Report describes a finished run.
type Report struct {
	Summary    domain.Summary
	OutputFile string // empty in target mode
	StartedAt  time.Time
	Duration   time.Duration
}

// Encode writes r as a JSON object to e.
func (r Report) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("succeeded")
	e.Int(r.Summary.Succeeded)
	e.FieldStart("failed")
	e.Int(r.Summary.Failed)
	e.FieldStart("rejected")
	e.Int(r.Summary.Rejected)
	if r.OutputFile != "" {
		e.FieldStart("outputFile")
		e.Str(r.OutputFile)
	}
	e.FieldStart("startedAt")
	e.Str(r.StartedAt.UTC().Format(time.RFC3339))
	e.FieldStart("durationSeconds")
	e.Float64(r.Duration.Seconds())
	e.ObjEnd()
}

// WriteFile encodes r and replaces the file at path with it.
func WriteFile(path string, r Report) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	r.Encode(e)
	e.Raw([]byte("\n"))

	if err := os.WriteFile(path, e.Bytes(), 0o644); err != nil { //nolint: gosec
		return errors.Wrap(err, "could not write report")
	}

	return nil
}
