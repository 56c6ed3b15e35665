package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"urlcheck/pkg/domain"
	"urlcheck/pkg/serrors"

	"github.com/go-faster/errors"
)

// Sink receives outcomes in input order. Each implementation decides which
// outcomes it shows.
type Sink interface {
	// Record writes one outcome.
	Record(outcome domain.Outcome) error
	// Flush pushes buffered output to its destination.
	Flush() error
}

// FileSink appends successful outcomes to a file, one "<url> (Ok) " or
// "<url> (Redirect) " line each. Failed outcomes are not written. Existing
// content is preserved.
type FileSink struct {
	file *os.File
	w    *bufio.Writer
	path string
}

var _ Sink = (*FileSink)(nil)

// OpenFileSink opens path for appending, creating it when absent.
func OpenFileSink(path string) (*FileSink, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrOutput, errors.Wrap(err, "could not resolve output path"), "")
	}

	f, err := os.OpenFile(abs, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint: gosec
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrOutput, errors.Wrap(err, "could not open output file"), "")
	}

	return &FileSink{file: f, w: bufio.NewWriter(f), path: abs}, nil
}

// Record implements Sink.
func (s *FileSink) Record(outcome domain.Outcome) error {
	if !outcome.OK() {
		return nil
	}
	if _, err := s.w.WriteString(outcome.Line() + " \n"); err != nil {
		return errors.Wrap(err, "could not write result")
	}

	return nil
}

// Flush implements Sink.
func (s *FileSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return errors.Wrap(err, "could not flush output file")
	}

	return nil
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	flushErr := s.Flush()
	if err := s.file.Close(); err != nil {
		return errors.Wrap(err, "could not close output file")
	}

	return flushErr
}

// Path returns the absolute path of the output file.
func (s *FileSink) Path() string { return s.path }

// TerminalSink prints every outcome on its own line: the annotated URL on
// success, the reason on failure.
type TerminalSink struct {
	w io.Writer
}

var _ Sink = (*TerminalSink)(nil)

// NewTerminalSink returns a TerminalSink writing to w, typically os.Stdout.
func NewTerminalSink(w io.Writer) *TerminalSink {
	return &TerminalSink{w: w}
}

// Record implements Sink.
func (s *TerminalSink) Record(outcome domain.Outcome) error {
	if _, err := fmt.Fprintln(s.w, outcome.Line()); err != nil {
		return errors.Wrap(err, "could not print result")
	}

	return nil
}

// Flush implements Sink. Terminal output is not buffered.
func (s *TerminalSink) Flush() error { return nil }
