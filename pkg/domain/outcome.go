package domain

// Verdict classifies a successful check.
type Verdict int

const (
	// VerdictNone is the zero value and is carried by failed outcomes.
	VerdictNone Verdict = iota
	// VerdictOk is reported for a 200 response.
	VerdictOk
	// VerdictRedirect is reported for 300 and 301 responses.
	VerdictRedirect
)

// String returns the annotation written next to the URL.
func (v Verdict) String() string {
	switch v {
	case VerdictOk:
		return "Ok"
	case VerdictRedirect:
		return "Redirect"
	default:
		return "Failed"
	}
}

// Outcome is the result of checking one URL. It is either Ok (Err is nil and
// Verdict is set) or Failed (Err carries the reason).
type Outcome struct {
	// URL is the checked URL exactly as it appeared in the input.
	URL string
	// StatusCode is the HTTP status received, or 0 when no response arrived.
	StatusCode int
	// Verdict is set for successful outcomes only.
	Verdict Verdict
	// Err is the failure reason, nil on success.
	Err error
}

// OkOutcome builds a successful outcome.
func OkOutcome(url string, statusCode int, verdict Verdict) Outcome {
	return Outcome{URL: url, StatusCode: statusCode, Verdict: verdict}
}

// FailedOutcome builds a failed outcome.
func FailedOutcome(url string, statusCode int, err error) Outcome {
	return Outcome{URL: url, StatusCode: statusCode, Err: err}
}

// OK reports whether the check succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Line returns the annotated form "<url> (Ok)" or "<url> (Redirect)" for a
// successful outcome, and the failure reason otherwise.
func (o Outcome) Line() string {
	if o.Err != nil {
		return o.Err.Error()
	}

	return o.URL + " (" + o.Verdict.String() + ")"
}

// Summary accumulates the counters of a run.
type Summary struct {
	// Succeeded counts Ok outcomes.
	Succeeded int
	// Failed counts failed outcomes.
	Failed int
	// Rejected counts input lines dropped by validation. These are not failures.
	Rejected int
}

// Add folds one outcome into the summary.
func (s *Summary) Add(o Outcome) {
	if o.OK() {
		s.Succeeded++

		return
	}
	s.Failed++
}

// Checked returns the number of URLs that were actually requested.
func (s Summary) Checked() int { return s.Succeeded + s.Failed }
