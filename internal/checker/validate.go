package checker

import "regexp"

// urlPattern accepts an http(s) URL with an optional "www." prefix, a host,
// a 1-6 character top-level domain and an optional path, query and fragment.
// The whole string must match.
var urlPattern = regexp.MustCompile( //nolint: gochecknoglobals
	`^https?://(www\.)?[-a-zA-Z0-9@:%._\+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_\+.~#?&//=]*)$`,
)

// IsValidURL reports whether text is shaped like a URL worth checking. It does
// no I/O and is safe for concurrent use.
func IsValidURL(text string) bool {
	return urlPattern.MatchString(text)
}
