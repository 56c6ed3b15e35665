// Package domain contains the core types shared across urlcheck: the outcome
// of checking a single URL and the summary of a whole run. They carry no
// infrastructure concerns so every package can depend on them.
package domain
