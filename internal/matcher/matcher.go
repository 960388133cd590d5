// Package matcher builds line predicates from user-supplied search patterns.
//
// A pattern of the form /body/flags is compiled as an ECMAScript-style regular
// expression; anything else is matched as a literal substring. Both forms are
// compiled with github.com/dlclark/regexp2 so that lookarounds and
// backreferences behave the way log-search users expect.
package matcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultTimeout bounds a single line evaluation.
const DefaultTimeout = 2 * time.Second

// Matcher is a compiled predicate over a single line of text.
// The only implementations are LiteralMatcher and RegexMatcher.
type Matcher interface {
	// Match reports whether line satisfies the pattern. Evaluation failures
	// count as a non-match.
	Match(line string) bool
	// IsRegex reports whether the pattern was given in /body/flags form.
	IsRegex() bool
	// Source returns the pattern as given by the user.
	Source() string

	sealed()
}

// InvalidPatternError is returned by Build when a /body/flags pattern does not compile.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface for InvalidPatternError.
func (e *InvalidPatternError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid regex pattern: %v", e.Err)
	}
	return "Invalid regex pattern"
}

// Unwrap returns the underlying compile error.
func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

type buildOptions struct {
	timeout time.Duration
}

// Option configures Build.
type Option func(*buildOptions)

// WithTimeout sets the per-line evaluation limit. A line whose evaluation
// exceeds it does not match. Zero or negative disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(o *buildOptions) {
		o.timeout = d
	}
}

// Build interprets pattern and compiles it into a Matcher.
func Build(pattern string, ignoreCase bool, opts ...Option) (Matcher, error) {
	bo := buildOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&bo)
	}

	if body, flags, ok := splitDelimited(pattern); ok {
		if ignoreCase && !strings.ContainsRune(flags, 'i') {
			flags += "i"
		}
		re, err := compileFlagged(body, flags)
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Err: err}
		}
		setTimeout(re, bo.timeout)
		return &RegexMatcher{source: pattern, flags: flags, re: re}, nil
	}

	opt := regexp2.RegexOptions(regexp2.ECMAScript)
	if ignoreCase {
		opt |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(EscapeLiteral(pattern), opt)
	if err != nil {
		// An escaped literal always compiles; report it the same way regardless.
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	setTimeout(re, bo.timeout)
	return &LiteralMatcher{source: pattern, ignoreCase: ignoreCase, re: re}, nil
}

// splitDelimited returns the body and flags of a /body/flags pattern. The
// closing slash must be the last one in the string and sit after index 0.
func splitDelimited(pattern string) (body, flags string, ok bool) {
	if !strings.HasPrefix(pattern, "/") {
		return "", "", false
	}
	last := strings.LastIndex(pattern, "/")
	if last <= 0 {
		return "", "", false
	}
	return pattern[1:last], pattern[last+1:], true
}

func setTimeout(re *regexp2.Regexp, d time.Duration) {
	if d > 0 {
		re.MatchTimeout = d
	}
}

// evaluate runs re against line. Any evaluation error, including a match
// timeout on pathological backtracking, is reported as no match so that a
// single line can never abort a scan.
func evaluate(re *regexp2.Regexp, line string) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	ok, err := re.MatchString(line)
	if err != nil {
		return false
	}
	return ok
}
