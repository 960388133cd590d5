package matcher

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// RegexMatcher matches lines against a /body/flags regular expression.
type RegexMatcher struct {
	source string
	flags  string
	re     *regexp2.Regexp
}

// Match reports whether the expression matches anywhere in line.
func (m *RegexMatcher) Match(line string) bool {
	return evaluate(m.re, line)
}

// IsRegex always returns true.
func (m *RegexMatcher) IsRegex() bool { return true }

// Source returns the pattern as given, slashes and flags included.
func (m *RegexMatcher) Source() string { return m.source }

// Flags returns the effective flags, including an i added for ignore-case.
func (m *RegexMatcher) Flags() string { return m.flags }

func (m *RegexMatcher) sealed() {}

// compileFlagged compiles body with ECMAScript flag letters.
//
//	i  ignore case
//	m  ^ and $ match at line breaks
//	s  dot matches line breaks
//	y  anchored at the start of the line
//	g  accepted, no effect on a single test
//	d  accepted, no effect on a single test
//	u  accepted, lines are always matched by code point
func compileFlagged(body, flags string) (*regexp2.Regexp, error) {
	opt := regexp2.RegexOptions(regexp2.ECMAScript)
	sticky := false
	seen := make(map[rune]bool, len(flags))

	for _, f := range flags {
		if seen[f] {
			return nil, fmt.Errorf("duplicate flag %q", f)
		}
		seen[f] = true

		switch f {
		case 'i':
			opt |= regexp2.IgnoreCase
		case 'm':
			opt |= regexp2.Multiline
		case 's':
			opt |= regexp2.Singleline
		case 'y':
			sticky = true
		case 'g', 'd', 'u':
		default:
			return nil, fmt.Errorf("invalid flag %q", f)
		}
	}

	if sticky {
		body = `\G(?:` + body + `)`
	}

	re, err := regexp2.Compile(body, opt)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// describeFlags is used by String for diagnostics.
func describeFlags(flags string) string {
	if flags == "" {
		return "none"
	}
	return strings.Join(strings.Split(flags, ""), ",")
}

// String renders the matcher for log output.
func (m *RegexMatcher) String() string {
	return fmt.Sprintf("regex %s (flags: %s)", m.source, describeFlags(m.flags))
}
