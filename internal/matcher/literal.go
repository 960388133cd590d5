package matcher

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// LiteralMatcher matches lines containing the pattern verbatim.
type LiteralMatcher struct {
	source     string
	ignoreCase bool
	re         *regexp2.Regexp
}

// Match reports whether line contains the literal.
func (m *LiteralMatcher) Match(line string) bool {
	return evaluate(m.re, line)
}

// IsRegex always returns false.
func (m *LiteralMatcher) IsRegex() bool { return false }

// Source returns the literal text.
func (m *LiteralMatcher) Source() string { return m.source }

func (m *LiteralMatcher) sealed() {}

// String renders the matcher for log output.
func (m *LiteralMatcher) String() string {
	if m.ignoreCase {
		return fmt.Sprintf("literal %q (ignore case)", m.source)
	}
	return fmt.Sprintf("literal %q", m.source)
}

// EscapeLiteral escapes every regular-expression metacharacter in s.
func EscapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(`.*+?^${}()|[]\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
