package search

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single identifier match to guard against
// catastrophic backtracking.
var MatchTimeout = time.Second

// Pattern is a compiled SSID pattern. It must match the whole identifier, not
// a substring of it.
type Pattern struct {
	expr string
	re   *regexp2.Regexp
}

// Compile parses expr as a regular expression. Lookarounds and
// backreferences are supported. Matching is case-sensitive unless expr opts
// out with (?i).
func Compile(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, ErrMissingPattern
	}
	// Compiling expr on its own first rejects unbalanced groups that would
	// escape the anchors below.
	if _, err := regexp2.Compile(expr, regexp2.None); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, expr, err)
	}
	re, err := regexp2.Compile(`\A(?:`+expr+`)\z`, regexp2.None)
	if err != nil {
		// A free-spacing (?x) pattern can end in a # comment, which runs to
		// the end of the line and swallows the anchors. The newline ends the
		// comment and is ignored as whitespace in that mode.
		re, err = regexp2.Compile(`\A(?:`+expr+"\n"+`)\z`, regexp2.None)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, expr, err)
	}
	re.MatchTimeout = MatchTimeout
	return &Pattern{expr: expr, re: re}, nil
}

// Literal returns a pattern matching exactly s. It returns nil for an empty s.
func Literal(s string) *Pattern {
	if s == "" {
		return nil
	}
	p, err := Compile(regexp2.Escape(s))
	if err != nil {
		return nil
	}
	return p
}

// Match reports whether s matches the pattern in full. A match that errors
// out, such as on timeout, does not match.
func (p *Pattern) Match(s string) bool {
	if p == nil {
		return false
	}
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}
