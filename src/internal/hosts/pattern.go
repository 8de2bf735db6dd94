package hosts

import (
	"regexp"
	"strings"
)

// Pattern matches host names against an exact name or a `*` wildcard pattern.
type Pattern struct {
	source string
	exact  string
	re     *regexp.Regexp
}

// CompilePattern compiles a host query. Without `*` it matches the name
// case-insensitively. Each `*` matches any run of characters (including none)
// and the whole host must match.
func CompilePattern(pattern string) Pattern {
	if !strings.Contains(pattern, "*") {
		return Pattern{source: pattern, exact: strings.ToLower(pattern)}
	}

	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	expr := "(?is)^" + strings.Join(parts, ".*") + "$"

	return Pattern{source: pattern, re: regexp.MustCompile(expr)}
}

// Match reports whether host satisfies the pattern.
func (p Pattern) Match(host string) bool {
	if p.re != nil {
		return p.re.MatchString(host)
	}
	return strings.ToLower(host) == p.exact
}

// String returns the pattern as it was given.
func (p Pattern) String() string {
	return p.source
}
