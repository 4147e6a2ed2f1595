package glob

import (
	"strings"

	"github.com/ImSingee/go-ex/ee"
	"github.com/gobwas/glob"
)

// Matcher matches plugin ids against a set of glob patterns.
// A pattern without glob meta characters is an exact match.
type Matcher struct {
	patterns []glob.Glob
	raw      []string
}

func NewMatcher(patterns ...string) (*Matcher, error) {
	m := &Matcher{raw: patterns}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, ee.Wrapf(err, "invalid pattern `%s`", pattern)
		}
		m.patterns = append(m.patterns, g)
	}

	return m, nil
}

func (m *Matcher) Match(id string) bool {
	for _, g := range m.patterns {
		if g.Match(id) {
			return true
		}
	}

	return false
}

func (m *Matcher) String() string {
	return strings.Join(m.raw, ", ")
}

// IsPattern reports whether s contains glob meta characters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, `*?[]{}\`)
}
