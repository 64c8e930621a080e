package host

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Mask is a compiled group mask: a comma separated list of glob patterns,
// where a leading '!' excludes. An empty mask matches every group.
type Mask struct {
	include []glob.Glob
	exclude []glob.Glob
}

func CompileMask(mask string) (*Mask, error) {
	m := &Mask{}
	for _, part := range strings.Split(mask, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		negate := strings.HasPrefix(part, "!")
		if negate {
			part = strings.TrimSpace(part[1:])
			if part == "" {
				return nil, fmt.Errorf("invalid group mask %q: empty exclusion", mask)
			}
		}
		g, err := glob.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid group mask pattern %q: %w", part, err)
		}
		if negate {
			m.exclude = append(m.exclude, g)
		} else {
			m.include = append(m.include, g)
		}
	}
	return m, nil
}

// Match reports whether group is selected by the mask.
func (m *Mask) Match(group string) bool {
	for _, g := range m.exclude {
		if g.Match(group) {
			return false
		}
	}
	if len(m.include) == 0 {
		return true
	}
	for _, g := range m.include {
		if g.Match(group) {
			return true
		}
	}
	return false
}

// InRange reports whether closeTime lies in the inclusive [from, to] window.
func InRange(closeTime, from, to int64) bool {
	return closeTime >= from && closeTime <= to
}
