package skills

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// FilterByAllowlist returns a registry containing only the skills whose
// name matches at least one of the glob patterns (e.g. "crypto-*").
// An empty pattern list keeps everything.
func FilterByAllowlist(r *Registry, patterns []string) (*Registry, error) {
	if len(patterns) == 0 {
		return r, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid allowlist pattern %q", pattern)
		}
		globs = append(globs, g)
	}

	filtered := make(map[string]*Skill)
	for name, skill := range r.records {
		for _, g := range globs {
			if g.Match(name) {
				filtered[name] = skill
				break
			}
		}
	}

	return &Registry{records: filtered}, nil
}
