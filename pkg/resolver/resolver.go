// Package resolver maps a free-text request to at most one skill in a
// registry, using a fixed-priority fallback chain: exact name or alias
// match, then token-overlap against descriptions, then category keyword,
// then no match. Resolution is a pure function over the registry
// snapshot; "no match" is a normal outcome, not an error.
package resolver

import (
	"strings"

	"github.com/jingkaihe/skillroute/pkg/skills"
)

// Tier identifies which rule of the fallback chain produced a match.
type Tier int

const (
	// TierNone means no skill matched; the caller should state that no
	// skill was found and proceed with best-effort general handling.
	TierNone Tier = iota
	// TierExact is a case-insensitive equality match on a skill name or alias.
	TierExact
	// TierSemantic is a token-overlap match against names, aliases and descriptions.
	TierSemantic
	// TierCategory matches a category keyword in the request.
	TierCategory
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierSemantic:
		return "semantic"
	case TierCategory:
		return "category"
	default:
		return "none"
	}
}

// MatchResult is the outcome of a single resolution.
type MatchResult struct {
	// MatchedID is the name of the matched skill, empty when Tier is TierNone.
	MatchedID string `json:"matchedId,omitempty"`
	// Tier is the rule that produced the match.
	Tier Tier `json:"-"`
	// TierName is the tier in wire form.
	TierName string `json:"tier"`
	// Confidence is an informal score in [0,1]: 1 for exact matches, the
	// overlap ratio for semantic matches.
	Confidence float64 `json:"confidence"`
	// MatchedTokens lists the request tokens that overlapped the skill,
	// populated at the semantic tier.
	MatchedTokens []string `json:"matchedTokens,omitempty"`
}

// Matched reports whether any skill was found.
func (m MatchResult) Matched() bool {
	return m.Tier != TierNone
}

// DefaultSemanticThreshold is the minimum overlap ratio for a semantic
// match.
const DefaultSemanticThreshold = 0.3

// Resolver resolves requests against a registry. The zero value is not
// usable; construct with New.
type Resolver struct {
	threshold float64
}

// Option configures a Resolver
type Option func(*Resolver)

// WithSemanticThreshold overrides the minimum overlap ratio for the
// semantic tier.
func WithSemanticThreshold(threshold float64) Option {
	return func(r *Resolver) {
		if threshold > 0 {
			r.threshold = threshold
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{threshold: DefaultSemanticThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies a request against the registry. The tiers run in
// strict priority order and the first hit wins; identical inputs always
// produce identical results.
func (r *Resolver) Resolve(registry *skills.Registry, request string) MatchResult {
	if registry == nil || registry.Len() == 0 || strings.TrimSpace(request) == "" {
		return noMatch()
	}

	if result, ok := r.resolveExact(registry, request); ok {
		return result
	}
	if result, ok := r.resolveSemantic(registry, request); ok {
		return result
	}
	if result, ok := r.resolveCategory(registry, request); ok {
		return result
	}

	return noMatch()
}

func noMatch() MatchResult {
	return MatchResult{Tier: TierNone, TierName: TierNone.String()}
}

// resolveExact checks case-insensitive, whitespace-normalized equality of
// the request against every skill name and alias. Records are visited in
// name order so the result is independent of map iteration.
func (r *Resolver) resolveExact(registry *skills.Registry, request string) (MatchResult, bool) {
	normalized := normalize(request)

	for _, skill := range registry.Records() {
		if normalize(skill.Name) == normalized {
			return MatchResult{
				MatchedID:  skill.Name,
				Tier:       TierExact,
				TierName:   TierExact.String(),
				Confidence: 1.0,
			}, true
		}
		for _, alias := range skill.Aliases {
			if normalize(alias) == normalized {
				return MatchResult{
					MatchedID:  skill.Name,
					Tier:       TierExact,
					TierName:   TierExact.String(),
					Confidence: 1.0,
				}, true
			}
		}
	}

	return MatchResult{}, false
}

// resolveSemantic scores every skill by the ratio of request content
// tokens found in the skill's token pool (name segments, aliases,
// description). A skill qualifies with at least two overlapping tokens
// (one when the request only has one content token) and a ratio at or
// above the threshold. The best ratio wins; ties go to the smaller name.
func (r *Resolver) resolveSemantic(registry *skills.Registry, request string) (MatchResult, bool) {
	requestTokens := tokenize(request)
	if len(requestTokens) == 0 {
		return MatchResult{}, false
	}

	minOverlap := 2
	if len(requestTokens) == 1 {
		minOverlap = 1
	}

	var best MatchResult
	for _, skill := range registry.Records() {
		pool := tokenize(skill.Name + " " + strings.Join(skill.Aliases, " ") + " " + skill.Description)
		common := overlap(requestTokens, pool)
		if len(common) < minOverlap {
			continue
		}

		score := float64(len(common)) / float64(len(requestTokens))
		if score < r.threshold {
			continue
		}

		// Records() is name-ordered, so a strict improvement check
		// breaks ties toward the lexicographically smaller name.
		if score > best.Confidence {
			best = MatchResult{
				MatchedID:     skill.Name,
				Tier:          TierSemantic,
				TierName:      TierSemantic.String(),
				Confidence:    score,
				MatchedTokens: common,
			}
		}
	}

	return best, best.Matched()
}

// resolveCategory returns a skill from a category named in the request.
// Which record wins within a category is unspecified upstream; the
// lexicographically smallest name is used so resolution stays
// deterministic.
func (r *Resolver) resolveCategory(registry *skills.Registry, request string) (MatchResult, bool) {
	requestTokens := tokenize(request)

	for _, category := range skills.Categories {
		found := false
		for _, token := range requestTokens {
			if token == category {
				found = true
				break
			}
		}
		if !found {
			continue
		}

		inCategory := registry.InCategory(category)
		if len(inCategory) == 0 {
			continue
		}

		return MatchResult{
			MatchedID:  inCategory[0].Name,
			Tier:       TierCategory,
			TierName:   TierCategory.String(),
			Confidence: 0.25,
		}, true
	}

	return MatchResult{}, false
}
