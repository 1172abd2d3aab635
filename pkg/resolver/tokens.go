package resolver

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are tokens that carry no signal for matching. Kept small on
// purpose; over-aggressive filtering hurts short requests.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "can": {}, "do": {},
	"does": {}, "for": {}, "from": {}, "how": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "me": {}, "my": {}, "of": {}, "on": {},
	"or": {}, "please": {}, "that": {}, "the": {}, "this": {},
	"to": {}, "what": {}, "whats": {}, "with": {}, "you": {},
}

// normalize lowercases s and collapses runs of whitespace, for
// whole-string comparison at the Exact tier.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenize splits s into lowercase content tokens: non-alphanumeric
// runes separate tokens, single-character tokens and stopwords are
// dropped. The result is deduplicated and sorted.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		seen[f] = struct{}{}
	}

	tokens := make([]string, 0, len(seen))
	for t := range seen {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// overlap returns the tokens present in both sorted slices.
func overlap(a, b []string) []string {
	var common []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			common = append(common, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return common
}
