// Package respond renders the human-readable response template that
// accompanies a resolution: which skill(s) were used, the result, and
// the suggested next step. When nothing matched, the rendered text says
// so explicitly before falling back to general handling.
package respond

import (
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillroute/pkg/resolver"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

// Response holds the three free-text fields of the response template.
type Response struct {
	SkillsUsed []string
	Result     string
	NextStep   string
}

const responseTemplate = `Skill(s) used: {{if .SkillsUsed}}{{join .SkillsUsed ", "}}{{else}}none{{end}}
Result: {{.Result}}
Next step: {{.NextStep}}
`

// FromMatch builds a Response for a resolution outcome.
func FromMatch(registry *skills.Registry, request string, match resolver.MatchResult) Response {
	if !match.Matched() {
		return Response{
			Result:   "no skill found for \"" + request + "\"",
			NextStep: "proceed with best-effort general handling",
		}
	}

	response := Response{
		SkillsUsed: []string{match.MatchedID},
		Result:     "matched at the " + match.Tier.String() + " tier",
		NextStep:   "follow the instructions in the skill document",
	}

	if skill, ok := registry.Get(match.MatchedID); ok && skill.Description != "" {
		response.Result = skill.Description + " (matched at the " + match.Tier.String() + " tier)"
	}

	return response
}

// Render produces the response template text.
func Render(response Response) (string, error) {
	tmpl, err := template.New("response").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(responseTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse response template")
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, response); err != nil {
		return "", errors.Wrap(err, "failed to render response template")
	}

	return sb.String(), nil
}
