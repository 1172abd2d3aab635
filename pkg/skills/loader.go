package skills

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// SkillFileName is the well-known document name inside a skill directory.
const SkillFileName = "SKILL.md"

// ParseError describes a skill document that failed validation. Path
// always identifies the offending file.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// IsParseError reports whether err (or any error it wraps) is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// loadSkillFile parses a single SKILL.md into a Skill. Validation
// failures come back as *ParseError so callers can report the file.
func loadSkillFile(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, &ParseError{Path: path, Reason: "failed to parse markdown: " + err.Error()}
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, &ParseError{Path: path, Reason: "missing frontmatter"}
	}

	var m Metadata
	if err := mapstructure.WeakDecode(metaData, &m); err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid frontmatter: " + err.Error()}
	}

	if m.Name == "" {
		return nil, &ParseError{Path: path, Reason: "skill name is required in frontmatter"}
	}
	if m.Description == "" {
		return nil, &ParseError{Path: path, Reason: "skill description is required in frontmatter"}
	}
	if m.Category != "" && !ValidCategory(m.Category) {
		return nil, &ParseError{Path: path, Reason: fmt.Sprintf("unknown category %q", m.Category)}
	}

	return &Skill{
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		Aliases:     m.Aliases,
		Content:     extractBodyContent(string(content)),
	}, nil
}

// ValidateFile checks a single skill document without building a
// registry. Returns a *ParseError naming the file when invalid.
func ValidateFile(path string) error {
	_, err := loadSkillFile(path)
	return err
}

// extractBodyContent removes YAML frontmatter and returns the body
func extractBodyContent(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
