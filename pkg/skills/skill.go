// Package skills provides the skill registry: loading skill documents
// (SKILL.md files with YAML frontmatter) from directories into an
// immutable, read-only registry that resolution runs against.
package skills

import "sort"

// Skill represents a loaded skill document with its metadata
type Skill struct {
	Name        string   // Unique name from frontmatter
	Description string   // Brief description used for matching
	Category    string   // Optional category from the closed category set
	Aliases     []string // Ordered alternative phrasings from frontmatter
	Directory   string   // Full path to the skill directory
	Content     string   // Body of SKILL.md after the frontmatter
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Category    string   `mapstructure:"category"`
	Aliases     []string `mapstructure:"aliases"`
}

// Categories is the closed set of valid skill categories. A document may
// omit the category, but a present category must be one of these.
// Must stay sorted for ValidCategory.
var Categories = []string{
	"crypto",
	"documents",
	"files",
	"media",
	"messaging",
	"search",
	"utilities",
	"web",
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c string) bool {
	i := sort.SearchStrings(Categories, c)
	return i < len(Categories) && Categories[i] == c
}
