package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillroute/pkg/presenter"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

// NewSkillConfig holds configuration for the new command
type NewSkillConfig struct {
	Description string
	Category    string
	Aliases     []string
	Dir         string
}

// NewNewSkillConfig creates a new NewSkillConfig with default values
func NewNewSkillConfig() *NewSkillConfig {
	return &NewSkillConfig{
		Dir: "./.skillroute/skills",
	}
}

var skillNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new skill document",
	Long: `Create a skill directory with a templated SKILL.md. Names use
lowercase letters, digits, and hyphens.

Examples:
  skillroute new check-crypto-address-balance -c crypto -d "Check the balance of a crypto address"
  skillroute new generate-qr-code -c utilities -d "Generate a QR code" -a "qr code","make qr"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getNewSkillConfigFromFlags(cmd)
		newSkill(args[0], config)
	},
}

func init() {
	defaults := NewNewSkillConfig()
	newCmd.Flags().StringP("description", "d", defaults.Description, "Skill description (required)")
	newCmd.Flags().StringP("category", "c", defaults.Category, "Skill category")
	newCmd.Flags().StringSliceP("alias", "a", defaults.Aliases, "Alias phrasings (repeatable)")
	newCmd.Flags().String("dir", defaults.Dir, "Skill directory to create the skill under")
	newCmd.MarkFlagRequired("description")
}

// getNewSkillConfigFromFlags extracts new-skill configuration from command flags
func getNewSkillConfigFromFlags(cmd *cobra.Command) *NewSkillConfig {
	config := NewNewSkillConfig()
	if description, err := cmd.Flags().GetString("description"); err == nil {
		config.Description = description
	}
	if category, err := cmd.Flags().GetString("category"); err == nil {
		config.Category = category
	}
	if aliases, err := cmd.Flags().GetStringSlice("alias"); err == nil {
		config.Aliases = aliases
	}
	if dir, err := cmd.Flags().GetString("dir"); err == nil {
		config.Dir = dir
	}
	return config
}

const skillTemplate = `---
name: {{.Name}}
description: {{.Description}}
{{- if .Category}}
category: {{.Category}}
{{- end}}
{{- if .Aliases}}
aliases:
{{- range .Aliases}}
  - {{.}}
{{- end}}
{{- end}}
---

# {{.Title}}

## Instructions

Describe the task pattern here.
`

func newSkill(name string, config *NewSkillConfig) {
	if !skillNamePattern.MatchString(name) {
		presenter.Error(errors.Errorf("invalid skill name %q", name), "Names use lowercase letters, digits, and hyphens")
		os.Exit(1)
	}
	if config.Category != "" && !skills.ValidCategory(config.Category) {
		presenter.Error(errors.Errorf("unknown category %q (one of: %s)", config.Category, strings.Join(skills.Categories, ", ")), "Invalid category")
		os.Exit(1)
	}

	skillDir := filepath.Join(config.Dir, name)
	skillPath := filepath.Join(skillDir, skills.SkillFileName)

	if _, err := os.Stat(skillPath); err == nil {
		presenter.Error(errors.Errorf("%s already exists", skillPath), "Skill already exists")
		os.Exit(1)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		presenter.Error(err, "Failed to create skill directory")
		os.Exit(1)
	}

	tmpl := template.Must(template.New("skill").Parse(skillTemplate))

	file, err := os.Create(skillPath)
	if err != nil {
		presenter.Error(err, "Failed to create skill document")
		os.Exit(1)
	}
	defer file.Close()

	data := struct {
		*NewSkillConfig
		Name  string
		Title string
	}{config, name, titleFromName(name)}

	if err := tmpl.Execute(file, data); err != nil {
		presenter.Error(err, "Failed to render skill template")
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("Created %s", skillPath))
}

// titleFromName turns "check-crypto-address-balance" into
// "Check Crypto Address Balance".
func titleFromName(name string) string {
	words := strings.Split(name, "-")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
