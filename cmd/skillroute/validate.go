package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillroute/pkg/presenter"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate skill documents under a directory tree",
	Long: `Validate every SKILL.md found under the given directory (or the
configured skill directories when omitted). Reports each document that
is missing required frontmatter fields or uses an unknown category.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		var roots []string
		if len(args) == 1 {
			roots = []string{args[0]}
		} else {
			roots = skillDirs()
		}
		validateSkillDocs(roots)
	},
}

func validateSkillDocs(roots []string) {
	var validateErrs *multierror.Error
	checked := 0

	for _, root := range roots {
		matches, err := doublestar.FilepathGlob(root + "/**/" + skills.SkillFileName)
		if err != nil {
			presenter.Error(err, fmt.Sprintf("Failed to scan %s", root))
			os.Exit(1)
		}

		for _, path := range matches {
			checked++
			if err := skills.ValidateFile(path); err != nil {
				validateErrs = multierror.Append(validateErrs, err)
			}
		}
	}

	if checked == 0 {
		presenter.Warning("No skill documents found")
		return
	}

	if err := validateErrs.ErrorOrNil(); err != nil {
		presenter.Error(err, fmt.Sprintf("%d of %d skill document(s) invalid", len(validateErrs.Errors), checked))
		os.Exit(1)
	}

	presenter.Success(fmt.Sprintf("All %d skill document(s) valid", checked))
}
