package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillroute/pkg/presenter"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

// ListConfig holds configuration for the list command
type ListConfig struct {
	Category string
}

// NewListConfig creates a new ListConfig with default values
func NewListConfig() *ListConfig {
	return &ListConfig{
		Category: "",
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered skills",
	Long:  `List all skills found in the configured skill directories with their names, categories, and descriptions.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		listSkills(config)
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().StringP("category", "c", defaults.Category, "Only list skills in this category")
}

// getListConfigFromFlags extracts list configuration from command flags
func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if category, err := cmd.Flags().GetString("category"); err == nil {
		config.Category = category
	}
	return config
}

func listSkills(config *ListConfig) {
	registry, err := loadRegistry()
	if err != nil {
		presenter.Error(err, "Failed to load skill registry")
		os.Exit(1)
	}

	var records []*skills.Skill
	if config.Category != "" {
		if !skills.ValidCategory(config.Category) {
			presenter.Error(fmt.Errorf("unknown category %q", config.Category), "Invalid category")
			os.Exit(1)
		}
		records = registry.InCategory(config.Category)
	} else {
		records = registry.Records()
	}

	if len(records) == 0 {
		presenter.Info("No skills registered")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t--------\t-----------")

	for _, skill := range records {
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		category := skill.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, category, description)
	}
	tw.Flush()
}

// loadRegistry loads the registry from the configured directories and
// applies the configured allowlist.
func loadRegistry() (*skills.Registry, error) {
	registry, err := skills.Load(skillDirs())
	if err != nil {
		return nil, err
	}

	if allowed := viper.GetStringSlice("skills.allowed"); len(allowed) > 0 {
		return skills.FilterByAllowlist(registry, allowed)
	}

	return registry, nil
}
