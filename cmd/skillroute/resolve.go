package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillroute/pkg/presenter"
	"github.com/jingkaihe/skillroute/pkg/resolver"
	"github.com/jingkaihe/skillroute/pkg/respond"
)

// ResolveConfig holds configuration for the resolve command
type ResolveConfig struct {
	Output    string
	Threshold float64
}

// NewResolveConfig creates a new ResolveConfig with default values
func NewResolveConfig() *ResolveConfig {
	return &ResolveConfig{
		Output:    "template",
		Threshold: resolver.DefaultSemanticThreshold,
	}
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <request>",
	Short: "Resolve a free-text request to a skill",
	Long: `Resolve a free-text request against the skill registry using the
fixed-priority fallback chain (exact, semantic, category, none).

Examples:
  skillroute resolve "check bitcoin balance"
  skillroute resolve "what's the value in this BTC wallet?" --output json`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getResolveConfigFromFlags(cmd)
		resolveRequest(strings.Join(args, " "), config)
	},
}

func init() {
	defaults := NewResolveConfig()
	resolveCmd.Flags().StringP("output", "o", defaults.Output, "Output format (template or json)")
	resolveCmd.Flags().Float64("threshold", defaults.Threshold, "Minimum token-overlap ratio for a semantic match")
	viper.BindPFlag("resolver.semantic_threshold", resolveCmd.Flags().Lookup("threshold"))
}

// getResolveConfigFromFlags extracts resolve configuration from command flags
func getResolveConfigFromFlags(cmd *cobra.Command) *ResolveConfig {
	config := NewResolveConfig()
	if output, err := cmd.Flags().GetString("output"); err == nil {
		config.Output = output
	}
	config.Threshold = viper.GetFloat64("resolver.semantic_threshold")
	return config
}

func resolveRequest(request string, config *ResolveConfig) {
	registry, err := loadRegistry()
	if err != nil {
		presenter.Error(err, "Failed to load skill registry")
		os.Exit(1)
	}

	res := resolver.New(resolver.WithSemanticThreshold(config.Threshold))
	match := res.Resolve(registry, request)

	switch config.Output {
	case "json":
		encoded, err := json.MarshalIndent(match, "", "  ")
		if err != nil {
			presenter.Error(err, "Failed to encode match result")
			os.Exit(1)
		}
		fmt.Println(string(encoded))
	case "template":
		rendered, err := respond.Render(respond.FromMatch(registry, request, match))
		if err != nil {
			presenter.Error(err, "Failed to render response")
			os.Exit(1)
		}
		fmt.Print(rendered)
	default:
		presenter.Error(fmt.Errorf("unknown output format %q", config.Output), "Invalid output format")
		os.Exit(1)
	}
}
