package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillroute/pkg/logger"
	"github.com/jingkaihe/skillroute/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLROUTE")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillroute")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "fmt")
}

var rootCmd = &cobra.Command{
	Use:   "skillroute",
	Short: "Route free-text requests to skill documents",
	Long: `Skillroute manages a registry of Markdown skill documents (SKILL.md files
with YAML frontmatter) and resolves free-text requests to the matching
skill via a fixed-priority fallback chain: exact name or alias match,
token-overlap against descriptions, category keyword, or no match.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

// skillDirs returns the configured skill directories: the --skill-dirs
// flag or skill_dirs config key, falling back to the repo-local then the
// user-global directory.
func skillDirs() []string {
	if dirs := viper.GetStringSlice("skill_dirs"); len(dirs) > 0 {
		return dirs
	}

	dirs := []string{"./.skillroute/skills"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, homeDir+"/.skillroute/skills")
	}
	return dirs
}

func main() {
	rootCmd.PersistentFlags().StringSlice("skill-dirs", nil, "Skill directories in precedence order (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")

	viper.BindPFlag("skill_dirs", rootCmd.PersistentFlags().Lookup("skill-dirs"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
