package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillroute/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version information of skillroute, optionally in JSON format.`,
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()

		jsonOutput, err := cmd.Flags().GetBool("json")
		if err == nil && jsonOutput {
			encoded, err := info.JSON()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error formatting version info: %s\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), info.String())
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Output version information as JSON")
}
