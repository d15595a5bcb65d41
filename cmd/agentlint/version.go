package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/agentlint/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version information of agentlint in JSON format.`,
	Run: func(_ *cobra.Command, _ []string) {
		info := version.Get()
		json, err := info.JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting version info: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(json)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
