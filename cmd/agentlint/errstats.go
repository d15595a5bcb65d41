package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/agentlint/pkg/logstats"
	"github.com/jingkaihe/agentlint/pkg/presenter"
)

var errstatsCmd = &cobra.Command{
	Use:   "errstats",
	Short: "Summarize error log lines from stdin",
	Long: `Read lines from stdin and print a frequency table of distinct lines,
most frequent first. Blank lines are ignored.

Example:
  grep ERROR app.log | agentlint errstats`,
	Run: func(_ *cobra.Command, _ []string) {
		entries, err := logstats.Summarize(os.Stdin)
		if err != nil {
			presenter.Error(err, "Failed to summarize input")
			os.Exit(1)
		}
		if err := logstats.Write(os.Stdout, entries); err != nil {
			presenter.Error(err, "Failed to write summary")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(errstatsCmd)
}
