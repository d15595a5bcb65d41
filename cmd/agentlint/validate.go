package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/agentlint/pkg/lint"
	"github.com/jingkaihe/agentlint/pkg/presenter"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a single agent definition file",
	Long: `Validate an agent definition file: frontmatter structure, required and
optional fields, naming rules, and the prompt body.

The exit code is 0 when there are no errors, regardless of warnings.

Examples:
  agentlint validate agents/code-reviewer.md
  agentlint validate agents/code-reviewer.md --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		format, _ := cmd.Flags().GetString("format")

		report := lint.New().LintPath(ctx, args[0])

		switch format {
		case "json":
			out, err := report.JSON()
			if err != nil {
				presenter.Error(err, "Failed to encode report")
				os.Exit(1)
			}
			fmt.Println(out)
		default:
			presenter.Section(fmt.Sprintf("Validating %s", args[0]))
			presenter.Report(report)
		}

		if !report.OK() {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	rootCmd.AddCommand(validateCmd)
}
