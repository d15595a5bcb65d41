package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/agentlint/pkg/logger"
	"github.com/jingkaihe/agentlint/pkg/presenter"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("AGENTLINT")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.agentlint")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "agentlint",
	Short: "Lint agent definition files",
	Long: `Agentlint checks agent definition documents (markdown files with YAML
frontmatter) for structural problems and style issues. Structural problems
fail the run; style findings are advisory.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	// Default behavior is to show help if no subcommand is provided
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
		os.Exit(1)
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	ctx := logger.WithLogger(context.Background(), logger.L)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
