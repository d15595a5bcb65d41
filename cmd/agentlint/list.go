package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/agentlint/pkg/discovery"
	"github.com/jingkaihe/agentlint/pkg/presenter"
)

var listCmd = &cobra.Command{
	Use:   "list [dirs...]",
	Short: "List discovered agent definitions",
	Long: `List agent definitions from the given directories, or from the default
locations (./agents, ~/.agentlint/agents) when none are given. Earlier
directories shadow later ones by agent name.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		var opts []discovery.Option
		if len(args) > 0 {
			opts = append(opts, discovery.WithDirs(args...))
		}

		d, err := discovery.New(opts...)
		if err != nil {
			presenter.Error(err, "Failed to initialize agent discovery")
			os.Exit(1)
		}

		agents, err := d.Discover(ctx)
		if err != nil {
			presenter.Error(err, "Failed to discover agents")
			os.Exit(1)
		}

		if len(agents) == 0 {
			presenter.Info("No agent definitions found")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMODE\tMODEL\tPATH\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t----\t-----\t----\t-----------")
		for _, agent := range agents {
			description := agent.Description
			if len(description) > 60 {
				description = description[:57] + "..."
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", agent.Name, agent.Mode, agent.Model, agent.Path, description)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
