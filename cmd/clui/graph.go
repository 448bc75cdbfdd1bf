package main

import (
	"github.com/aretw0/clui/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [path]",
	Short: "Export the script as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph TD) of the step tree, including nested sessions and follow-ups.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, _ := cmd.Flags().GetBool("overlay")
		return cli.Graph(cmd.OutOrStdout(), scriptPath(cmd, args), overlay)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("overlay", false, "Highlight the steps visible at start")
}
