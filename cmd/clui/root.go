package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clui",
	Short: "clui runs conversational command-line flows",
	Long: `clui reveals a script one step at a time: messages, prompts and confirmations,
with nested sub-flows and follow-ups inserted from your answers.

A script is a YAML or JSON file, or a directory of markdown steps.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "clui.yaml", "Script file or directory")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
}

// scriptPath resolves the script from the first argument or --file.
func scriptPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("file") && len(args) > 0 {
		path = args[0]
	}
	return path
}
