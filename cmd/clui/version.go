package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/clui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of clui",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "clui version %s\n", strings.TrimSpace(clui.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
