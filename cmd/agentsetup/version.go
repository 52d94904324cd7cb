package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suhani2210/agentsetup"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of agentsetup",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentsetup version %s\n", strings.TrimSpace(agentsetup.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
