package main

import (
	"fmt"
	"strings"

	"github.com/mechforge/mechlink"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mechlink",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mechlink version %s\n", strings.TrimSpace(mechlink.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
