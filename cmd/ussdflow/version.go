package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yawmintah/ussdflow"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ussdflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ussdflow version %s\n", ussdflow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
