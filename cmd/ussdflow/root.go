package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ussdflow",
	Short: "ussdflow drives USSD menu dialogs behind a gateway",
	Long: `ussdflow is a USSD dialog engine. It answers the stateless HTTP
requests a USSD gateway sends per subscriber keypress, tracking each
dialog in a session store and walking a startup-validated menu tree.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("menu", "", "Path to a YAML menu definition (default: built-in menu)")
}
