package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yawmintah/ussdflow/pkg/menu"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a menu definition file",
	Long: `Checks a YAML menu definition the same way the server does at
startup: every screen reachable, every transition target defined, no
duplicate option codes, no cycles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		menuPath, _ := cmd.Flags().GetString("menu")
		if menuPath == "" {
			return fmt.Errorf("--menu is required")
		}

		m, err := menu.FromFile(menuPath)
		if err != nil {
			return err
		}

		fmt.Printf("Menu OK: %d screens, start screen %q\n", len(m.Screens()), m.Start())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
