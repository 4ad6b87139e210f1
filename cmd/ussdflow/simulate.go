package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yawmintah/ussdflow"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/menu"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run an interactive dialog in the terminal",
	Long: `Plays the subscriber side of a dialog without a gateway: dials the
service, shows each screen, and reads keypresses from stdin until the
dialog ends. Useful for trying out a menu definition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		menuPath, _ := cmd.Flags().GetString("menu")
		shortCode, _ := cmd.Flags().GetString("short-code")
		extension, _ := cmd.Flags().GetString("extension")
		msisdn, _ := cmd.Flags().GetString("msisdn")

		m := menu.Feelings()
		if menuPath != "" {
			var err error
			m, err = menu.FromFile(menuPath)
			if err != nil {
				return err
			}
		}

		svc := ussdflow.New(
			ussdflow.WithMenu(m),
			ussdflow.WithServiceAddress(shortCode, extension),
		)

		ctx := context.Background()
		sessionID := fmt.Sprintf("sim-%d", time.Now().UnixNano())
		dial := fmt.Sprintf("*%s*%s#", shortCode, extension)

		p := termenv.ColorProfile()
		interactive := term.IsTerminal(int(os.Stdin.Fd()))

		printScreen := func(msg string) {
			fmt.Println()
			fmt.Println(termenv.String(msg).Foreground(p.Color("#34d399")))
		}

		fmt.Printf("Dialing %s ...\n", termenv.String(dial).Bold())

		resp, err := svc.Engine.Handle(ctx, domain.DialogRequest{
			SubscriberID: "simulator",
			Msisdn:       msisdn,
			Input:        dial,
			NewDialog:    true,
			SessionID:    sessionID,
		})
		if err != nil {
			return err
		}
		printScreen(resp.Message)

		reader := bufio.NewReader(os.Stdin)
		for resp.Continue {
			if interactive {
				fmt.Print(termenv.String("> ").Foreground(p.Color("#818cf8")))
			}
			line, readErr := reader.ReadString('\n')
			input := strings.TrimSpace(line)
			if readErr != nil && input == "" {
				fmt.Println("\nDialog abandoned.")
				return nil
			}

			resp, err = svc.Engine.Handle(ctx, domain.DialogRequest{
				SubscriberID: "simulator",
				Msisdn:       msisdn,
				Input:        input,
				NewDialog:    false,
				SessionID:    sessionID,
			})
			if err != nil {
				return err
			}
			printScreen(resp.Message)
		}

		fmt.Println("\nDialog ended.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("short-code", "920", "Service short code")
	simulateCmd.Flags().String("extension", "1802", "Service extension")
	simulateCmd.Flags().String("msisdn", "0244000000", "Simulated subscriber number")
}
