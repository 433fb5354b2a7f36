package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all stored scoreboard state",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Storage.Clear(cmd.Context()); err != nil {
				return err
			}

			fmt.Println("Scoreboard cleared.")
			return nil
		},
	}
}
