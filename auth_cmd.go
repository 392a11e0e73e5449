package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/morningtasks/pkg/auth"
	"github.com/harrisonrobin/morningtasks/pkg/google"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Google Tasks and Calendar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetToken {
			if err := auth.Reset(); err != nil {
				return err
			}
		}
		if _, _, err := google.NewServices(cmd.Context()); err != nil {
			return err
		}
		path, err := auth.TokenPath()
		if err != nil {
			return err
		}
		printPath(cmd.OutOrStdout(), "Token:", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Authorization complete.")
		return nil
	},
}

var resetToken bool

func init() {
	authCmd.Flags().BoolVar(&resetToken, "reset", false, "discard the cached token and authorize again")
}
