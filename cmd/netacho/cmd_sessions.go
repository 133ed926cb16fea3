package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored full-auto sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			text, err := a.router.Orchestrator().ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
