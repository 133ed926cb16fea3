package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netacho/internal/format"
)

func newToolsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			mode, err := format.ParseMode(a.cfg.Output.Table)
			if err != nil {
				return err
			}
			tbl := format.NewTable(mode)
			tbl.Header("#", "Tool", "Description")
			for i, c := range a.router.Commands() {
				tbl.Row(i+1, c.Name, c.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return nil
		},
	}
}
