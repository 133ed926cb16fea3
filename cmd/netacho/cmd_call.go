package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newCallCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args|-]",
		Short: "Call one tool locally and print its text result",
		Long: `Calls a tool the same way an MCP client would. Arguments are a JSON
object; pass "-" to read them from stdin. Tool failures are part of the
text result, so the exit status is non-zero only for unknown tools and
unreadable arguments.`,
		Example: `  netacho call start_wizard
  netacho call next_question '{"answer":"漫才"}'
  echo '{"theme":"コンビニ","genre":"manzai"}' | netacho call request_full_auto -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := callArgs(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.router.Call(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}
}

func callArgs(stdin io.Reader, rest []string) (json.RawMessage, error) {
	if len(rest) == 0 {
		return nil, nil
	}
	text := rest[0]
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read arguments: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("arguments are not valid JSON: %s", text)
	}
	return json.RawMessage(text), nil
}
