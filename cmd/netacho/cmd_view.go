package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newViewCmd(open opener) *cobra.Command {
	var flags struct {
		raw   bool
		width int
		style string
	}
	cmd := &cobra.Command{
		Use:   "view <session-id>",
		Short: "Show the finished script of a full-auto session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			text, err := a.router.Orchestrator().ViewScript(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !flags.raw {
				text, err = renderMarkdown(text, flags.style, flags.width)
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.raw, "raw", false, "Print the markdown source instead of rendering it")
	f.IntVar(&flags.width, "width", 80, "Word wrap width for rendered output")
	f.StringVar(&flags.style, "style", "auto", "Glamour style: auto, dark, light, notty")
	return cmd
}

func renderMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
