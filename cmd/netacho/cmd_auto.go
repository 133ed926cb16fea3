package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"netacho/internal/autopilot"
	"netacho/internal/neta"
)

func newAutoCmd(open opener) *cobra.Command {
	var req autopilot.Request
	var genre string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Run all five full-auto steps locally and print the script",
		Long: `Creates a full-auto session and drives research, generation,
composition, script writing and evaluation in order, exactly as a client
calling auto_step_1..5 would. The session stays in the store and can be
inspected later with "sessions" and "view".`,
		Example: `  netacho auto --theme=コンビニ
  netacho auto --theme=カーナビ --genre=conte --concept=近未来`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Genre = neta.Genre(genre)
			if err := req.Validate(); err != nil {
				return err
			}
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			orch := a.router.Orchestrator()
			s, err := orch.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			for i, step := range autoSteps(orch) {
				text, err := step(cmd.Context(), s.ID)
				if err != nil {
					return fmt.Errorf("session %s step %d: %w", s.ID, i+1, err)
				}
				if !quiet {
					fmt.Fprintf(out, "%s\n\n---\n\n", text)
				}
			}
			script, err := orch.ViewScript(cmd.Context(), s.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, script)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Theme, "theme", "", "Theme of the script (required)")
	f.StringVar(&genre, "genre", string(neta.Manzai), "Genre: manzai or conte")
	f.StringVar(&req.Concept, "concept", "", "Concept")
	f.StringVar(&req.Duration, "duration", "", "Expected running time")
	f.StringVar(&req.TargetAudience, "audience", "", "Target audience")
	f.StringVar(&req.SpecialRequests, "requests", "", "Special requests")
	f.BoolVarP(&quiet, "quiet", "q", false, "Print only the finished script")
	_ = cmd.MarkFlagRequired("theme")
	return cmd
}

func autoSteps(o *autopilot.Orchestrator) []func(context.Context, string) (string, error) {
	return []func(context.Context, string) (string, error){
		o.Research,
		o.Generate,
		o.Compose,
		o.Script,
		o.Evaluate,
	}
}
