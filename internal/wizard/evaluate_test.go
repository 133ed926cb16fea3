package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"netacho/internal/neta"
)

func TestEvaluate(t *testing.T) {
	w, _ := newTestWizard(t)
	ctx := context.Background()
	if _, err := w.Evaluate(ctx); !errors.Is(err, neta.ErrNotInitialized) {
		t.Fatalf("no session: err = %v", err)
	}
	w.Start(ctx)
	advance(t, w, 13)
	if _, err := w.Evaluate(ctx); !errors.Is(err, neta.ErrNotInitialized) {
		t.Fatalf("not categorized: err = %v", err)
	}
	advance(t, w, 18)
	out, err := w.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for _, want := range []string{"総合スコア", "### インパクト", "総評"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestEvaluationInput_UsesPunchlineStep(t *testing.T) {
	w, _ := newTestWizard(t)
	ctx := context.Background()
	w.Start(ctx)
	advance(t, w, 18)
	sess, c, err := w.categorized(ctx)
	if err != nil {
		t.Fatalf("categorized: %v", err)
	}
	in := EvaluationInput(sess, c)
	if in.Punchline != "二人で温められる" || in.Theme != "コンビニ" || in.Pattern != "日常×非日常" {
		t.Errorf("input = %+v", in)
	}
	if c.Total() != 3 {
		t.Errorf("categorized total = %d", c.Total())
	}
}
