package wizard

import (
	"context"

	"netacho/internal/catalog"
	"netacho/internal/neta"
	"netacho/internal/scoring"
)

// Evaluate scores the interactive answers against the rubric. It needs the
// categorize step answered.
func (w *Interactive) Evaluate(ctx context.Context) (string, error) {
	sess, c, err := w.categorized(ctx)
	if err != nil {
		return "", err
	}
	r := scoring.Evaluate(EvaluationInput(sess, c))
	w.log.Info("script evaluated", "total", r.Total)
	return scoring.Format(r), nil
}

// EvaluationInput maps a session onto the rubric's view of it.
func EvaluationInput(sess *Session, c neta.Categorized) scoring.Input {
	return scoring.Input{
		Theme:       sess.Text(2, ""),
		Pattern:     sess.Text(3, ""),
		Boke:        sess.Text(6, ""),
		Tsukkomi:    sess.Text(7, ""),
		Punchline:   sess.Text(catalog.PunchlineStep, ""),
		Jokes:       sess.Jokes(),
		Categorized: c,
	}
}
