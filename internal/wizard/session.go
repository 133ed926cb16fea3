// Package wizard implements the two question-and-answer flows that help a
// user write a script: the 18-step interactive wizard with its joke
// loop-back, and the 14-step guided wizard that writes into named fields.
//
// Both engines persist one whole document per transition through a
// store.Store injected at construction.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"netacho/internal/catalog"
	"netacho/internal/neta"
	"netacho/internal/store"
)

// DefaultSessionKey names the interactive session when none is configured.
const DefaultSessionKey = "default"

// ProgressKey is the store key of the interactive session named key.
func ProgressKey(key string) string {
	if key == "" || key == DefaultSessionKey {
		return "wizard-progress.json"
	}
	return "wizard-progress-" + key + ".json"
}

// Session is the interactive wizard document.
type Session struct {
	// Cursor is the 1-based step awaiting an answer; Len()+1 means complete.
	Cursor  int                       `json:"currentStep"`
	Answers map[string]catalog.Answer `json:"answers"`
}

func newSession() *Session {
	return &Session{Cursor: 1, Answers: map[string]catalog.Answer{}}
}

// Answer returns the answer recorded for step id.
func (s *Session) Answer(id int) (catalog.Answer, bool) {
	a, ok := s.Answers[catalog.StepKey(id)]
	return a, ok
}

// Text returns the answer for step id rendered as text, or fallback.
func (s *Session) Text(id int, fallback string) string {
	if a, ok := s.Answer(id); ok {
		if t := a.String(); t != "" {
			return t
		}
	}
	return fallback
}

// Jokes returns the accumulated joke list.
func (s *Session) Jokes() []string {
	a, _ := s.Answer(catalog.JokeStep)
	return a.Items()
}

// Categorized returns the user's own level split from the categorize step.
func (s *Session) Categorized() (neta.Categorized, bool) {
	a, ok := s.Answer(catalog.CategorizeStep)
	if !ok || a.Form != catalog.FormRecord {
		return neta.Categorized{}, false
	}
	c, err := neta.CategorizedFromRecord(a.Record)
	if err != nil {
		return neta.Categorized{}, false
	}
	return c, true
}

// loadSession reads the interactive session under key. A missing document
// is reported as neta.ErrNotInitialized.
func loadSession(ctx context.Context, st store.Store, key string) (*Session, error) {
	var s Session
	err := store.GetJSON(ctx, st, ProgressKey(key), &s)
	if errors.Is(err, store.ErrNotFound) {
		return nil, neta.Errorf(neta.ErrNotInitialized, "ウィザードが開始されていません。先に start_wizard を実行してください。")
	}
	if err != nil {
		return nil, fmt.Errorf("wizard: load session: %w", err)
	}
	if s.Answers == nil {
		s.Answers = map[string]catalog.Answer{}
	}
	return &s, nil
}

func saveSession(ctx context.Context, st store.Store, key string, s *Session) error {
	if err := store.PutJSON(ctx, st, ProgressKey(key), s); err != nil {
		return fmt.Errorf("wizard: save session: %w", err)
	}
	return nil
}
