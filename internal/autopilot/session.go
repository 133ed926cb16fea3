// Package autopilot runs the five-step full-auto pipeline: research,
// joke generation, composition, script and evaluation.
//
// Every step is a separate call. A session document under
// auto-sessions/<id>/session.json records how far the pipeline got; each
// step also writes a write-once artifact next to it. The artifact is written
// before the session document so a failed step never advances the cursor.
package autopilot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"netacho/internal/neta"
	"netacho/internal/scoring"
	"netacho/internal/sequence"
	"netacho/internal/store"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// TotalSteps is the length of the pipeline.
const TotalSteps = 5

// SessionsPrefix is the store prefix every session lives under.
const SessionsPrefix = "auto-sessions/"

// Artifact file names, one per step.
const (
	sessionFile     = "session.json"
	ResearchFile    = "research_results.json"
	BokeFile        = "boke_results.json"
	CompositionFile = "composition.json"
	ScriptFile      = "final_script.md"
	EvaluationFile  = "evaluation.json"
)

// Request is what the caller asked the pipeline to write.
type Request struct {
	Theme           string     `json:"theme"`
	Genre           neta.Genre `json:"genre"`
	Concept         string     `json:"concept,omitempty"`
	Duration        string     `json:"duration,omitempty"`
	TargetAudience  string     `json:"targetAudience,omitempty"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
}

// Validate checks the theme and genre.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Theme) == "" {
		return neta.Errorf(neta.ErrInvalidRequest, "テーマを指定してください。")
	}
	if !r.Genre.Valid() {
		return neta.Errorf(neta.ErrInvalidRequest, "ジャンルは manzai または conte を指定してください（指定値: %q）。", r.Genre)
	}
	return nil
}

// Results holds the output of each completed step. The field for step k is
// set exactly when CurrentStep >= k.
type Results struct {
	WebResearch      *Research               `json:"webResearch,omitempty"`
	BokeCollection   []string                `json:"bokeCollection,omitempty"`
	CategorizedBokes *neta.Categorized       `json:"categorizedBokes,omitempty"`
	Sequence         *sequence.Composition   `json:"sequence,omitempty"`
	Script           string                  `json:"script,omitempty"`
	Evaluation       *scoring.AutoEvaluation `json:"evaluation,omitempty"`
}

// StepRecord logs one completed step.
type StepRecord struct {
	Step      int       `json:"step"`
	Outcome   string    `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the persisted state of one pipeline run.
type Session struct {
	ID          string       `json:"id"`
	Request     Request      `json:"request"`
	Status      Status       `json:"status"`
	CurrentStep int          `json:"currentStep"`
	TotalSteps  int          `json:"totalSteps"`
	Results     Results      `json:"results"`
	History     []StepRecord `json:"history,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	LastError   string       `json:"lastError,omitempty"`
}

// initSession returns a session ready for step 1.
func initSession(id string, req Request, now time.Time) *Session {
	return &Session{
		ID:         id,
		Request:    req,
		Status:     StatusInProgress,
		TotalSteps: TotalSteps,
		CreatedAt:  now.UTC(),
	}
}

// advance records step k as done.
func (s *Session) advance(k int, outcome string, now time.Time) {
	s.History = append(s.History, StepRecord{Step: k, Outcome: outcome, Timestamp: now.UTC()})
	s.CurrentStep = k
	s.Status = StatusInProgress
	s.LastError = ""
	if k == TotalSteps {
		s.Status = StatusCompleted
		done := now.UTC()
		s.CompletedAt = &done
	}
}

// Key is the store key of a file inside the session directory.
func Key(id, name string) string {
	return SessionsPrefix + id + "/" + name
}

// checkID rejects ids that cannot name a session directory.
func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return neta.Errorf(neta.ErrInvalidRequest, "セッションIDが不正です: %q", id)
	}
	return nil
}

func loadSession(ctx context.Context, st store.Store, id string) (*Session, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var s Session
	err := store.GetJSON(ctx, st, Key(id, sessionFile), &s)
	if errors.Is(err, store.ErrNotFound) {
		return nil, neta.Errorf(neta.ErrNotInitialized, "セッションが見つかりません: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("autopilot: load %s: %w", id, err)
	}
	return &s, nil
}

func saveSession(ctx context.Context, st store.Store, s *Session) error {
	if err := store.PutJSON(ctx, st, Key(s.ID, sessionFile), s); err != nil {
		return fmt.Errorf("autopilot: save %s: %w", s.ID, err)
	}
	return nil
}

// sessionIDs extracts the distinct session ids from keys under SessionsPrefix.
func sessionIDs(keys []string) []string {
	var ids []string
	seen := map[string]bool{}
	for _, k := range keys {
		rest := strings.TrimPrefix(k, SessionsPrefix)
		id, _, ok := strings.Cut(rest, "/")
		if !ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
