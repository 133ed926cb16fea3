package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"netacho/internal/store"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	return New(store.NewMemStore(), "")
}

func call(t *testing.T, r *Router, name, args string) string {
	t.Helper()
	res, err := r.Call(context.Background(), name, json.RawMessage(args))
	if err != nil {
		t.Fatalf("Call(%s): %v", name, err)
	}
	return res.Text
}

func TestRouter_Names(t *testing.T) {
	want := []string{
		"auto_step_1_research", "auto_step_2_generate", "auto_step_3_compose",
		"auto_step_4_script", "auto_step_5_evaluate",
		"check_auto_progress", "evaluate_script", "generate_script", "get_hint",
		"list_auto_sessions", "next_question", "propose_sequence",
		"request_full_auto", "show_boke_list", "show_wizard_answers",
		"start_full_auto_creation", "start_wizard", "view_completed_script",
		"wizard_status", "wizard_step", "wizard_update",
	}
	if diff := cmp.Diff(want, newTestRouter(t).Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	_, err := newTestRouter(t).Call(context.Background(), "explain_theory", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestRouter_PrefixMapping(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		name   string
		args   string
		prefix string
	}{
		{"show_wizard_answers", `{}`, InfoPrefix},
		{"next_question", `{"answer":"漫才"}`, InfoPrefix},
		{"propose_sequence", ``, InfoPrefix},
		{"wizard_status", `{}`, InfoPrefix},
		{"wizard_step", `{"stepId":99}`, ErrorPrefix},
		{"wizard_step", `{"stepId":0}`, ErrorPrefix},
		{"wizard_update", `{"stepId":"one"}`, ErrorPrefix},
		{"wizard_update", `{"stepId":1}`, ErrorPrefix},
		{"request_full_auto", `{"theme":"学校","genre":"rakugo"}`, ErrorPrefix},
		{"check_auto_progress", `{"sessionId":"auto_0_00000000"}`, InfoPrefix},
		{"auto_step_1_research", `{"sessionId":""}`, ErrorPrefix},
	}
	for _, tt := range tests {
		t.Run(tt.name+tt.args, func(t *testing.T) {
			out := call(t, r, tt.name, tt.args)
			if !strings.HasPrefix(out, tt.prefix) {
				t.Errorf("got %q, want prefix %q", out, tt.prefix)
			}
		})
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := newTestRouter(t)
	r.byName["boom"] = define("boom", "", func(context.Context, noInput) (string, error) {
		panic("kaboom")
	})
	out := call(t, r, "boom", `{}`)
	if !strings.HasPrefix(out, ErrorPrefix) || !strings.Contains(out, "kaboom") {
		t.Errorf("got %q", out)
	}
}

func TestRouter_GuidedStepDefaultsToCursor(t *testing.T) {
	r := newTestRouter(t)
	if out := call(t, r, "wizard_step", `{}`); !strings.Contains(out, "テーマ決定") {
		t.Errorf("wizard_step: %q", out)
	}
	if out := call(t, r, "wizard_update", `{"stepId":1,"data":"コンビニ"}`); !strings.Contains(out, "基本パターン選択") {
		t.Errorf("wizard_update: %q", out)
	}
	if out := call(t, r, "wizard_step", `{}`); !strings.Contains(out, "基本パターン選択") {
		t.Errorf("wizard_step after update: %q", out)
	}
}

func TestRouter_WizardToEvaluation(t *testing.T) {
	r := newTestRouter(t)
	call(t, r, "start_wizard", `{}`)
	answers := []string{
		`"コント"`, `"コンビニ"`, `2`, `"深夜"`, `"駅前のコンビニ"`, `"新人店員"`, `"常連客"`,
		`"レジ"`, `"天然"`, `"常識人"`, `"顔なじみ"`, `["温めますかに僕もと答える"]`, `"いいえ"`,
		`{"aruaru":["ポイントカード"],"arisou":["歌う店員"],"nainai":["店長が宇宙人"]}`,
		`"正しい"`, `"疑問型"`, `"二人で温められる"`, `"はい"`,
	}
	for i, a := range answers {
		out := call(t, r, "next_question", `{"answer":`+a+`}`)
		if strings.HasPrefix(out, ErrorPrefix) {
			t.Fatalf("answer %d: %q", i+1, out)
		}
	}
	for _, name := range []string{"show_wizard_answers", "propose_sequence", "generate_script", "evaluate_script"} {
		if out := call(t, r, name, `{}`); strings.HasPrefix(out, ErrorPrefix) || strings.HasPrefix(out, InfoPrefix) {
			t.Errorf("%s: %q", name, out)
		}
	}
}

func TestCommand_Schema(t *testing.T) {
	r := newTestRouter(t)
	c, ok := r.Lookup("start_full_auto_creation")
	if !ok {
		t.Fatal("start_full_auto_creation missing")
	}
	data, err := json.Marshal(c.Schema())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var s struct {
		Type       string                    `json:"type"`
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Type != "object" {
		t.Errorf("type = %q", s.Type)
	}
	for _, p := range []string{"confirmed", "theme", "genre", "concept", "targetAudience"} {
		if _, ok := s.Properties[p]; !ok {
			t.Errorf("property %s missing", p)
		}
	}
	if diff := cmp.Diff([]any{"manzai", "conte"}, s.Properties["genre"]["enum"]); diff != "" {
		t.Errorf("genre enum (-want +got):\n%s", diff)
	}
	required := strings.Join(s.Required, ",")
	for _, p := range []string{"confirmed", "theme", "genre"} {
		if !strings.Contains(required, p) {
			t.Errorf("%s not required: %v", p, s.Required)
		}
	}
	if strings.Contains(required, "concept") {
		t.Errorf("concept should be optional: %v", s.Required)
	}

	for _, cmd := range r.Commands() {
		if cmd.Schema().Type != "object" {
			t.Errorf("%s schema type = %q", cmd.Name, cmd.Schema().Type)
		}
	}
}
