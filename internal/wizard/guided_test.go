package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"netacho/internal/neta"
	"netacho/internal/store"
)

func TestGuided_StepWithoutState(t *testing.T) {
	g := NewGuided(store.NewMemStore())
	out, err := g.Step(context.Background(), 0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	for _, want := range []string{"基礎段階 - テーマ決定", "1. 学校", "進捗: 0% [1/14]"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGuided_UnknownStep(t *testing.T) {
	g := NewGuided(store.NewMemStore())
	ctx := context.Background()
	if _, err := g.Step(ctx, 15); !errors.Is(err, neta.ErrInvalidStep) {
		t.Errorf("Step(15) err = %v", err)
	}
	if _, err := g.Update(ctx, 0, json.RawMessage(`"x"`)); !errors.Is(err, neta.ErrInvalidStep) {
		t.Errorf("Update(0) err = %v", err)
	}
}

func TestGuided_UpdateWritesDotPaths(t *testing.T) {
	st := store.NewMemStore()
	g := NewGuided(st)
	ctx := context.Background()

	steps := []struct {
		id  int
		raw string
	}{
		{1, `"コンビニ"`},
		{5, `{"boke":"田中","tsukkomi":"佐藤"}`},
		{11, `"ポイントカードを探し続ける"`},
	}
	for _, s := range steps {
		if _, err := g.Update(ctx, s.id, json.RawMessage(s.raw)); err != nil {
			t.Fatalf("Update(%d): %v", s.id, err)
		}
	}

	state, found, err := g.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if state.Cursor != 12 {
		t.Errorf("cursor = %d, want 12", state.Cursor)
	}
	if got := state.String("who.boke"); got != "田中" {
		t.Errorf("who.boke = %q", got)
	}
	if got := state.String("structure.introduction"); got != "ポイントカードを探し続ける" {
		t.Errorf("structure.introduction = %q", got)
	}

	var raw map[string]any
	if err := store.GetJSON(ctx, st, GuidedStateKey, &raw); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"introduction": "ポイントカードを探し続ける"}
	if diff := cmp.Diff(want, raw["data"].(map[string]any)["structure"]); diff != "" {
		t.Errorf("persisted structure (-want +got):\n%s", diff)
	}
}

func TestGuided_UpdateRejectsBadShape(t *testing.T) {
	g := NewGuided(store.NewMemStore())
	ctx := context.Background()
	_, err := g.Update(ctx, 9, json.RawMessage(`["one","two"]`))
	if !errors.Is(err, neta.ErrInvalidAnswer) {
		t.Fatalf("err = %v, want ErrInvalidAnswer", err)
	}
	if _, found, _ := g.Load(ctx); found {
		t.Error("rejected update created state")
	}
}

func TestGuided_StatusAndBokeList(t *testing.T) {
	g := NewGuided(store.NewMemStore())
	ctx := context.Background()
	if _, err := g.Status(ctx); !errors.Is(err, neta.ErrNotInitialized) {
		t.Fatalf("Status err = %v", err)
	}
	if _, err := g.BokeList(ctx); !errors.Is(err, neta.ErrNotInitialized) {
		t.Fatalf("BokeList err = %v", err)
	}

	jokes := make([]string, 10)
	for i := range jokes {
		jokes[i] = "ボケ" + string(rune('A'+i))
	}
	raw, _ := json.Marshal(jokes)
	if _, err := g.Update(ctx, 9, raw); err != nil {
		t.Fatalf("Update(9): %v", err)
	}
	out, err := g.BokeList(ctx)
	if err != nil || !strings.Contains(out, "未分類のボケ (10個)") {
		t.Fatalf("BokeList raw: %v\n%s", err, out)
	}

	if _, err := g.Update(ctx, 10, json.RawMessage(`{"aruaru":["ボケA"],"arisou":["ボケB"],"nainai":["ボケC","ボケD"]}`)); err != nil {
		t.Fatalf("Update(10): %v", err)
	}
	out, err = g.BokeList(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"### ないない (2個)", "合計: 4個のボケ"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	status, err := g.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status, "出したボケ (10個)") || !strings.Contains(status, "[11/14]") {
		t.Errorf("status:\n%s", status)
	}

	// the climax step offers the nainai bucket
	prompt, err := g.Step(ctx, 13)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "- ボケD") {
		t.Errorf("step 13 should list nainai jokes:\n%s", prompt)
	}
}

func TestGuided_CompletesAfterLastStep(t *testing.T) {
	g := NewGuided(store.NewMemStore())
	ctx := context.Background()
	out, err := g.Update(ctx, 14, json.RawMessage(`"二人で決めポーズ"`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "全ステップが完了") {
		t.Errorf("update on last step:\n%s", out)
	}
	out, err = g.Step(ctx, 0)
	if err != nil || !strings.Contains(out, "全ステップが完了") {
		t.Errorf("Step after completion: %v\n%s", err, out)
	}
}

func TestGuidedState_SetReplacesScalars(t *testing.T) {
	st := &GuidedState{Data: map[string]any{"structure": "old"}}
	st.Set("structure.climax", "x")
	if got := st.String("structure.climax"); got != "x" {
		t.Errorf("got %q", got)
	}
	if _, ok := st.Get("missing.path"); ok {
		t.Error("missing path found")
	}
}
