package sequence

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"netacho/internal/neta"
)

func jokes(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

func TestPropose_TruncationLaw(t *testing.T) {
	for r := 0; r <= 5; r++ {
		for p := 0; p <= 6; p++ {
			for a := 0; a <= 3; a++ {
				c := neta.Categorized{Aruaru: jokes("r", r), Arisou: jokes("p", p), Nainai: jokes("a", a)}
				got := Propose(c)
				want := min(r, 3) + min(p, 4) + min(a, 2)
				if len(got) != want || ProposedLen(c) != want {
					t.Fatalf("R=%d P=%d A=%d: len = %d, want %d", r, p, a, len(got), want)
				}
			}
		}
	}
}

func TestPropose_OrderAndRebuttals(t *testing.T) {
	c := neta.Categorized{
		Aruaru: jokes("r", 5),
		Arisou: jokes("p", 2),
		Nainai: jokes("a", 3),
	}
	got := Propose(c)
	var texts []string
	for _, e := range got {
		texts = append(texts, e.Joke)
		if len(e.SuggestedRebuttals) != 3 {
			t.Errorf("%s: %d rebuttals, want 3", e.Joke, len(e.SuggestedRebuttals))
		}
	}
	want := []string{"r1", "r2", "r3", "p1", "p2", "a1", "a2"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Level != neta.Aruaru || got[6].Level != neta.Nainai {
		t.Errorf("levels: %s .. %s", got[0].Level, got[6].Level)
	}
}

func TestPropose_Idempotent(t *testing.T) {
	c := neta.Categorized{Aruaru: jokes("r", 4), Arisou: jokes("p", 4), Nainai: jokes("a", 4)}
	first := Propose(c)
	first[0].SuggestedRebuttals[0] = "mutated"
	if diff := cmp.Diff(Propose(c), Propose(c)); diff != "" {
		t.Errorf("not idempotent:\n%s", diff)
	}
	if Propose(c)[0].SuggestedRebuttals[0] == "mutated" {
		t.Error("rebuttal table shared with caller")
	}
}

func TestFormat_Stages(t *testing.T) {
	out := Format(Propose(neta.Categorized{
		Aruaru: []string{"レジ袋いりますか"},
		Arisou: []string{"店員が常連に話しかける"},
		Nainai: []string{"店長が宇宙人"},
	}))
	for _, want := range []string{"【導入】", "【展開】", "【クライマックス】", "店長が宇宙人", "なんでやねん！"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestCompose(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Compose(neta.Categorized{
		Aruaru: jokes("r", 6),
		Arisou: jokes("p", 4),
		Nainai: jokes("a", 3),
	}, now)
	if len(c.Introduction) != 3 || len(c.Development) != 3 || len(c.Climax) != 2 {
		t.Fatalf("acts = %d/%d/%d, want 3/3/2", len(c.Introduction), len(c.Development), len(c.Climax))
	}
	want := Beat{Joke: "a1", Level: neta.Nainai, Rebuttal: "なんでやねん！", Timing: "3s"}
	if diff := cmp.Diff(want, c.Climax[0]); diff != "" {
		t.Errorf("climax beat (-want +got):\n%s", diff)
	}
	if c.Development[0].Timing != "1s" || c.Introduction[0].Timing != "2s" {
		t.Errorf("timings: %s %s", c.Introduction[0].Timing, c.Development[0].Timing)
	}
	if c.EstimatedDuration != 6 || !c.DesignedAt.Equal(now) {
		t.Errorf("duration=%d designedAt=%v", c.EstimatedDuration, c.DesignedAt)
	}
	if len(c.Beats()) != 8 {
		t.Errorf("Beats = %d, want 8", len(c.Beats()))
	}
}

func TestCompose_EmptyActsAreNotNil(t *testing.T) {
	c := Compose(neta.Categorized{}, time.Now())
	if c.Introduction == nil || c.Development == nil || c.Climax == nil {
		t.Error("acts should be empty slices so they marshal as []")
	}
}
