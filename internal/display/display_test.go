package display

import (
	"testing"

	"netacho/internal/neta"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		code neta.Level
		want string
	}{
		{neta.Aruaru, "あるある"},
		{neta.Arisou, "ありそう"},
		{neta.Nainai, "ないない"},
		{"unknown", "unknown"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Level(tc.code); got != tc.want {
			t.Errorf("Level(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestLevelWithCode(t *testing.T) {
	if got := LevelWithCode(neta.Nainai); got != "ないない (nainai)" {
		t.Errorf("got %q", got)
	}
	if got := LevelWithCode("x"); got != "x" {
		t.Errorf("got %q", got)
	}
}

func TestStage(t *testing.T) {
	if got := Stage(neta.Aruaru); got != "導入" {
		t.Errorf("Stage(aruaru) = %q", got)
	}
	if got := Stage(neta.Nainai); got != "クライマックス" {
		t.Errorf("Stage(nainai) = %q", got)
	}
}

func TestKindAndGenre(t *testing.T) {
	for k, want := range map[neta.Kind]string{
		neta.Verbal: "しゃべくり", neta.Physical: "アクション",
		neta.Situational: "状況", neta.Character: "キャラクター",
	} {
		if got := Kind(k); got != want {
			t.Errorf("Kind(%q) = %q, want %q", k, got, want)
		}
	}
	if Genre(neta.Manzai) != "漫才" || Genre(neta.Conte) != "コント" {
		t.Error("genre names")
	}
}

func TestStatus(t *testing.T) {
	if got := Status("in_progress"); got != "進行中" {
		t.Errorf("got %q", got)
	}
	if got := Status("weird"); got != "weird" {
		t.Errorf("got %q", got)
	}
}

func TestPercent(t *testing.T) {
	cases := map[float64]string{0: "0%", 0.6: "60%", 0.7: "70%", 1: "100%", 0.555: "56%"}
	for in, want := range cases {
		if got := Percent(in); got != want {
			t.Errorf("Percent(%v) = %q, want %q", in, got, want)
		}
	}
}
