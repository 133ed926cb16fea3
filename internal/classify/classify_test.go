package classify

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"netacho/internal/neta"
)

func TestOne(t *testing.T) {
	cases := []struct {
		text string
		kind neta.Kind
		conf float64
	}{
		{"レジの前で急に踊る", neta.Physical, 0.8},
		{"もし店員がロボットだったら", neta.Situational, 0.7},
		{"店長なのに商品の場所を知らない", neta.Character, 0.7},
		{"温めますかって聞かれて僕もって答えた", neta.Verbal, 0.6},
		// physical is checked before situational
		{"もし走ることになったら", neta.Physical, 0.8},
		{"", neta.Verbal, 0.6},
	}
	for _, tc := range cases {
		got := One(tc.text)
		if got.Kind != tc.kind || got.Confidence != tc.conf {
			t.Errorf("One(%q) = %s/%v, want %s/%v", tc.text, got.Kind, got.Confidence, tc.kind, tc.conf)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	in := []string{"踊る店員", "もし夜だったら", "キャラが濃い", "普通のボケ"}
	first := Classify(in)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Classify(in)); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
	if len(first) != len(in) {
		t.Fatalf("len = %d, want %d", len(first), len(in))
	}
	for i, r := range first {
		if r.Text != in[i] {
			t.Errorf("order changed at %d: %q", i, r.Text)
		}
	}
}

func TestFormat(t *testing.T) {
	out := Format(Classify([]string{"踊る", "普通", "もう一つ普通"}))
	for _, want := range []string{
		"### しゃべくりボケ (2個)",
		"1. 普通 (確信度: 60%)",
		"### アクションボケ (1個)",
		"1. 踊る (確信度: 80%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "状況ボケ") {
		t.Errorf("empty kinds should be omitted:\n%s", out)
	}
	if strings.Index(out, "しゃべくり") > strings.Index(out, "アクション") {
		t.Errorf("verbal should be listed first:\n%s", out)
	}
}
