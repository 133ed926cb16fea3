package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netacho/internal/neta"
)

func wellBuilt() Input {
	return Input{
		Theme:     "コンビニ",
		Pattern:   "日常×非日常",
		Boke:      "新人店員",
		Tsukkomi:  "常連客",
		Punchline: "二人で温められる",
		Jokes: []string{
			"客を店長と勘違いする",
			"お釣りを渡し忘れる",
			"もしレジが喋ったら",
			"ロボットみたいに挨拶する",
		},
		Categorized: neta.Categorized{
			Aruaru: []string{"a1", "a2", "a3"},
			Arisou: []string{"b1", "b2", "b3", "b4", "b5"},
			Nainai: []string{"n1", "店長が宇宙から来た"},
		},
	}
}

func TestEvaluate_IdealScript(t *testing.T) {
	r := Evaluate(wellBuilt())
	require.Len(t, r.Categories, 5)
	for _, c := range r.Categories {
		assert.Equal(t, MaxPerCategory, c.Score, c.Key)
		assert.Equal(t, MaxPerCategory, c.Max, c.Key)
	}
	assert.Equal(t, 100, r.Total)
	assert.Empty(t, r.Suggestions)
	assert.Len(t, r.Praise, 5)
	assert.Equal(t, "★★★★★", Stars(r.Total))
}

func TestEvaluate_SparseScript(t *testing.T) {
	r := Evaluate(Input{
		Pattern:     "非日常×非日常",
		Jokes:       []string{"ただのボケ"},
		Categorized: neta.Categorized{Arisou: []string{"b1"}},
	})

	want := map[string]int{
		Balance:     0,
		Variety:     20,
		Progression: 10,
		Structure:   0,
		Impact:      15,
	}
	for key, score := range want {
		c, ok := r.Category(key)
		require.True(t, ok, key)
		assert.Equal(t, score, c.Score, key)
	}
	assert.Equal(t, 45, r.Total)
	assert.Contains(t, Verdict(r.Total), "基本はできています")

	s, _ := r.Category(Structure)
	assert.Contains(t, s.Feedback, "テーマが不明確")
	assert.Contains(t, s.Feedback, "オチが決まっていない")
	assert.Contains(t, strings.Join(r.Suggestions, "\n"), "非日常×非日常")
}

func TestEvaluate_RepeatedPattern(t *testing.T) {
	in := wellBuilt()
	in.Jokes = []string{"財布を忘れ", "鍵を忘れ", "傘を忘れ", "自分を忘れ"}
	r := Evaluate(in)
	v, _ := r.Category(Variety)
	assert.Equal(t, 13, v.Score)
	assert.Contains(t, strings.Join(r.Suggestions, "\n"), "4個連続")
}

func TestVerdict_Bands(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{100, "素晴らしい"},
		{80, "素晴らしい"},
		{79, "なかなか良い"},
		{60, "なかなか良い"},
		{40, "基本はできています"},
		{39, "まだ改善の余地"},
	}
	for _, tt := range tests {
		assert.Contains(t, Verdict(tt.total), tt.want, tt.total)
	}
}

func TestFormat(t *testing.T) {
	out := Format(Evaluate(wellBuilt()))
	for _, want := range []string{"総合スコア: 100/100点", "### バランス", "██████████ 20/20点 (100%)", "良かった点", "総評"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "改善のための提案")
}

func TestEvaluateAuto(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := EvaluateAuto(now)
	assert.Equal(t, 70, e.TotalScore)
	assert.Equal(t, AutoStructure+AutoVariety+AutoBalance+AutoImpact+AutoPracticality, e.TotalScore)
	assert.Len(t, e.Suggestions, 4)
	assert.Equal(t, now, e.EvaluatedAt)

	e.Suggestions[0] = "changed"
	assert.NotEqual(t, "changed", AutoSuggestions[0])
}
