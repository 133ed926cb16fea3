// Package sequence orders categorized jokes into the escalation arc of a
// script: relatable jokes open, plausible exaggerations build, absurd leaps
// close. Results are derived on every call and never persisted.
package sequence

import (
	"fmt"
	"strings"
	"time"

	"netacho/internal/display"
	"netacho/internal/neta"
)

// Entry is one proposed beat with rebuttal (tsukkomi) candidates.
type Entry struct {
	Joke               string     `json:"boke"`
	Level              neta.Level `json:"level"`
	SuggestedRebuttals []string   `json:"suggestedTsukkomi"`
}

type tier struct {
	level     neta.Level
	cap       int
	rebuttals []string
}

var proposal = []tier{
	{neta.Aruaru, 3, []string{"確かにそうやな", "あー、あるある！", "わかるわー"}},
	{neta.Arisou, 4, []string{"そんなことあるか？", "まあ...ありそうやけど", "それはちょっと..."}},
	{neta.Nainai, 2, []string{"なんでやねん！", "そんなわけあるかい！", "ありえへんやろ！"}},
}

// Propose takes at most 3 aruaru, 4 arisou and 2 nainai jokes, in bucket
// order, each with three rebuttal candidates for its level. Extra jokes are
// dropped; a short bucket contributes what it has.
func Propose(c neta.Categorized) []Entry {
	var out []Entry
	for _, t := range proposal {
		for _, joke := range head(c.Bucket(t.level), t.cap) {
			rebuttals := make([]string, len(t.rebuttals))
			copy(rebuttals, t.rebuttals)
			out = append(out, Entry{Joke: joke, Level: t.level, SuggestedRebuttals: rebuttals})
		}
	}
	return out
}

// ProposedLen is min(R,3)+min(P,4)+min(A,2).
func ProposedLen(c neta.Categorized) int {
	n := 0
	for _, t := range proposal {
		n += min(len(c.Bucket(t.level)), t.cap)
	}
	return n
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Format renders a proposal with its stage headings.
func Format(entries []Entry) string {
	var b strings.Builder
	b.WriteString("🎬 **台本構成の提案**\n\n")
	b.WriteString("あるある → ありそう → ないない の順にエスカレートする構成を提案します。\n\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "## %d. 【%s】 %s\n\n", i+1, display.Stage(e.Level), display.Level(e.Level))
		fmt.Fprintf(&b, "**ボケ**: %s\n\n", e.Joke)
		b.WriteString("**ツッコミ候補**:\n")
		for j, r := range e.SuggestedRebuttals {
			fmt.Fprintf(&b, "%d. %s\n", j+1, r)
		}
		b.WriteString("\n---\n\n")
	}
	b.WriteString("💭 **この構成はいかがですか？**\n")
	b.WriteString("- このまま台本にする場合は `generate_script`\n")
	b.WriteString("- 分類を見直す場合は `next_question` でやり直してください\n")
	return b.String()
}

// Beat is one composed joke with its chosen rebuttal and pause.
type Beat struct {
	Joke     string     `json:"boke"`
	Level    neta.Level `json:"type"`
	Rebuttal string     `json:"tsukkomi"`
	Timing   string     `json:"timing"`
}

// Composition is the three-act layout used by the full-auto script.
type Composition struct {
	Introduction      []Beat    `json:"introduction"`
	Development       []Beat    `json:"development"`
	Climax            []Beat    `json:"climax"`
	EstimatedDuration int       `json:"estimatedDuration"` // minutes
	DesignedAt        time.Time `json:"designedAt"`
}

// EstimatedMinutes is the fixed running time of a composed script.
const EstimatedMinutes = 6

type beatTier struct {
	level    neta.Level
	cap      int
	rebuttal string
	timing   string
}

var composition = []beatTier{
	{neta.Aruaru, 3, "あー、わかるわー", "2s"},
	{neta.Arisou, 3, "それはちょっと...", "1s"},
	{neta.Nainai, 2, "なんでやねん！", "3s"},
}

// Compose lays out at most 3/3/2 jokes with one rebuttal and timing each.
func Compose(c neta.Categorized, now time.Time) Composition {
	acts := make([][]Beat, len(composition))
	for i, t := range composition {
		acts[i] = []Beat{}
		for _, joke := range head(c.Bucket(t.level), t.cap) {
			acts[i] = append(acts[i], Beat{Joke: joke, Level: t.level, Rebuttal: t.rebuttal, Timing: t.timing})
		}
	}
	return Composition{
		Introduction:      acts[0],
		Development:       acts[1],
		Climax:            acts[2],
		EstimatedDuration: EstimatedMinutes,
		DesignedAt:        now.UTC(),
	}
}

// Beats returns every beat in performance order.
func (c Composition) Beats() []Beat {
	out := make([]Beat, 0, len(c.Introduction)+len(c.Development)+len(c.Climax))
	out = append(out, c.Introduction...)
	out = append(out, c.Development...)
	return append(out, c.Climax...)
}
