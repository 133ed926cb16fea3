// Package classify assigns an advisory delivery kind to each joke using a
// fixed, ordered set of keyword rules. The first matching rule wins; a joke
// that matches nothing is verbal. The result is deterministic and never
// overrides the level the user chose.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"netacho/internal/display"
	"netacho/internal/neta"
)

// Result is the classification of one joke.
type Result struct {
	Text       string    `json:"text"`
	Kind       neta.Kind `json:"kind"`
	Confidence float64   `json:"confidence"`
}

type rule struct {
	kind       neta.Kind
	pattern    *regexp.Regexp
	confidence float64
}

var rules = []rule{
	{neta.Physical, regexp.MustCompile(`動く|走る|飛ぶ|投げる|叩く|転ぶ|ジャンプ|踊る|回る|倒れる`), 0.8},
	{neta.Situational, regexp.MustCompile(`もし|なったら|だったら|という設定|の世界`), 0.7},
	{neta.Character, regexp.MustCompile(`性格|くせに|なのに|みたいな|っぽい|キャラ`), 0.7},
}

// DefaultConfidence is assigned to jokes that match no rule.
const DefaultConfidence = 0.6

// One classifies a single joke.
func One(text string) Result {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return Result{Text: text, Kind: r.kind, Confidence: r.confidence}
		}
	}
	return Result{Text: text, Kind: neta.Verbal, Confidence: DefaultConfidence}
}

// Classify classifies every joke, preserving input order.
func Classify(texts []string) []Result {
	out := make([]Result, len(texts))
	for i, t := range texts {
		out[i] = One(t)
	}
	return out
}

// Format groups results by kind in display order with confidence
// percentages. Kinds with no jokes are omitted.
func Format(results []Result) string {
	byKind := make(map[neta.Kind][]Result, len(neta.Kinds))
	for _, r := range results {
		byKind[r.Kind] = append(byKind[r.Kind], r)
	}

	var b strings.Builder
	b.WriteString("**ボケの種類分析結果**\n\n")
	for _, k := range neta.Kinds {
		group := byKind[k]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %sボケ (%d個)\n", display.Kind(k), len(group))
		for i, r := range group {
			fmt.Fprintf(&b, "%d. %s (確信度: %s)\n", i+1, r.Text, display.Percent(r.Confidence))
		}
		b.WriteString("\n")
	}
	return b.String()
}
