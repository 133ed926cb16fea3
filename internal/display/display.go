// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in tool output and markdown reports.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import (
	"fmt"

	"netacho/internal/neta"
)

// --- Joke levels ---

var levels = map[neta.Level]string{
	neta.Aruaru: "あるある",
	neta.Arisou: "ありそう",
	neta.Nainai: "ないない",
}

// Level returns the Japanese name for an escalation level.
// Unknown codes are returned as-is.
func Level(l neta.Level) string {
	if name, ok := levels[l]; ok {
		return name
	}
	return string(l)
}

// LevelWithCode returns "あるある (aruaru)" format.
func LevelWithCode(l neta.Level) string {
	if name, ok := levels[l]; ok {
		return name + " (" + string(l) + ")"
	}
	return string(l)
}

// --- Script stages ---

var levelStages = map[neta.Level]string{
	neta.Aruaru: "導入",
	neta.Arisou: "展開",
	neta.Nainai: "クライマックス",
}

// Stage returns the script section a level is placed in.
func Stage(l neta.Level) string {
	if name, ok := levelStages[l]; ok {
		return name
	}
	return string(l)
}

// --- Joke kinds ---

var kinds = map[neta.Kind]string{
	neta.Verbal:      "しゃべくり",
	neta.Physical:    "アクション",
	neta.Situational: "状況",
	neta.Character:   "キャラクター",
}

// Kind returns the Japanese name for a delivery kind ("しゃべくり").
func Kind(k neta.Kind) string {
	if name, ok := kinds[k]; ok {
		return name
	}
	return string(k)
}

// --- Genres ---

var genres = map[neta.Genre]string{
	neta.Manzai: "漫才",
	neta.Conte:  "コント",
}

// Genre returns the Japanese name for a script genre.
func Genre(g neta.Genre) string {
	if name, ok := genres[g]; ok {
		return name
	}
	return string(g)
}

// --- Auto session status ---

var statuses = map[string]string{
	"pending":     "待機中",
	"in_progress": "進行中",
	"completed":   "完了",
	"error":       "エラー",
}

// Status returns the Japanese name for a full-auto session status.
func Status(code string) string {
	if name, ok := statuses[code]; ok {
		return name
	}
	return code
}

// Percent formats a 0..1 ratio as "80%".
func Percent(ratio float64) string {
	return fmt.Sprintf("%d%%", int(ratio*100+0.5))
}
