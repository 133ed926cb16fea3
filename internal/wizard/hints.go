package wizard

import (
	"fmt"
	"strings"
)

var hints = map[string]string{
	"ボケ": "- 日常の中の違和感を探す\n- 「もしも」を考える\n- 極端に考えてみる\n- 勘違いや聞き間違いを使う",
	"あるある": "- みんなが経験したこと\n- 共感できる失敗談\n- 日常のちょっとした不満\n- 誰もが感じる気持ち",
	"ありそう": "- あるあるを少し大げさに\n- ちょっと変わった反応\n- でも理解できる範囲で\n- キャラクターらしさを出す",
	"ないない": "- 常識を完全に覆す\n- でも文脈は保つ\n- 物理法則は無視してもOK\n- インパクト重視",
	"オチ":   "- 今までの流れをまとめる\n- 最後に一番大きなボケ\n- きれいに締める\n- 余韻を残す",
}

var hintAliases = map[string]string{
	"joke":      "ボケ",
	"boke":      "ボケ",
	"relatable": "あるある",
	"aruaru":    "あるある",
	"plausible": "ありそう",
	"arisou":    "ありそう",
	"absurd":    "ないない",
	"nainai":    "ないない",
	"punchline": "オチ",
	"ochi":      "オチ",
}

// HintTopics lists the canonical topics in display order.
var HintTopics = []string{"ボケ", "あるある", "ありそう", "ないない", "オチ"}

// Hint returns advice for a topic. English aliases are accepted; an unknown
// topic yields a message listing the valid ones.
func Hint(topic string) string {
	t := strings.TrimSpace(topic)
	if canon, ok := hintAliases[strings.ToLower(t)]; ok {
		t = canon
	}
	body, ok := hints[t]
	if !ok {
		return fmt.Sprintf("💡 **%sのヒント**\n\n具体的なトピックを教えてください（%s）", topic, strings.Join(HintTopics, "、"))
	}
	return fmt.Sprintf("💡 **%sのヒント**\n\n「%s」を考えるヒント：\n%s", t, t, body)
}
