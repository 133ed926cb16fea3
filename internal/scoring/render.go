package scoring

import (
	"fmt"
	"strings"

	"netacho/internal/format"
)

func sprintf(f string, args ...any) string { return fmt.Sprintf(f, args...) }

// Stars renders the total as five ★/☆ cells, one per 20 points.
func Stars(total int) string {
	n := max(0, min(5, total/20))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Format renders the report as markdown.
func Format(r Report) string {
	var b strings.Builder
	b.WriteString("📊 **台本評価レポート**\n\n")
	fmt.Fprintf(&b, "## 総合スコア: %d/100点\n\n", r.Total)
	fmt.Fprintf(&b, "評価: %s\n\n", Stars(r.Total))

	b.WriteString("## 詳細評価\n\n")
	for _, c := range r.Categories {
		pct := c.Score * 100 / c.Max
		fmt.Fprintf(&b, "### %s\n", c.Name)
		fmt.Fprintf(&b, "%s %d/%d点 (%d%%)\n", format.Bar(c.Score, c.Max), c.Score, c.Max, pct)
		fmt.Fprintf(&b, "💬 %s\n\n", c.Feedback)
	}

	if len(r.Praise) > 0 {
		b.WriteString("## 👍 良かった点\n\n")
		for _, p := range r.Praise {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("## 💡 改善のための提案\n\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	b.WriteString("## 📝 総評\n\n")
	b.WriteString(Verdict(r.Total))
	return b.String()
}
