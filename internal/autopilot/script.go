package autopilot

import (
	"fmt"
	"strings"
	"time"

	"netacho/internal/display"
	"netacho/internal/sequence"
)

func sprintf(f string, args ...any) string { return fmt.Sprintf(f, args...) }

type scene struct {
	title        string
	beats        []sequence.Beat
	tsukkomiType string
}

// renderScript builds the annotated markdown script for a composed session.
func renderScript(s *Session, comp *sequence.Composition, now time.Time) string {
	req := s.Request
	var b strings.Builder
	fmt.Fprintf(&b, "# %sの%s\n\n", req.Theme, display.Genre(req.Genre))
	b.WriteString("## 設定\n")
	fmt.Fprintf(&b, "- **テーマ**: %s\n", req.Theme)
	fmt.Fprintf(&b, "- **ジャンル**: %s\n", display.Genre(req.Genre))
	for _, opt := range []struct{ label, value string }{
		{"コンセプト", req.Concept},
		{"想定時間", req.Duration},
		{"対象観客", req.TargetAudience},
		{"特別要望", req.SpecialRequests},
	} {
		if opt.value != "" {
			fmt.Fprintf(&b, "- **%s**: %s\n", opt.label, opt.value)
		}
	}
	b.WriteString("- **作成方法**: フルオート生成\n")
	fmt.Fprintf(&b, "- **セッションID**: %s\n\n---\n\n", s.ID)

	scenes := []scene{
		{"シーン1: 導入", comp.Introduction, `type="共感型"`},
		{"シーン2: 展開", comp.Development, `type="疑問型"`},
		{"シーン3: クライマックス", comp.Climax, `type="否定型" intensity="8"`},
	}
	for i, sc := range scenes {
		fmt.Fprintf(&b, "## %s\n\n", sc.title)
		if i == 0 {
			fmt.Fprintf(&b, "<!-- @stage-direction: %sの設定で二人が登場 -->\n\n", req.Theme)
		}
		for _, beat := range sc.beats {
			fmt.Fprintf(&b, "**ボケ**: %s\n", beat.Joke)
			fmt.Fprintf(&b, "<!-- @boke: type=%q -->\n\n", beat.Level)
			fmt.Fprintf(&b, "**ツッコミ**: %s\n", beat.Rebuttal)
			fmt.Fprintf(&b, "<!-- @tsukkomi: %s -->\n\n", sc.tsukkomiType)
			fmt.Fprintf(&b, "<!-- @timing: %s -->\n\n", beat.Timing)
		}
	}
	b.WriteString("<!-- @stage-direction: 決めポーズで終了 -->\n\n---\n\n")
	b.WriteString("*🤖 netacho フルオート生成台本*\n")
	fmt.Fprintf(&b, "*生成日時: %s*\n", now.UTC().Format(time.RFC3339))
	return b.String()
}
