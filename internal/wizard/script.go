package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"netacho/internal/catalog"
	"netacho/internal/display"
	"netacho/internal/neta"
	"netacho/internal/sequence"
	"netacho/internal/store"
)

// GeneratedScriptKey is where GenerateScript saves its markdown.
const GeneratedScriptKey = "generated-script.md"

// categorized loads the session and its categorize-step answer.
func (w *Interactive) categorized(ctx context.Context) (*Session, neta.Categorized, error) {
	sess, err := w.Load(ctx)
	if err != nil {
		return nil, neta.Categorized{}, err
	}
	c, ok := sess.Categorized()
	if !ok {
		return sess, neta.Categorized{}, neta.Errorf(neta.ErrNotInitialized,
			"まずボケの分類（ステップ%d）を完了してください。", catalog.CategorizeStep)
	}
	return sess, c, nil
}

// ProposeSequence orders the user's categorized jokes into the escalation
// arc. The proposal is recomputed on every call and not stored.
func (w *Interactive) ProposeSequence(ctx context.Context) (string, error) {
	_, c, err := w.categorized(ctx)
	if err != nil {
		return "", err
	}
	return sequence.Format(sequence.Propose(c)), nil
}

type scriptAct struct {
	level    neta.Level
	cap      int
	rebuttal string
	kind     string
	strength int
	timing   string
}

var scriptActs = []scriptAct{
	{neta.Aruaru, 2, "あー、わかるわー。", "共感型", 3, "2s"},
	{neta.Arisou, 3, "それはちょっと...", "疑問型", 5, "1s"},
	{neta.Nainai, 2, "なんでやねん！！", "否定型", 8, "3s"},
}

// GenerateScript assembles an annotated script from the answers and saves
// it as generated-script.md. Missing answers get placeholders.
func (w *Interactive) GenerateScript(ctx context.Context) (string, error) {
	sess, err := w.Load(ctx)
	if err != nil {
		return "", err
	}
	script := RenderScript(sess)
	if err := w.store.Put(ctx, GeneratedScriptKey, []byte(script)); err != nil {
		return "", fmt.Errorf("wizard: save script: %w", err)
	}
	w.log.Info("script generated", "bytes", len(script))
	return "🎭 **台本が完成しました！**\n\n" + script +
		"\n📁 ファイルとして保存しました: `" + GeneratedScriptKey + "`\n\n" +
		"評価したい場合は `evaluate_script` を使用してください。", nil
}

// RenderScript builds the markdown script for a session.
func RenderScript(sess *Session) string {
	boke := sess.Text(6, "ボケ")
	tsukkomi := sess.Text(7, "ツッコミ")
	situation := sess.Text(8, "設定未定")

	var b strings.Builder
	fmt.Fprintf(&b, "# %sの台本\n\n", sess.Text(2, "テーマ未定"))
	b.WriteString("## 設定\n")
	fmt.Fprintf(&b, "- **タイプ**: %s\n", sess.Text(1, "未定"))
	fmt.Fprintf(&b, "- **場所**: %s\n", sess.Text(5, "場所未定"))
	fmt.Fprintf(&b, "- **時間**: %s\n", sess.Text(4, "時間未定"))
	fmt.Fprintf(&b, "- **状況**: %s\n", situation)
	fmt.Fprintf(&b, "- **登場人物**: %s、%s\n\n", boke, tsukkomi)
	b.WriteString("---\n\n")

	b.WriteString("## シーン1：導入\n\n")
	fmt.Fprintf(&b, "<!-- @stage-direction: %s -->\n\n", situation)

	if c, ok := sess.Categorized(); ok {
		for _, act := range scriptActs {
			jokes := c.Bucket(act.level)
			if len(jokes) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s（%s）\n\n", display.Stage(act.level), display.Level(act.level))
			for i, j := range jokes {
				if i == act.cap {
					break
				}
				fmt.Fprintf(&b, "**%s**: %s\n", boke, j)
				fmt.Fprintf(&b, "<!-- @boke: type=%q level=%q -->\n\n", display.Level(act.level), act.level)
				fmt.Fprintf(&b, "**%s**: %s\n", tsukkomi, act.rebuttal)
				fmt.Fprintf(&b, "<!-- @tsukkomi: type=%q intensity=\"%d\" -->\n\n", act.kind, act.strength)
				fmt.Fprintf(&b, "<!-- @timing: %s -->\n\n", act.timing)
			}
		}
	}

	b.WriteString("### オチ\n\n")
	fmt.Fprintf(&b, "**%s**: %s\n\n", tsukkomi, sess.Text(catalog.PunchlineStep, "（オチは後で考える）"))
	b.WriteString("<!-- @stage-direction: 二人で決めポーズ -->\n\n")
	b.WriteString("---\n\n*台本終了*\n")
	return b.String()
}

// GeneratedScript returns the last saved script, or ErrNotInitialized.
func (w *Interactive) GeneratedScript(ctx context.Context) (string, error) {
	data, err := w.store.Get(ctx, GeneratedScriptKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", neta.Errorf(neta.ErrNotInitialized, "台本がまだ生成されていません。generate_script を実行してください。")
		}
		return "", fmt.Errorf("wizard: read script: %w", err)
	}
	return string(data), nil
}
