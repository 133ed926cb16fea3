package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"netacho/internal/catalog"
	"netacho/internal/classify"
	"netacho/internal/format"
	"netacho/internal/logging"
	"netacho/internal/neta"
	"netacho/internal/store"
)

// Interactive drives the 18-step wizard for one session key.
type Interactive struct {
	store   store.Store
	key     string
	catalog *catalog.Catalog
	log     *slog.Logger
}

// NewInteractive returns an engine bound to the session named key.
func NewInteractive(st store.Store, key string) *Interactive {
	if key == "" {
		key = DefaultSessionKey
	}
	return &Interactive{
		store:   st,
		key:     key,
		catalog: catalog.Interactive(),
		log:     logging.New("wizard").With("session_key", key),
	}
}

// Key is the session key this engine reads and writes.
func (w *Interactive) Key() string { return w.key }

// Catalog returns the step table.
func (w *Interactive) Catalog() *catalog.Catalog { return w.catalog }

// Load returns the current session, or neta.ErrNotInitialized.
func (w *Interactive) Load(ctx context.Context) (*Session, error) {
	return loadSession(ctx, w.store, w.key)
}

// Start resets the session to step 1 and returns the first prompt.
func (w *Interactive) Start(ctx context.Context) (string, error) {
	if err := saveSession(ctx, w.store, w.key, newSession()); err != nil {
		return "", err
	}
	w.log.Info("wizard started")

	first, _ := w.catalog.Step(1)
	var b strings.Builder
	b.WriteString("🎭 **漫才・コント台本作成ウィザードへようこそ！**\n\n")
	fmt.Fprintf(&b, "これから%dのステップで、理論に基づいた台本を一緒に作っていきます。\n", w.catalog.Len())
	b.WriteString("私は質問をするだけです。答えを考えるのは**あなた**です！\n\n")
	b.WriteString("最初の質問：\n\n")
	b.WriteString(renderStep(first))
	return b.String(), nil
}

// Submit validates raw against the current step, records it, advances the
// cursor and returns the next prompt. Nothing is written when the answer is
// invalid or the session is already complete.
func (w *Interactive) Submit(ctx context.Context, raw json.RawMessage) (string, error) {
	sess, err := w.Load(ctx)
	if err != nil {
		return "", err
	}
	n := w.catalog.Len()
	if sess.Cursor > n {
		return w.completion(sess), nil
	}
	step, ok := w.catalog.Step(sess.Cursor)
	if !ok {
		return "", fmt.Errorf("wizard: session cursor %d outside catalog", sess.Cursor)
	}
	ans, err := step.Validate(raw)
	if err != nil {
		w.log.Debug("answer rejected", "step", step.ID, "error", err)
		return "", err
	}

	cursor := sess.Cursor
	if prev, ok := sess.Answers[step.Field]; ok && cursor == catalog.JokeStep {
		ans = catalog.ListAnswer(append(append([]string{}, prev.Items()...), ans.Items()...)...)
	}
	sess.Answers[step.Field] = ans

	sess.Cursor = cursor + 1
	looped := cursor == catalog.MoreJokesStep && ans.Text == catalog.Affirmative
	if looped {
		sess.Cursor = catalog.JokeStep
	}
	if err := saveSession(ctx, w.store, w.key, sess); err != nil {
		return "", err
	}
	w.log.Info("answer recorded", "step", cursor, "cursor", sess.Cursor, "looped", looped)

	if sess.Cursor > n {
		return w.completion(sess), nil
	}
	next, _ := w.catalog.Step(sess.Cursor)
	var b strings.Builder
	if looped {
		fmt.Fprintf(&b, "では、追加のボケを考えてください。（現在%d個）\n\n", len(sess.Jokes()))
	} else {
		b.WriteString("✅ 回答を記録しました。\n\n")
	}
	b.WriteString(renderStep(next))
	if next.ID == catalog.ClassifyStep {
		b.WriteString("\n\n")
		b.WriteString(classify.Format(classify.Classify(sess.Jokes())))
		b.WriteString("この分類は正しいですか？間違っている場合は修正内容を、正しい場合は「正しい」とお答えください。")
	}
	b.WriteString("\n\n")
	b.WriteString(format.Progress(sess.Cursor-1, n))
	return b.String(), nil
}

func (w *Interactive) completion(sess *Session) string {
	var b strings.Builder
	b.WriteString("🎉 **おめでとうございます！**\n\n")
	b.WriteString("全ての質問に答えていただきました。これで台本の素材が揃いました。\n\n")
	fmt.Fprintf(&b, "集まったボケ: %d個\n\n", len(sess.Jokes()))
	b.WriteString("次のステップ：\n")
	b.WriteString("- **内容確認**: `show_wizard_answers`\n")
	b.WriteString("- **構成提案**: `propose_sequence`（ボケの順序とツッコミを提案）\n")
	b.WriteString("- **台本生成**: `generate_script`（ト書き付き台本作成）\n")
	b.WriteString("- **評価**: `evaluate_script`（理論に基づく評価）\n")
	return b.String()
}

// ShowAnswers lists the recorded answers in catalog order with progress.
func (w *Interactive) ShowAnswers(ctx context.Context) (string, error) {
	sess, err := w.Load(ctx)
	if errors.Is(err, neta.ErrNotInitialized) {
		return "", neta.Errorf(neta.ErrNotInitialized, "まだ回答がありません。start_wizard で始めてください。")
	}
	if err != nil {
		return "", err
	}
	n := w.catalog.Len()
	var b strings.Builder
	b.WriteString("📝 **あなたが考えた内容**\n\n")
	recorded := 0
	for _, step := range w.catalog.Steps() {
		a, ok := sess.Answers[step.Field]
		if !ok {
			continue
		}
		recorded++
		if a.Form == catalog.FormList {
			fmt.Fprintf(&b, "**%s** (%d個):\n", step.Name, len(a.List))
			for i, item := range a.List {
				fmt.Fprintf(&b, "%d. %s\n", i+1, item)
			}
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "**%s**: %s\n\n", step.Name, a.String())
	}
	if recorded == 0 {
		b.WriteString("まだ回答がありません。\n\n")
	}
	done := min(sess.Cursor-1, n)
	fmt.Fprintf(&b, "進捗: ステップ %d / %d 完了 %s", done, n, format.Bar(done, n))
	return b.String(), nil
}

// renderStep formats a step prompt with its guidance.
func renderStep(s catalog.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**ステップ%d: %s**", s.ID, s.Prompt)
	if s.Detail != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Detail)
	}
	if s.Example != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Example)
	}
	return b.String()
}
