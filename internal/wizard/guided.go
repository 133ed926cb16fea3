package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"netacho/internal/catalog"
	"netacho/internal/display"
	"netacho/internal/logging"
	"netacho/internal/neta"
	"netacho/internal/store"
)

// GuidedStateKey is the store key of the guided wizard document.
const GuidedStateKey = "wizard-state.json"

// GuidedState is the guided wizard document. Data holds answers at the
// dot-paths named by each step's Field.
type GuidedState struct {
	Cursor int            `json:"currentStep"`
	Data   map[string]any `json:"data"`
}

// Get returns the value at a dot-path.
func (g *GuidedState) Get(path string) (any, bool) {
	var cur any = g.Data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the value at path as text, or "".
func (g *GuidedState) String(path string) string {
	v, ok := g.Get(path)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Set writes v at a dot-path, creating intermediate records. A non-record
// value in the way is replaced.
func (g *GuidedState) Set(path string, v any) {
	if g.Data == nil {
		g.Data = map[string]any{}
	}
	parts := strings.Split(path, ".")
	m := g.Data
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = v
}

// RawJokes returns the jokes entered at the brainstorming step.
func (g *GuidedState) RawJokes() []string {
	v, ok := g.Get("rawBokes")
	if !ok {
		return nil
	}
	items, _ := neta.StringList(v)
	return items
}

// Categorized returns the user's level split, if entered.
func (g *GuidedState) Categorized() (neta.Categorized, bool) {
	v, ok := g.Get("categorizedBokes")
	if !ok {
		return neta.Categorized{}, false
	}
	rec, ok := v.(map[string]any)
	if !ok {
		return neta.Categorized{}, false
	}
	c, err := neta.CategorizedFromRecord(rec)
	return c, err == nil
}

// Guided drives the 14-step staged wizard.
type Guided struct {
	store   store.Store
	catalog *catalog.Catalog
	log     *slog.Logger
}

// NewGuided returns a guided engine over st.
func NewGuided(st store.Store) *Guided {
	return &Guided{store: st, catalog: catalog.Guided(), log: logging.New("guided-wizard")}
}

// Catalog returns the step table.
func (g *Guided) Catalog() *catalog.Catalog { return g.catalog }

// Load returns the stored state. found is false when none exists yet.
func (g *Guided) Load(ctx context.Context) (state *GuidedState, found bool, err error) {
	var st GuidedState
	err = store.GetJSON(ctx, g.store, GuidedStateKey, &st)
	if errors.Is(err, store.ErrNotFound) {
		return &GuidedState{Cursor: 1, Data: map[string]any{}}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("wizard: load guided state: %w", err)
	}
	if st.Data == nil {
		st.Data = map[string]any{}
	}
	if st.Cursor < 1 {
		st.Cursor = 1
	}
	return &st, true, nil
}

func (g *Guided) lookup(id int) (catalog.Step, error) {
	step, ok := g.catalog.Step(id)
	if !ok {
		return catalog.Step{}, neta.Errorf(neta.ErrInvalidStep, "ステップ %d が見つかりません（1〜%d）", id, g.catalog.Len())
	}
	return step, nil
}

// Step renders the prompt for stepID, or for the cursor when stepID is 0.
func (g *Guided) Step(ctx context.Context, stepID int) (string, error) {
	st, _, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	target := stepID
	if target == 0 {
		if st.Cursor > g.catalog.Len() {
			return g.completion(), nil
		}
		target = st.Cursor
	}
	step, err := g.lookup(target)
	if err != nil {
		return "", err
	}
	return g.render(step, st) + "\n\n---\n" + g.progress(st), nil
}

// Update validates data for stepID, writes it to the step's field and moves
// the cursor to stepID+1. Steps may be answered in any order.
func (g *Guided) Update(ctx context.Context, stepID int, data json.RawMessage) (string, error) {
	step, err := g.lookup(stepID)
	if err != nil {
		return "", err
	}
	ans, err := step.Validate(data)
	if err != nil {
		return "", err
	}
	st, _, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	st.Set(step.Field, ans.Value())
	st.Cursor = stepID + 1
	if err := store.PutJSON(ctx, g.store, GuidedStateKey, st); err != nil {
		return "", fmt.Errorf("wizard: save guided state: %w", err)
	}
	g.log.Info("guided step updated", "step", stepID, "field", step.Field, "cursor", st.Cursor)

	var b strings.Builder
	fmt.Fprintf(&b, "✅ %sを完了しました！\n\n", step.Name)
	if next, ok := g.catalog.Step(st.Cursor); ok {
		b.WriteString("次のステップに進みます。\n\n")
		b.WriteString(g.render(next, st))
		b.WriteString("\n\n---\n")
		b.WriteString(g.progress(st))
	} else {
		b.WriteString(g.completion())
	}
	return b.String(), nil
}

// Status summarises everything entered so far, grouped by stage.
func (g *Guided) Status(ctx context.Context) (string, error) {
	st, found, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "", neta.Errorf(neta.ErrNotInitialized, "まだウィザードが開始されていません。wizard_step で始めてください。")
	}

	var b strings.Builder
	b.WriteString("📊 **現在の設定状況**\n\n")
	b.WriteString("### " + catalog.StageFoundation + "\n")
	writeField(&b, "テーマ", st.String("theme"))
	writeField(&b, "パターン", st.String("pattern"))
	writeField(&b, "いつ", st.String("when"))
	writeField(&b, "どこで", st.String("where"))
	writeField(&b, "ボケ役", st.String("who.boke"))
	writeField(&b, "ツッコミ役", st.String("who.tsukkomi"))
	writeField(&b, "状況", st.String("how"))

	if st.String("setting") != "" || st.String("characterDetails.bokePersonality") != "" {
		b.WriteString("\n### " + catalog.StageBuild + "\n")
		writeField(&b, "詳細設定", st.String("setting"))
		writeField(&b, "ボケの性格", st.String("characterDetails.bokePersonality"))
		writeField(&b, "ツッコミの性格", st.String("characterDetails.tsukkomiPersonality"))
		writeField(&b, "関係性", st.String("characterDetails.relationship"))
	}

	if raw := st.RawJokes(); len(raw) > 0 {
		fmt.Fprintf(&b, "\n### 出したボケ (%d個)\n", len(raw))
		writeNumbered(&b, raw)
	}
	if c, ok := st.Categorized(); ok {
		b.WriteString("\n### 分類済みボケ\n")
		for _, l := range neta.Levels {
			bucket := c.Bucket(l)
			fmt.Fprintf(&b, "**%s (%d個)**\n", display.Level(l), len(bucket))
			for _, j := range bucket {
				fmt.Fprintf(&b, "- %s\n", j)
			}
		}
	}

	if _, ok := st.Get("structure"); ok {
		b.WriteString("\n### 構成\n")
		for _, id := range []int{11, 12, 13, 14} {
			step, _ := g.catalog.Step(id)
			writeField(&b, step.Name, st.String(step.Field))
		}
	}

	b.WriteString("\n---\n")
	b.WriteString(g.progress(st))
	return b.String(), nil
}

// BokeList shows raw jokes until they are categorized, then the buckets.
func (g *Guided) BokeList(ctx context.Context) (string, error) {
	st, _, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	raw := st.RawJokes()
	c, categorized := st.Categorized()
	if len(raw) == 0 && !categorized {
		return "", neta.Errorf(neta.ErrNotInitialized, "まだボケが作成されていません。")
	}

	var b strings.Builder
	b.WriteString("📝 **ボケ一覧**\n\n")
	if !categorized {
		fmt.Fprintf(&b, "### 未分類のボケ (%d個)\n", len(raw))
		writeNumbered(&b, raw)
		return b.String(), nil
	}
	for i, l := range neta.Levels {
		if i > 0 {
			b.WriteString("\n")
		}
		bucket := c.Bucket(l)
		fmt.Fprintf(&b, "### %s (%d個)\n", display.Level(l), len(bucket))
		writeNumbered(&b, bucket)
	}
	fmt.Fprintf(&b, "\n---\n合計: %d個のボケ", c.Total())
	return b.String(), nil
}

func (g *Guided) render(step catalog.Step, st *GuidedState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 **%s - %s**\n\n%s", step.Stage, step.Name, step.Prompt)
	switch step.Shape {
	case catalog.ShapeChoice:
		b.WriteString("\n\n選択肢:\n")
		writeNumbered(&b, step.Choices)
	case catalog.ShapeRecord:
		b.WriteString("\n\n次の項目をオブジェクトで答えてください:\n")
		for _, f := range step.Fields {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Key, f.Label)
		}
	case catalog.ShapeList:
		fmt.Fprintf(&b, "\n\nリストで答えてください（%d個以上）。", step.MinItems)
	case catalog.ShapeCategorize:
		b.WriteString("\n\n`{\"aruaru\": [...], \"arisou\": [...], \"nainai\": [...]}` の形で答えてください。")
		if raw := st.RawJokes(); len(raw) > 0 {
			b.WriteString("\n\n出したボケ:\n")
			writeNumbered(&b, raw)
		}
	}
	if step.Example != "" {
		b.WriteString("\n\n" + step.Example)
	}
	if step.UseFrom != "" {
		if c, ok := st.Categorized(); ok && len(c.Bucket(step.UseFrom)) > 0 {
			fmt.Fprintf(&b, "\n\n使える「%s」のボケ:\n", display.Level(step.UseFrom))
			for _, j := range c.Bucket(step.UseFrom) {
				fmt.Fprintf(&b, "- %s\n", j)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g *Guided) progress(st *GuidedState) string {
	n := g.catalog.Len()
	pct := float64(min(st.Cursor-1, n)) / float64(n)
	return fmt.Sprintf("進捗: %s [%d/%d]", display.Percent(pct), min(st.Cursor, n), n)
}

func (g *Guided) completion() string {
	return "🎉 全ステップが完了しました！`wizard_status` で全体を確認できます。"
}

func writeField(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}
