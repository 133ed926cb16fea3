package autopilot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"netacho/internal/display"
	"netacho/internal/format"
	"netacho/internal/logging"
	"netacho/internal/neta"
	"netacho/internal/scoring"
	"netacho/internal/sequence"
	"netacho/internal/store"
)

// Tool names of the five steps, indexed by step-1.
var stepTools = [TotalSteps]string{
	"auto_step_1_research",
	"auto_step_2_generate",
	"auto_step_3_compose",
	"auto_step_4_script",
	"auto_step_5_evaluate",
}

var stepNames = [TotalSteps + 1]string{"準備", "Web調査", "ボケ生成", "構成設計", "台本作成", "評価完了"}

// Orchestrator drives full-auto sessions stored in a store.Store.
type Orchestrator struct {
	store store.Store
	now   func() time.Time
	log   *slog.Logger
}

// New returns an orchestrator over st using the wall clock.
func New(st store.Store) *Orchestrator {
	return &Orchestrator{store: st, now: time.Now, log: logging.New("autopilot")}
}

// WithClock replaces the time source.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// NewID returns "auto_<unix ms>_<8 hex>".
func NewID(now time.Time) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("auto_%d_%s", now.UnixMilli(), hex[:8])
}

// Session returns the stored session id.
func (o *Orchestrator) Session(ctx context.Context, id string) (*Session, error) {
	return loadSession(ctx, o.store, id)
}

// Create validates req and stores a new session at step 0.
func (o *Orchestrator) Create(ctx context.Context, req Request) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := o.now()
	s := initSession(NewID(now), req, now)
	if err := saveSession(ctx, o.store, s); err != nil {
		return nil, err
	}
	o.log.Info("session created", "session", s.ID, "theme", req.Theme, "genre", req.Genre)
	return s, nil
}

// RequestPreview describes what a full-auto run will do. Nothing is stored.
func (o *Orchestrator) RequestPreview(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("🤖 **フルオート台本作成モード**\n\n")
	b.WriteString("**⚠️ 重要な確認事項 ⚠️**\n\n")
	b.WriteString("このモードでは、以下の5ステップを順番に実行して台本を自動作成します：\n\n")
	b.WriteString("1. **調査** - テーマに関するあるある・体験談・エピソードを収集\n")
	b.WriteString("2. **ボケ生成** - 収集した素材からボケを作り「あるある」「ありそう」「ないない」に分類\n")
	b.WriteString("3. **構成設計** - 導入・展開・クライマックスの順にボケとツッコミを配置\n")
	b.WriteString("4. **台本作成** - ト書き付きの台本を作成\n")
	b.WriteString("5. **評価** - 台本を採点して改善提案を作成\n\n")
	b.WriteString("## 📋 あなたの指定内容\n")
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
	b.WriteString("\n---\n\n**このフルオート機能を使用しますか？**\n\n")
	b.WriteString("- **はい** → `start_full_auto_creation` を `confirmed: true` で実行\n")
	b.WriteString("- **いいえ** → 通常のウィザード（`start_wizard`）を使用\n")
	return b.String(), nil
}

// Start creates a session when confirmed and returns the first instruction.
func (o *Orchestrator) Start(ctx context.Context, confirmed bool, req Request) (string, error) {
	if !confirmed {
		return "フルオート作成をキャンセルしました。通常のウィザードモードをご利用ください。", nil
	}
	s, err := o.Create(ctx, req)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("🚀 **フルオート台本作成を開始しました！**\n\n")
	fmt.Fprintf(&b, "**セッションID**: `%s`\n\n", s.ID)
	fmt.Fprintf(&b, "## 📊 進行状況\n```\nステップ 0/%d: 準備完了 ✅\n```\n\n", TotalSteps)
	b.WriteString("**各ステップを順番に実行してください：**\n\n")
	for i, tool := range stepTools {
		fmt.Fprintf(&b, "%d. **%s** - `%s`\n", i+1, stepNames[i+1], tool)
	}
	fmt.Fprintf(&b, "\n**開始方法：**\n```\n%s\n```\n\n", nextCall(0, s.ID))
	b.WriteString("進捗は `check_auto_progress` で確認できます。")
	return b.String(), nil
}

// nextCall is the invocation that follows currentStep.
func nextCall(currentStep int, id string) string {
	if currentStep >= TotalSteps {
		return fmt.Sprintf("view_completed_script sessionId: %q", id)
	}
	return fmt.Sprintf("%s sessionId: %q", stepTools[currentStep], id)
}

// checkTurn reports whether step k may run on s.
func checkTurn(s *Session, k int) error {
	if s.Status == StatusCompleted {
		return neta.Errorf(neta.ErrSessionCompleted,
			"このセッションは既に完了しています。台本は `%s` で確認できます。", nextCall(TotalSteps, s.ID))
	}
	if s.CurrentStep != k-1 || (s.Status != StatusInProgress && s.Status != StatusError) {
		return neta.Errorf(neta.ErrOutOfOrder,
			"ステップ%dはまだ実行できません（現在 %d/%d）。次は `%s` を実行してください。",
			k, s.CurrentStep, TotalSteps, nextCall(s.CurrentStep, s.ID))
	}
	return nil
}

// stepOutput is what a step hands back to run: the artifact to write and
// how to fold the result into the session.
type stepOutput struct {
	artifact string
	data     []byte
	apply    func(*Session)
	outcome  string
}

type stepFunc func(s *Session, now time.Time) (stepOutput, error)

// run executes step k of session id. The artifact is written first and the
// session document last; on failure the session is marked as errored.
func (o *Orchestrator) run(ctx context.Context, id string, k int, fn stepFunc) (*Session, error) {
	s, err := loadSession(ctx, o.store, id)
	if err != nil {
		return nil, err
	}
	if err := checkTurn(s, k); err != nil {
		return nil, err
	}
	now := o.now()
	out, err := fn(s, now)
	if err == nil {
		if perr := o.store.Put(ctx, Key(id, out.artifact), out.data); perr != nil {
			err = fmt.Errorf("autopilot: write %s: %w", out.artifact, perr)
		}
	}
	if err != nil {
		o.fail(ctx, s, k, err)
		return nil, err
	}
	out.apply(s)
	s.advance(k, out.outcome, now)
	if err := saveSession(ctx, o.store, s); err != nil {
		return nil, err
	}
	o.log.Info("step completed", "session", id, "step", k, "status", s.Status)
	return s, nil
}

// fail records err on the session. It is best effort: a failed save is only
// logged.
func (o *Orchestrator) fail(ctx context.Context, s *Session, k int, err error) {
	s.Status = StatusError
	s.LastError = fmt.Sprintf("ステップ%d: %v", k, err)
	if serr := saveSession(ctx, o.store, s); serr != nil {
		o.log.Warn("could not record step failure", "session", s.ID, "step", k, "error", serr)
	}
	o.log.Error("step failed", "session", s.ID, "step", k, "error", err)
}

func artifactJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("autopilot: encode artifact: %w", err)
	}
	return data, nil
}

func stepDone(k int, label string) string {
	return fmt.Sprintf("## 📊 進行状況\n```\nステップ %d/%d: %s ✅\n```\n\n", k, TotalSteps, label)
}

func nextStepHint(s *Session) string {
	return fmt.Sprintf("**次のステップを実行してください：**\n```\n%s\n```\n\n", nextCall(s.CurrentStep, s.ID))
}

// Research runs step 1.
func (o *Orchestrator) Research(ctx context.Context, id string) (string, error) {
	s, err := o.run(ctx, id, 1, func(s *Session, now time.Time) (stepOutput, error) {
		r := research(s.Request.Theme, now)
		data, err := artifactJSON(r)
		return stepOutput{ResearchFile, data, func(s *Session) { s.Results.WebResearch = r }, "research"}, err
	})
	if err != nil {
		return "", err
	}
	r := s.Results.WebResearch
	var b strings.Builder
	b.WriteString("🔍 **ステップ1: Web調査完了**\n\n")
	b.WriteString(stepDone(1, "Web調査完了"))
	b.WriteString("**調査結果:**\n")
	fmt.Fprintf(&b, "- **収集サイト数**: %dサイト\n", r.SourcesCount)
	fmt.Fprintf(&b, "- **抽出エピソード数**: %d個\n", len(r.Episodes))
	fmt.Fprintf(&b, "- **あるあるネタ**: %d個\n", r.Categories.Aruaru)
	fmt.Fprintf(&b, "- **体験談**: %d個\n", r.Categories.Episodes)
	fmt.Fprintf(&b, "- **面白エピソード**: %d個\n", r.Categories.Funny)
	fmt.Fprintf(&b, "- **検索クエリ**: %s\n\n", strings.Join(r.SearchQueries, " / "))
	b.WriteString(nextStepHint(s))
	fmt.Fprintf(&b, "💾 調査データは `%s` に保存されました。", ResearchFile)
	return b.String(), nil
}

// Generate runs step 2.
func (o *Orchestrator) Generate(ctx context.Context, id string) (string, error) {
	s, err := o.run(ctx, id, 2, func(s *Session, now time.Time) (stepOutput, error) {
		if s.Results.WebResearch == nil {
			return stepOutput{}, errors.New("autopilot: research results missing")
		}
		res := generate(s.Results.WebResearch, now)
		data, err := artifactJSON(res)
		return stepOutput{BokeFile, data, func(s *Session) {
			s.Results.BokeCollection = res.Bokes
			c := res.Categorized
			s.Results.CategorizedBokes = &c
		}, "generate"}, err
	})
	if err != nil {
		return "", err
	}
	c := s.Results.CategorizedBokes
	var b strings.Builder
	b.WriteString("🎭 **ステップ2: ボケ生成完了**\n\n")
	b.WriteString(stepDone(2, "ボケ生成完了"))
	b.WriteString("**生成結果:**\n")
	fmt.Fprintf(&b, "- **総ボケ数**: %d個\n", len(s.Results.BokeCollection))
	for _, l := range neta.Levels {
		fmt.Fprintf(&b, "- **%s**: %d個\n", display.Level(l), len(c.Bucket(l)))
	}
	b.WriteString("\n**ボケ例（抜粋）:**\n")
	for i, joke := range s.Results.BokeCollection[:min(3, len(s.Results.BokeCollection))] {
		fmt.Fprintf(&b, "%d. %s\n", i+1, joke)
	}
	b.WriteString("\n")
	b.WriteString(nextStepHint(s))
	fmt.Fprintf(&b, "💾 ボケデータは `%s` に保存されました。", BokeFile)
	return b.String(), nil
}

// Compose runs step 3.
func (o *Orchestrator) Compose(ctx context.Context, id string) (string, error) {
	s, err := o.run(ctx, id, 3, func(s *Session, now time.Time) (stepOutput, error) {
		if s.Results.CategorizedBokes == nil {
			return stepOutput{}, errors.New("autopilot: categorized jokes missing")
		}
		comp := sequence.Compose(*s.Results.CategorizedBokes, now)
		data, err := artifactJSON(comp)
		return stepOutput{CompositionFile, data, func(s *Session) { s.Results.Sequence = &comp }, "compose"}, err
	})
	if err != nil {
		return "", err
	}
	comp := s.Results.Sequence
	var b strings.Builder
	b.WriteString("🎼 **ステップ3: 構成設計完了**\n\n")
	b.WriteString(stepDone(3, "構成設計完了"))
	b.WriteString("**構成結果:**\n")
	fmt.Fprintf(&b, "- **導入部**: %d個のボケ\n", len(comp.Introduction))
	fmt.Fprintf(&b, "- **展開部**: %d個のボケ\n", len(comp.Development))
	fmt.Fprintf(&b, "- **クライマックス**: %d個のボケ\n", len(comp.Climax))
	fmt.Fprintf(&b, "- **総実行時間**: 約%d分\n\n", comp.EstimatedDuration)
	b.WriteString("**構成例:**\n")
	for i, act := range [][]sequence.Beat{comp.Introduction, comp.Development, comp.Climax} {
		first := "なし"
		if len(act) > 0 {
			first = act[0].Joke
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, first)
	}
	b.WriteString("\n")
	b.WriteString(nextStepHint(s))
	fmt.Fprintf(&b, "💾 構成データは `%s` に保存されました。", CompositionFile)
	return b.String(), nil
}

// Script runs step 4.
func (o *Orchestrator) Script(ctx context.Context, id string) (string, error) {
	s, err := o.run(ctx, id, 4, func(s *Session, now time.Time) (stepOutput, error) {
		if s.Results.Sequence == nil {
			return stepOutput{}, errors.New("autopilot: composition missing")
		}
		script := renderScript(s, s.Results.Sequence, now)
		return stepOutput{ScriptFile, []byte(script), func(s *Session) { s.Results.Script = script }, "script"}, nil
	})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("📜 **ステップ4: 台本作成完了**\n\n")
	b.WriteString(stepDone(4, "台本作成完了"))
	b.WriteString("**台本情報:**\n")
	fmt.Fprintf(&b, "- **タイトル**: %sの%s\n", s.Request.Theme, display.Genre(s.Request.Genre))
	fmt.Fprintf(&b, "- **文字数**: 約%d文字\n", len([]rune(s.Results.Script)))
	b.WriteString("- **想定時間**: 約5-7分\n")
	b.WriteString("- **ト書き**: 含む（演出指示付き）\n\n")
	b.WriteString(nextStepHint(s))
	fmt.Fprintf(&b, "💾 完成台本は `%s` に保存されました。\n\n", ScriptFile)
	fmt.Fprintf(&b, "**プレビュー（最初の100文字）:**\n```\n%s\n```", format.Truncate(s.Results.Script, 100))
	return b.String(), nil
}

// Evaluate runs step 5 and completes the session.
func (o *Orchestrator) Evaluate(ctx context.Context, id string) (string, error) {
	s, err := o.run(ctx, id, 5, func(s *Session, now time.Time) (stepOutput, error) {
		e := scoring.EvaluateAuto(now)
		data, err := artifactJSON(e)
		return stepOutput{EvaluationFile, data, func(s *Session) { s.Results.Evaluation = &e }, "evaluate"}, err
	})
	if err != nil {
		return "", err
	}
	e := s.Results.Evaluation
	var b strings.Builder
	b.WriteString("🎉 **フルオート台本作成完了！**\n\n")
	fmt.Fprintf(&b, "## 📊 最終結果\n```\nステップ %d/%d: 全工程完了 ✅\n```\n\n", TotalSteps, TotalSteps)
	fmt.Fprintf(&b, "**総合評価スコア: %d/100点**\n\n", e.TotalScore)
	b.WriteString("### 📈 詳細評価\n")
	for _, part := range []struct {
		label string
		score int
	}{
		{"構成", e.Structure},
		{"バラエティ", e.Variety},
		{"バランス", e.Balance},
		{"インパクト", e.Impact},
		{"実用性", e.Practicality},
	} {
		fmt.Fprintf(&b, "- **%s**: %d点/%d点\n", part.label, part.score, scoring.MaxPerCategory)
	}
	fmt.Fprintf(&b, "\n### 🎭 完成した台本\n**セッションID**: `%s`\n\n", s.ID)
	fmt.Fprintf(&b, "**台本を確認:**\n```\n%s\n```\n\n", nextCall(TotalSteps, s.ID))
	b.WriteString("**改善提案:**\n")
	for _, sug := range e.Suggestions {
		fmt.Fprintf(&b, "- %s\n", sug)
	}
	b.WriteString("\n### 💾 保存されたファイル\n")
	for _, f := range []string{ScriptFile, EvaluationFile, BokeFile, ResearchFile, CompositionFile} {
		fmt.Fprintf(&b, "- `%s`\n", f)
	}
	return b.String(), nil
}

// CheckProgress renders a session's progress without changing it.
func (o *Orchestrator) CheckProgress(ctx context.Context, id string) (string, error) {
	s, err := loadSession(ctx, o.store, id)
	if err != nil {
		return "", err
	}
	steps := make([]string, len(stepNames))
	for i, name := range stepNames {
		steps[i] = format.Check(i <= s.CurrentStep) + " " + name
	}
	var b strings.Builder
	b.WriteString("📊 **フルオート作成進捗確認**\n\n")
	fmt.Fprintf(&b, "**セッションID**: `%s`\n", s.ID)
	fmt.Fprintf(&b, "**ステータス**: %s\n", display.Status(string(s.Status)))
	fmt.Fprintf(&b, "**進行状況**: %s\n\n", format.Progress(s.CurrentStep, TotalSteps))
	fmt.Fprintf(&b, "## 📈 進捗バー\n%s\n\n", strings.Join(steps, " → "))
	fmt.Fprintf(&b, "**作成開始**: %s\n", format.Timestamp(s.CreatedAt))
	if s.CompletedAt != nil {
		fmt.Fprintf(&b, "**完了時刻**: %s\n", format.Timestamp(*s.CompletedAt))
	}
	if s.LastError != "" {
		fmt.Fprintf(&b, "**直近のエラー**: %s\n", s.LastError)
	}
	b.WriteString("\n## 📋 次のアクション\n")
	if s.CurrentStep >= TotalSteps {
		fmt.Fprintf(&b, "🎉 全ステップ完了！`%s` で完成した台本をご確認ください。", nextCall(TotalSteps, s.ID))
	} else {
		fmt.Fprintf(&b, "`%s` - %sを開始", nextCall(s.CurrentStep, s.ID), stepNames[s.CurrentStep+1])
	}
	return b.String(), nil
}

var statusIcons = map[Status]string{
	StatusPending:    "⏳",
	StatusInProgress: "🔄",
	StatusCompleted:  "✅",
	StatusError:      "❌",
}

// ListSessions renders every stored session as a markdown table. A session
// whose document is missing or unreadable gets its own error row.
func (o *Orchestrator) ListSessions(ctx context.Context) (string, error) {
	keys, err := o.store.List(ctx, SessionsPrefix)
	if err != nil {
		return "", fmt.Errorf("autopilot: list sessions: %w", err)
	}
	ids := sessionIDs(keys)
	var b strings.Builder
	b.WriteString("📂 **自動作成セッション一覧**\n\n")
	if len(ids) == 0 {
		b.WriteString("現在保存されているセッションはありません。")
		return b.String(), nil
	}

	tbl := format.NewTable(format.Markdown)
	tbl.Header("", "セッションID", "テーマ", "ジャンル", "進捗", "作成日", "完了日")
	for _, id := range ids {
		s, err := loadSession(ctx, o.store, id)
		if err != nil {
			o.log.Warn("unreadable session", "session", id, "error", err)
			tbl.Row("❓", id, "情報読み取りエラー", "-", "-", "-", "-")
			continue
		}
		icon, ok := statusIcons[s.Status]
		if !ok {
			icon = "❓"
		}
		completed := "-"
		if s.CompletedAt != nil {
			completed = format.Timestamp(*s.CompletedAt)
		}
		tbl.Row(icon, id, s.Request.Theme, display.Genre(s.Request.Genre),
			fmt.Sprintf("%d/%d", s.CurrentStep, TotalSteps), format.Timestamp(s.CreatedAt), completed)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n**使用方法:**\n")
	b.WriteString("- 進捗確認: `check_auto_progress sessionId: \"セッションID\"`\n")
	b.WriteString("- 台本確認: `view_completed_script sessionId: \"セッションID\"`\n")
	return b.String(), nil
}

// ViewScript returns the finished script: the final_script.md artifact, or
// the copy in the session document when the artifact is gone.
func (o *Orchestrator) ViewScript(ctx context.Context, id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	data, err := o.store.Get(ctx, Key(id, ScriptFile))
	if err == nil {
		return scriptView(id, string(data)), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("autopilot: read script %s: %w", id, err)
	}
	s, err := loadSession(ctx, o.store, id)
	if err != nil {
		return "", err
	}
	if s.Results.Script == "" {
		return "", neta.Errorf(neta.ErrNotInitialized,
			"台本がまだ作成されていません（現在 %d/%d）。次は `%s` を実行してください。",
			s.CurrentStep, TotalSteps, nextCall(s.CurrentStep, s.ID))
	}
	return scriptView(id, s.Results.Script), nil
}

func scriptView(id, script string) string {
	return fmt.Sprintf("📜 **完成台本 (セッション: %s)**\n\n%s", id, script)
}
