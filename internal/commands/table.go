package commands

import (
	"context"
	"encoding/json"

	"netacho/internal/autopilot"
	"netacho/internal/neta"
	"netacho/internal/wizard"
)

type noInput struct{}

type answerInput struct {
	Answer json.RawMessage `json:"answer" jsonschema_description:"現在の質問への回答（文字列・リスト・オブジェクト）"`
}

type hintInput struct {
	Topic string `json:"topic" jsonschema_description:"ヒントのトピック（ボケ、あるある、ありそう、ないない、オチ）"`
}

type guidedStepInput struct {
	StepID *int `json:"stepId,omitempty" jsonschema_description:"表示するステップ番号（1〜14）。省略時は現在のステップ"`
}

type guidedUpdateInput struct {
	StepID int             `json:"stepId" jsonschema_description:"更新するステップ番号（1〜14）"`
	Data   json.RawMessage `json:"data" jsonschema_description:"ステップの回答（文字列・リスト・オブジェクト）"`
}

type autoRequestInput struct {
	Theme           string `json:"theme" jsonschema_description:"台本のテーマ"`
	Genre           string `json:"genre" jsonschema:"enum=manzai,enum=conte" jsonschema_description:"ジャンル"`
	Concept         string `json:"concept,omitempty" jsonschema_description:"コンセプト"`
	Duration        string `json:"duration,omitempty" jsonschema_description:"想定時間"`
	TargetAudience  string `json:"targetAudience,omitempty" jsonschema_description:"対象観客"`
	SpecialRequests string `json:"specialRequests,omitempty" jsonschema_description:"特別な要望"`
}

func (in autoRequestInput) request() autopilot.Request {
	return autopilot.Request{
		Theme:           in.Theme,
		Genre:           neta.Genre(in.Genre),
		Concept:         in.Concept,
		Duration:        in.Duration,
		TargetAudience:  in.TargetAudience,
		SpecialRequests: in.SpecialRequests,
	}
}

type startAutoInput struct {
	Confirmed bool `json:"confirmed" jsonschema_description:"フルオート作成を実行する場合は true"`
	autoRequestInput
}

type sessionInput struct {
	SessionID string `json:"sessionId" jsonschema_description:"フルオート作成のセッションID"`
}

func noArgs(fn func(ctx context.Context) (string, error)) func(context.Context, noInput) (string, error) {
	return func(ctx context.Context, _ noInput) (string, error) { return fn(ctx) }
}

func bySession(fn func(ctx context.Context, id string) (string, error)) func(context.Context, sessionInput) (string, error) {
	return func(ctx context.Context, in sessionInput) (string, error) { return fn(ctx, in.SessionID) }
}

func (r *Router) table() []Command {
	return []Command{
		define("start_wizard", "対話型の台本作成ウィザードを開始します（既存の回答はリセットされます）",
			noArgs(r.wizard.Start)),
		define("next_question", "現在の質問に回答して次の質問に進みます",
			func(ctx context.Context, in answerInput) (string, error) {
				if len(in.Answer) == 0 {
					return "", neta.Errorf(neta.ErrInvalidAnswer, "answer を指定してください。")
				}
				return r.wizard.Submit(ctx, in.Answer)
			}),
		define("show_wizard_answers", "これまでの回答と進捗を表示します",
			noArgs(r.wizard.ShowAnswers)),
		define("get_hint", "ボケ・あるある・ありそう・ないない・オチのヒントを表示します",
			func(_ context.Context, in hintInput) (string, error) { return wizard.Hint(in.Topic), nil }),

		define("wizard_step", "14ステップのガイド付きウィザードの質問を表示します",
			func(ctx context.Context, in guidedStepInput) (string, error) {
				id := 0
				if in.StepID != nil {
					if *in.StepID < 1 {
						return "", neta.Errorf(neta.ErrInvalidStep, "ステップ %d が見つかりません（1〜%d）", *in.StepID, r.guided.Catalog().Len())
					}
					id = *in.StepID
				}
				return r.guided.Step(ctx, id)
			}),
		define("wizard_update", "ガイド付きウィザードのステップに回答を保存します",
			func(ctx context.Context, in guidedUpdateInput) (string, error) {
				if len(in.Data) == 0 {
					return "", neta.Errorf(neta.ErrInvalidAnswer, "data を指定してください。")
				}
				return r.guided.Update(ctx, in.StepID, in.Data)
			}),
		define("wizard_status", "ガイド付きウィザードの進捗と入力内容を表示します",
			noArgs(r.guided.Status)),
		define("show_boke_list", "ガイド付きウィザードで出したボケの一覧を表示します",
			noArgs(r.guided.BokeList)),

		define("propose_sequence", "分類したボケから導入・展開・クライマックスの順番を提案します",
			noArgs(r.wizard.ProposeSequence)),
		define("generate_script", "ウィザードの回答から台本を生成して保存します",
			noArgs(r.wizard.GenerateScript)),
		define("evaluate_script", "ウィザードの回答を5つの観点で採点します",
			noArgs(r.wizard.Evaluate)),

		define("request_full_auto", "フルオート台本作成の内容を確認します（まだ何も作成しません）",
			func(_ context.Context, in autoRequestInput) (string, error) {
				return r.auto.RequestPreview(in.request())
			}),
		define("start_full_auto_creation", "確認後にフルオート台本作成のセッションを開始します",
			func(ctx context.Context, in startAutoInput) (string, error) {
				return r.auto.Start(ctx, in.Confirmed, in.request())
			}),
		define("check_auto_progress", "フルオート作成の進捗を表示します",
			bySession(r.auto.CheckProgress)),
		define("list_auto_sessions", "フルオート作成のセッション一覧を表示します",
			noArgs(r.auto.ListSessions)),
		define("auto_step_1_research", "フルオート ステップ1: テーマの調査",
			bySession(r.auto.Research)),
		define("auto_step_2_generate", "フルオート ステップ2: ボケの生成と分類",
			bySession(r.auto.Generate)),
		define("auto_step_3_compose", "フルオート ステップ3: 構成の設計",
			bySession(r.auto.Compose)),
		define("auto_step_4_script", "フルオート ステップ4: 台本の作成",
			bySession(r.auto.Script)),
		define("auto_step_5_evaluate", "フルオート ステップ5: 評価",
			bySession(r.auto.Evaluate)),
		define("view_completed_script", "フルオートで作成した台本を表示します",
			bySession(r.auto.ViewScript)),
	}
}
