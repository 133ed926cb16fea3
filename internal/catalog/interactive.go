package catalog

import "fmt"

// Interactive wizard landmarks.
const (
	// JokeStep is where jokes are entered; answers accumulate across loops.
	JokeStep = 12
	// MoreJokesStep asks whether to add more jokes; Affirmative loops back.
	MoreJokesStep = 13
	// CategorizeStep is the user's own aruaru/arisou/nainai split.
	CategorizeStep = 14
	// ClassifyStep displays the automatic kind classification.
	ClassifyStep = 15
	// PunchlineStep holds the ending (オチ).
	PunchlineStep = 17

	// Affirmative is the literal that triggers the loop-back.
	Affirmative = "はい"
	// Negative is the other answer to a yes/no step.
	Negative = "いいえ"
)

// StepKey is the answers key for an interactive step.
func StepKey(id int) string { return fmt.Sprintf("step%d", id) }

var yesNo = []string{Affirmative, Negative}

// Patterns are the four place × character combinations, in menu order.
var Patterns = []string{
	"日常×日常",
	"日常×非日常",
	"非日常×日常",
	"非日常×非日常",
}

const patternMenu = "【場所/シチュエーション × 登場人物】\n" +
	"**1.** 場所が日常×キャラが日常（普通の場所で普通の人物）\n" +
	"**2.** 場所が日常×キャラが非日常（普通の場所で変わった人物） ← おすすめ！\n" +
	"**3.** 場所が非日常×キャラが日常（変わった場所で普通の人物）\n" +
	"**4.** 場所が非日常×キャラが非日常（変わった場所で変わった人物） ← 避けるべき！\n" +
	"番号（1〜4）で答えてください。"

// Interactive returns the 18-step question-and-answer catalog.
func Interactive() *Catalog {
	return newCatalog("interactive", []Step{
		{ID: 1, Name: "タイプ", Prompt: "漫才とコント、どちらを作りますか？", Detail: "「漫才」または「コント」でお答えください。",
			Shape: ShapeChoice, Choices: []string{"漫才", "コント"}},
		{ID: 2, Name: "テーマ", Prompt: "テーマを教えてください。（例：学校、コンビニ、家族など）", Shape: ShapeText},
		{ID: 3, Name: "パターン", Prompt: "基本パターンを選んでください。", Detail: patternMenu,
			Shape: ShapeChoice, Choices: Patterns},
		{ID: 4, Name: "時間", Prompt: "いつの話にしますか？（朝、昼、夜、季節など具体的に）", Shape: ShapeText},
		{ID: 5, Name: "場所", Prompt: "どこでの話にしますか？（具体的な場所を）", Shape: ShapeText},
		{ID: 6, Name: "ボケ役", Prompt: "ボケ役はどんな人物にしますか？（名前や立場）", Shape: ShapeText},
		{ID: 7, Name: "ツッコミ役", Prompt: "ツッコミ役はどんな人物にしますか？（名前や立場）", Shape: ShapeText},
		{ID: 8, Name: "状況", Prompt: "どんな状況で始まりますか？（何をしているところか）", Shape: ShapeText},
		{ID: 9, Name: "ボケの性格", Prompt: "ボケ役の性格を教えてください。（天然、理屈っぽい、強がりなど）", Shape: ShapeText},
		{ID: 10, Name: "ツッコミの性格", Prompt: "ツッコミ役の性格を教えてください。（常識人、心配性、短気など）", Shape: ShapeText},
		{ID: 11, Name: "関係性", Prompt: "二人の関係性を教えてください。（友達、先輩後輩、夫婦など）", Shape: ShapeText},
		{ID: JokeStep, Name: "ボケ案", Prompt: "この設定でボケを考えてください。（最低10個、思いつくまま書いてください）",
			Detail: "💡 ヒント: 思いついたボケを箇条書きで書いてください。例：\n" +
				"- 宿題忘れたって言ったら「じゃあ君が宿題になりなさい」って言われた\n" +
				"- コンビニで「温めますか？」って聞かれて「僕も温めてください」って答えた",
			Shape: ShapeList, MinItems: 1},
		{ID: MoreJokesStep, Name: "ボケ追加", Prompt: "もっとボケを追加しますか？\n『はい』か『いいえ』でお答えください。",
			Shape: ShapeChoice, Choices: yesNo},
		{ID: CategorizeStep, Name: "ボケ分類", Prompt: "出したボケを見返して、\n" +
			"- 「あるある」（共感できる）\n- 「ありそう」（少し誇張）\n- 「ないない」（大きく飛躍）\nに分類してください。",
			Detail: `{"aruaru": [...], "arisou": [...], "nainai": [...]} の形で答えてください。`,
			Shape:  ShapeCategorize},
		{ID: ClassifyStep, Name: "ボケ種類", Prompt: "ボケの種類を確認します。\n" +
			"- しゃべくりボケ（言葉の面白さ）\n- アクションボケ（動きで笑い）\n- 状況ボケ（設定から生まれる）\n- キャラクターボケ（人物の特徴）\n" +
			"自動分類が合っているか確認してください。",
			Shape: ShapeText},
		{ID: 16, Name: "ツッコミスタイル", Prompt: "ツッコミのスタイルを決めてください。\n" +
			"- 否定型（違うやろ！）\n- 疑問型（なんでやねん）\n- 共感型（確かに...って違うわ！）\n" +
			"- 発展型（それやったら○○やん）\n- 説明型（要するに○○やん）\n- アクション型（手で叩くなど）",
			Shape: ShapeText},
		{ID: PunchlineStep, Name: "オチ", Prompt: "最後に、オチをどうするか考えてください。", Shape: ShapeText},
		{ID: 18, Name: "最終確認", Prompt: "台本の構成を確認しましょう。次のステップに進みますか？",
			Detail: "これまでの回答を確認して、台本作成の準備が整いました。\n" +
				"- **はい** → 台本作成を完了して評価に進む\n" +
				"- **いいえ** → 完了後に show_wizard_answers で見直す",
			Shape: ShapeChoice, Choices: yesNo},
	}).withStepFields()
}

// withStepFields points every step at its stepN answers key.
func (c *Catalog) withStepFields() *Catalog {
	for i := range c.steps {
		if c.steps[i].Field == "" {
			c.steps[i].Field = StepKey(c.steps[i].ID)
		}
	}
	return c
}
