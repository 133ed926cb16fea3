package catalog

import "netacho/internal/neta"

// Guided wizard stages.
const (
	StageFoundation = "基礎段階"
	StageBuild      = "構築段階"
	StagePractice   = "実践段階"
)

// Guided returns the 14-step staged catalog. Answers are written to the
// dot-path in Field.
func Guided() *Catalog {
	return newCatalog("guided", []Step{
		{ID: 1, Stage: StageFoundation, Name: "テーマ決定",
			Prompt: "テーマを決定してください。日常的で身近なものがおすすめです。",
			Shape:  ShapeChoice, AllowOther: true,
			Choices: []string{"学校", "コンビニ", "家族", "仕事", "恋愛", "電車", "病院", "その他（自由入力）"},
			Field:   "theme"},
		{ID: 2, Stage: StageFoundation, Name: "基本パターン選択",
			Prompt: "基本パターンを次の4つから選んでください。",
			Shape:  ShapeChoice,
			Choices: []string{
				"日常×日常（共感重視・初心者向け）",
				"日常×非日常（ギャップで笑い・おすすめ）",
				"非日常×日常（シュールな笑い）",
				"非日常×非日常（避けるべき）",
			},
			Field: "pattern"},
		{ID: 3, Stage: StageFoundation, Name: "When（いつ）の設定", Prompt: "いつの話か決定してください。",
			Example: "例：朝、昼休み、放課後、深夜、季節など", Shape: ShapeText, Field: "when"},
		{ID: 4, Stage: StageFoundation, Name: "Where（どこで）の設定", Prompt: "どこでの話か決定してください。",
			Example: "例：教室、コンビニ店内、リビング、駅のホームなど", Shape: ShapeText, Field: "where"},
		{ID: 5, Stage: StageFoundation, Name: "Who（誰が）の設定", Prompt: "ボケとツッコミの役を決定してください。",
			Shape: ShapeRecord,
			Fields: []FieldSpec{
				{Key: "boke", Label: "ボケ役の名前や立場"},
				{Key: "tsukkomi", Label: "ツッコミ役の名前や立場"},
			},
			Field: "who"},
		{ID: 6, Stage: StageFoundation, Name: "How（どのように）の設定", Prompt: "どのような状況か決定してください。",
			Example: "例：買い物中、勉強中、待ち合わせ中など", Shape: ShapeText, Field: "how"},

		{ID: 7, Stage: StageBuild, Name: "詳細設定",
			Prompt: "設定の詳細を決定してください。具体的な状況を描写してください。", Shape: ShapeText, Field: "setting"},
		{ID: 8, Stage: StageBuild, Name: "キャラクター性格設定", Prompt: "ボケとツッコミの性格を決定してください。",
			Shape: ShapeRecord,
			Fields: []FieldSpec{
				{Key: "bokePersonality", Label: "ボケの性格（天然、強がり、理屈っぽいなど）"},
				{Key: "tsukkomiPersonality", Label: "ツッコミの性格（常識人、心配性、短気など）"},
				{Key: "relationship", Label: "二人の関係性（友達、先輩後輩、夫婦など）"},
			},
			Field: "characterDetails"},
		{ID: 9, Stage: StageBuild, Name: "ボケ出し",
			Prompt: "この設定で思いつくボケを10個以上出してください。まだ分類は考えなくていいです。",
			Shape:  ShapeList, MinItems: 10, Field: "rawBokes"},
		{ID: 10, Stage: StageBuild, Name: "ボケの分類",
			Prompt: "出したボケを「あるある」「ありそう」「ないない」に分類してください。",
			Shape:  ShapeCategorize, Field: "categorizedBokes"},

		{ID: 11, Stage: StagePractice, Name: "起（導入）の構成",
			Prompt: "導入部分（0-25%）を決定してください。「あるある」から始めて観客を引き込みます。",
			Shape:  ShapeText, UseFrom: neta.Aruaru, Field: "structure.introduction"},
		{ID: 12, Stage: StagePractice, Name: "承（展開）の構成",
			Prompt: "展開部分（25-50%）を決定してください。「ありそう」で徐々にエスカレートさせます。",
			Shape:  ShapeText, UseFrom: neta.Arisou, Field: "structure.development"},
		{ID: 13, Stage: StagePractice, Name: "転（クライマックス）の構成",
			Prompt: "クライマックス（50-75%）を決定してください。「ないない」で最大の笑いを作ります。",
			Shape:  ShapeText, UseFrom: neta.Nainai, Field: "structure.climax"},
		{ID: 14, Stage: StagePractice, Name: "結（オチ）の構成",
			Prompt: "オチ（75-100%）を決定してください。きれいに締めくくります。",
			Shape:  ShapeText, Field: "structure.ending"},
	})
}
