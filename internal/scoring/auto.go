package scoring

import "time"

// Fixed component scores of the full-auto evaluation. They do not depend on
// the script; the pipeline reports them as-is.
const (
	AutoStructure    = 15
	AutoVariety      = 12
	AutoBalance      = 14
	AutoImpact       = 13
	AutoPracticality = 16
)

// AutoSuggestions are the static improvement notes of the full-auto run.
var AutoSuggestions = []string{
	"ボケのバリエーションを増やすとさらに良くなります",
	"ツッコミのタイミングをもう少し調整してみてください",
	"観客の反応を見ながら間の取り方を調整しましょう",
	"オチをもっと印象的にできるかもしれません",
}

// AutoEvaluation is the step-5 result of a full-auto session.
type AutoEvaluation struct {
	TotalScore   int       `json:"totalScore"`
	Structure    int       `json:"structure"`
	Variety      int       `json:"variety"`
	Balance      int       `json:"balance"`
	Impact       int       `json:"impact"`
	Practicality int       `json:"practicality"`
	Suggestions  []string  `json:"suggestions"`
	EvaluatedAt  time.Time `json:"evaluatedAt"`
}

// EvaluateAuto returns the fixed full-auto evaluation stamped with now.
func EvaluateAuto(now time.Time) AutoEvaluation {
	e := AutoEvaluation{
		Structure:    AutoStructure,
		Variety:      AutoVariety,
		Balance:      AutoBalance,
		Impact:       AutoImpact,
		Practicality: AutoPracticality,
		Suggestions:  append([]string(nil), AutoSuggestions...),
		EvaluatedAt:  now.UTC(),
	}
	e.TotalScore = e.Structure + e.Variety + e.Balance + e.Impact + e.Practicality
	return e
}
