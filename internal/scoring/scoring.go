// Package scoring rates a finished script against a fixed five-category
// rubric. Each category is worth 20 points; the total is out of 100.
//
// The rubric is a heuristic over the wizard's answers (bucket ratios,
// keyword patterns, required settings). It is meant as feedback, not as a
// measure of how funny a script is.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"netacho/internal/neta"
)

// MaxPerCategory is the ceiling of every category.
const MaxPerCategory = 20

// Category keys in report order.
const (
	Balance     = "balance"
	Variety     = "variety"
	Progression = "progression"
	Structure   = "structure"
	Impact      = "impact"
)

var categoryNames = map[string]string{
	Balance:     "バランス",
	Variety:     "バラエティ",
	Progression: "進行",
	Structure:   "構成",
	Impact:      "インパクト",
}

// Category is one scored rubric line.
type Category struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Max      int    `json:"max_score"`
	Feedback string `json:"feedback"`
}

// Report is the full evaluation.
type Report struct {
	Total       int        `json:"overall_score"`
	Categories  []Category `json:"categories"`
	Praise      []string   `json:"praise"`
	Suggestions []string   `json:"suggestions"`
}

// Input is what the rubric looks at.
type Input struct {
	Theme       string
	Pattern     string
	Boke        string // boke role
	Tsukkomi    string // tsukkomi role
	Punchline   string
	Jokes       []string
	Categorized neta.Categorized
}

// Ideal share of each level across all categorized jokes.
var idealRatio = map[neta.Level]float64{
	neta.Aruaru: 0.3,
	neta.Arisou: 0.5,
	neta.Nainai: 0.2,
}

// Evaluate scores in against every category.
func Evaluate(in Input) Report {
	r := &Report{}
	r.add(balance(in.Categorized, r))
	r.add(variety(in.Jokes, r))
	r.add(progression(in.Categorized, r))
	r.add(structure(in, r))
	r.add(impact(in.Categorized, r))
	return *r
}

func (r *Report) add(c Category) {
	c.Name = categoryNames[c.Key]
	c.Max = MaxPerCategory
	c.Score = max(0, min(MaxPerCategory, c.Score))
	r.Categories = append(r.Categories, c)
	r.Total += c.Score
}

func (r *Report) suggest(s string) { r.Suggestions = append(r.Suggestions, s) }
func (r *Report) praise(s string)  { r.Praise = append(r.Praise, s) }

// Category returns the scored line for key.
func (r Report) Category(key string) (Category, bool) {
	for _, c := range r.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

func balance(c neta.Categorized, r *Report) Category {
	total := c.Total()
	drift := 0.0
	for _, l := range neta.Levels {
		actual := 0.0
		if total > 0 {
			actual = float64(len(c.Bucket(l))) / float64(total)
		}
		drift += math.Abs(actual - idealRatio[l])
	}
	cat := Category{Key: Balance, Score: int(math.Round(MaxPerCategory - drift*MaxPerCategory))}

	aruaru, arisou, nainai := len(c.Aruaru), len(c.Arisou), len(c.Nainai)
	switch {
	case aruaru < 3:
		cat.Feedback = "「あるある」が少なすぎます。観客の共感を得るために最低3つは必要です。"
		r.suggest(sprintf("日常でよくある「あるある」をあと%dつ追加してください。みんなが「わかる！」と思えるものを。", 3-aruaru))
	case nainai < 2:
		cat.Feedback = "「ないない」のインパクトが足りません。"
		r.suggest(sprintf("インパクトの強い「ないない」があと%dつほど必要です。思い切って飛躍してみましょう！", 2-nainai))
	case arisou < 4:
		cat.Feedback = "「ありそう」が少なめです。中間のボケをもっと増やしましょう。"
		r.suggest(sprintf("「ありそう」のボケをあと%dつ考えてください。あるあるを少し誇張する感じで。", 4-arisou))
	default:
		cat.Feedback = "バランスは良好です！"
		r.praise("ボケのバランスが理想的です。あるある→ありそう→ないないの流れが作れそうですね。")
	}
	return cat
}

// jokePatterns are checked in order; a joke's pattern is the first match.
var jokePatterns = []struct {
	name     string
	keywords []string
}{
	{"勘違い", []string{"勘違い"}},
	{"間違い", []string{"間違い", "間違え"}},
	{"忘れ", []string{"忘れ"}},
	{"比喩", []string{"みたい", "ような"}},
	{"逆転", []string{"逆に"}},
	{"仮定", []string{"もし"}},
}

func patternOf(joke string) string {
	for _, p := range jokePatterns {
		for _, k := range p.keywords {
			if strings.Contains(joke, k) {
				return p.name
			}
		}
	}
	return ""
}

func variety(jokes []string, r *Report) Category {
	cat := Category{Key: Variety}
	if len(jokes) == 0 {
		cat.Feedback = "ボケが記録されていません。"
		return cat
	}

	seen := map[string]bool{}
	for _, j := range jokes {
		for _, p := range jokePatterns {
			for _, k := range p.keywords {
				if strings.Contains(j, k) {
					seen[p.name] = true
				}
			}
		}
	}

	run, longest, last := 0, 0, ""
	for _, j := range jokes {
		p := patternOf(j)
		if p != "" && p == last {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
		last = p
	}

	cat.Score = min(MaxPerCategory, MaxPerCategory-longest*3+len(seen)*2)
	switch {
	case longest >= 3:
		cat.Feedback = "同じタイプのボケが連続しています。"
		r.suggest(sprintf("同じパターンのボケが%d個連続しています。もう少しバラけさせましょう。", longest+1))
	case len(seen) < 3:
		cat.Feedback = "ボケのパターンが単調です。"
		r.suggest("ボケのバリエーションを増やしましょう。勘違い、比喩、極端な例など、違うパターンを試してください。")
	default:
		cat.Feedback = "バラエティ豊かです！"
		r.praise("いろんなパターンのボケがあって飽きさせない構成です。")
	}
	return cat
}

func progression(c neta.Categorized, r *Report) Category {
	cat := Category{Key: Progression, Score: MaxPerCategory}
	switch {
	case len(c.Aruaru) == 0:
		cat.Score -= 10
		cat.Feedback = "導入の「あるある」がありません。"
		r.suggest("最初は共感できる「あるある」から始めましょう。観客を引き込むために重要です。")
	case len(c.Nainai) == 0:
		cat.Score -= 8
		cat.Feedback = "クライマックスの「ないない」がありません。"
		r.suggest("盛り上がりに欠けます。思い切った「ないない」でクライマックスを作りましょう。")
	default:
		cat.Feedback = "進行の流れは良好です！"
		r.praise("あるある→ありそう→ないないの理想的な進行が作れそうです。")
	}
	return cat
}

func structure(in Input, r *Report) Category {
	cat := Category{Key: Structure, Score: MaxPerCategory}
	var issues []string
	if strings.TrimSpace(in.Theme) == "" {
		cat.Score -= 5
		issues = append(issues, "テーマが不明確")
	}
	if strings.TrimSpace(in.Boke) == "" || strings.TrimSpace(in.Tsukkomi) == "" {
		cat.Score -= 5
		issues = append(issues, "キャラクター設定が不完全")
	}
	if strings.TrimSpace(in.Punchline) == "" {
		cat.Score -= 5
		issues = append(issues, "オチが決まっていない")
	}
	if strings.Contains(in.Pattern, "非日常×非日常") {
		cat.Score -= 5
		r.suggest("「非日常×非日常」のパターンは避けた方が良いです。観客が理解しにくくなります。")
	}
	if len(issues) > 0 {
		cat.Feedback = "構成に問題があります: " + strings.Join(issues, "、")
	} else {
		cat.Feedback = "構成はしっかりしています！"
		r.praise("基本的な構成要素がすべて揃っています。")
	}
	return cat
}

var bigNumber = regexp.MustCompile(`\d{3,}`)

// impactful reports whether an absurd joke has a marker of scale.
func impactful(joke string) bool {
	if len([]rune(joke)) > 30 || bigNumber.MatchString(joke) {
		return true
	}
	for _, k := range []string{"！", "世界", "宇宙", "全部", "すべて"} {
		if strings.Contains(joke, k) {
			return true
		}
	}
	return false
}

func impact(c neta.Categorized, r *Report) Category {
	cat := Category{Key: Impact, Score: 15}
	strong := 0
	for _, j := range c.Nainai {
		if impactful(j) {
			strong++
		}
	}
	if strong > 0 {
		cat.Score += 5
		cat.Feedback = "インパクトは十分です！"
		r.praise("記憶に残るインパクトのあるボケがありますね。")
	} else {
		cat.Feedback = "インパクトのあるボケが不足しています。"
		r.suggest("もっと思い切った「ないない」を考えてください。常識を覆すような、でも文脈は保った大胆なボケを。")
	}
	return cat
}

// Verdict is the closing remark for a total score.
func Verdict(total int) string {
	switch {
	case total >= 80:
		return "素晴らしい台本です！このまま練習を重ねれば、きっと大きな笑いが取れるでしょう。"
	case total >= 60:
		return "なかなか良い台本です。提案された改善点を取り入れれば、さらに良くなるでしょう。"
	case total >= 40:
		return "基本はできています。もう少しボケを追加したり、バランスを調整したりしてみましょう。"
	}
	return "まだ改善の余地があります。理論を参考に、一つずつ改善していきましょう。"
}
