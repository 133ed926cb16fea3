package autopilot

import (
	"strings"
	"time"

	"netacho/internal/neta"
)

// Episode categories found by research.
const (
	CategoryAruaru   = "aruaru"
	CategoryEpisodes = "episodes"
	CategoryFunny    = "funny"
	CategoryNainai   = "nainai"
)

// SourcesCount is the reported number of consulted sources.
const SourcesCount = 12

// Episode is one collected anecdote.
type Episode struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// CategoryCounts tallies episodes per category.
type CategoryCounts struct {
	Aruaru   int `json:"aruaru"`
	Episodes int `json:"episodes"`
	Funny    int `json:"funny"`
	Nainai   int `json:"nainai"`
}

// Research is the step-1 result. The episodes come from a fixed table keyed
// by theme; no network access happens.
type Research struct {
	Theme         string         `json:"theme"`
	SourcesCount  int            `json:"sourcesCount"`
	SearchQueries []string       `json:"searchQueries"`
	Episodes      []Episode      `json:"episodes"`
	Categories    CategoryCounts `json:"categories"`
	CollectedAt   time.Time      `json:"collectedAt"`
}

var episodeTemplates = map[string][]Episode{
	"カーナビ": {
		{"カーナビが「右です」って言うから右折したら、民家の駐車場だった", CategoryAruaru},
		{"カーナビの音声が関西弁で「そこ曲がってんか〜」って言われた", CategoryFunny},
		{"目的地に着いたのにカーナビが「お疲れ様でした」って丁寧に挨拶してきた", CategoryEpisodes},
		{"カーナビが故障して宇宙の座標を案内し始めた", CategoryNainai},
	},
	"コンビニ": {
		{"レジで「温めますか？」って聞かれて、アイスクリームだった", CategoryAruaru},
		{"コンビニ店員が商品の場所を聞かれて一緒に探し回ってくれた", CategoryEpisodes},
		{"深夜のコンビニで店員が客より眠そうにしてる", CategoryFunny},
	},
}

// episodesFor returns the table entry for theme or a two-line fallback.
func episodesFor(theme string) []Episode {
	if eps, ok := episodeTemplates[theme]; ok {
		return append([]Episode(nil), eps...)
	}
	return []Episode{
		{theme + "でよくあること", CategoryAruaru},
		{theme + "での面白い体験", CategoryEpisodes},
	}
}

func research(theme string, now time.Time) *Research {
	eps := episodesFor(theme)
	var counts CategoryCounts
	for _, e := range eps {
		switch e.Category {
		case CategoryAruaru:
			counts.Aruaru++
		case CategoryEpisodes:
			counts.Episodes++
		case CategoryFunny:
			counts.Funny++
		case CategoryNainai:
			counts.Nainai++
		}
	}
	return &Research{
		Theme:        theme,
		SourcesCount: SourcesCount,
		SearchQueries: []string{
			theme + " あるある",
			theme + " 体験談 面白い",
			theme + " エピソード 笑える",
		},
		Episodes:    eps,
		Categories:  counts,
		CollectedAt: now.UTC(),
	}
}

// BokeResult is the step-2 artifact.
type BokeResult struct {
	Bokes       []string         `json:"bokes"`
	Categorized neta.Categorized `json:"categorized"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// bucketRule routes candidates into a level by substring and fixes its size.
type bucketRule struct {
	level    neta.Level
	triggers []string
	size     int
	filler   string // top-up text between the theme and the index
}

var bucketRules = []bucketRule{
	{neta.Aruaru, []string{"あるある", "よくある"}, 6, "でよくあること"},
	{neta.Arisou, []string{"勘違い", "困る"}, 4, "でありそうなこと"},
	{neta.Nainai, []string{"ありえない", "予想外"}, 3, "でありえないこと"},
}

// candidates expands the research into raw joke lines.
func candidates(r *Research) []string {
	var out []string
	for _, e := range r.Episodes {
		out = append(out, e.Text)
		if e.Category == CategoryAruaru {
			out = append(out, e.Text+"って、あるある！")
		}
	}
	return append(out,
		r.Theme+"で一番困ること",
		r.Theme+"でよくある勘違い",
		r.Theme+"での予想外の出来事",
		r.Theme+"で思わず笑ってしまうこと",
		r.Theme+"でのありえない体験",
	)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// generate partitions the candidates and tops every bucket up to its size.
// A candidate may land in more than one bucket.
func generate(r *Research, now time.Time) *BokeResult {
	cands := candidates(r)
	buckets := make(map[neta.Level][]string, len(bucketRules))
	for _, rule := range bucketRules {
		var picked []string
		for _, c := range cands {
			if len(picked) == rule.size {
				break
			}
			if containsAny(c, rule.triggers) {
				picked = append(picked, c)
			}
		}
		for len(picked) < rule.size {
			picked = append(picked, sprintf("%s%s%d", r.Theme, rule.filler, len(picked)+1))
		}
		buckets[rule.level] = picked
	}
	c := neta.Categorized{
		Aruaru: buckets[neta.Aruaru],
		Arisou: buckets[neta.Arisou],
		Nainai: buckets[neta.Nainai],
	}
	var all []string
	for _, j := range c.Flatten() {
		all = append(all, j.Text)
	}
	return &BokeResult{Bokes: all, Categorized: c, GeneratedAt: now.UTC()}
}
