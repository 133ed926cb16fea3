// Package neta holds the shared vocabulary of a two-person comedy script:
// joke escalation levels, joke kinds, and the categorized joke set that the
// wizard, the sequencer, and the full-auto pipeline pass between each other.
//
// Codes are for machines (JSON fields, map keys); see internal/display for
// the human-readable names.
package neta

// Level is the escalation tier of a joke (boke).
type Level string

const (
	Aruaru Level = "aruaru" // relatable
	Arisou Level = "arisou" // plausible exaggeration
	Nainai Level = "nainai" // absurd leap
)

// Levels lists the tiers in escalation order.
var Levels = []Level{Aruaru, Arisou, Nainai}

// Valid reports whether l is one of the three tiers.
func (l Level) Valid() bool {
	switch l {
	case Aruaru, Arisou, Nainai:
		return true
	}
	return false
}

// Kind is the advisory delivery style of a joke, orthogonal to Level.
type Kind string

const (
	Verbal      Kind = "verbal"
	Physical    Kind = "physical"
	Situational Kind = "situational"
	Character   Kind = "character"
)

// Kinds lists the kinds in display order.
var Kinds = []Kind{Verbal, Physical, Situational, Character}

// Genre is the script format.
type Genre string

const (
	Manzai Genre = "manzai"
	Conte  Genre = "conte"
)

// Valid reports whether g is a supported genre.
func (g Genre) Valid() bool {
	return g == Manzai || g == Conte
}

// Joke is a single setup line delivered by the boke.
type Joke struct {
	Text  string `json:"text"`
	Level Level  `json:"level"`
	Kind  Kind   `json:"kind,omitempty"`
}

// Categorized holds jokes in exactly three level buckets. Order within a
// bucket is insertion order.
type Categorized struct {
	Aruaru []string `json:"aruaru"`
	Arisou []string `json:"arisou"`
	Nainai []string `json:"nainai"`
}

// Bucket returns the jokes for one level.
func (c Categorized) Bucket(l Level) []string {
	switch l {
	case Aruaru:
		return c.Aruaru
	case Arisou:
		return c.Arisou
	case Nainai:
		return c.Nainai
	}
	return nil
}

// Total is the number of jokes across all buckets.
func (c Categorized) Total() int {
	return len(c.Aruaru) + len(c.Arisou) + len(c.Nainai)
}

// Flatten returns every joke in level order, tagged with its level.
func (c Categorized) Flatten() []Joke {
	out := make([]Joke, 0, c.Total())
	for _, l := range Levels {
		for _, text := range c.Bucket(l) {
			out = append(out, Joke{Text: text, Level: l})
		}
	}
	return out
}
