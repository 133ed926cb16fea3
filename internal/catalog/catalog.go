// Package catalog defines the immutable step tables that drive the wizards.
//
// A Catalog is an ordered list of Step definitions. Each step declares the
// shape of the answer it expects and the field path the answer is written to.
// Catalogs are static configuration: they are built once by Interactive or
// Guided and never mutated.
package catalog

import (
	"fmt"

	"netacho/internal/neta"
)

// Complete is the successor id of the last step.
const Complete = 0

// Shape is the expected form of an answer.
type Shape string

const (
	ShapeText       Shape = "text"       // free text
	ShapeChoice     Shape = "choice"     // one of Choices (or its 1-based index)
	ShapeList       Shape = "list"       // at least MinItems strings
	ShapeRecord     Shape = "record"     // named subfields, all required
	ShapeCategorize Shape = "categorize" // aruaru/arisou/nainai lists
)

// FieldSpec names one subfield of a record-shaped answer.
type FieldSpec struct {
	Key   string
	Label string
}

// Step is one question of a wizard.
type Step struct {
	ID         int
	Stage      string
	Name       string
	Prompt     string
	Detail     string // extra guidance shown under the prompt
	Example    string
	Shape      Shape
	Choices    []string
	AllowOther bool // choice steps: accept free text outside Choices
	MinItems   int
	Fields     []FieldSpec
	UseFrom    neta.Level // compose steps: bucket the user draws from
	Field      string     // dot-path target in the session document
	Successor  int
}

// Catalog is an ordered, immutable table of steps.
type Catalog struct {
	Name  string
	steps []Step
}

func newCatalog(name string, steps []Step) *Catalog {
	for i := range steps {
		if i+1 < len(steps) {
			steps[i].Successor = steps[i+1].ID
		} else {
			steps[i].Successor = Complete
		}
	}
	return &Catalog{Name: name, steps: steps}
}

// Len is the number of steps.
func (c *Catalog) Len() int { return len(c.steps) }

// Step returns the step with the given id.
func (c *Catalog) Step(id int) (Step, bool) {
	if id < 1 || id > len(c.steps) {
		return Step{}, false
	}
	s := c.steps[id-1]
	return s, s.ID == id
}

// Steps returns a copy of the steps in catalog order.
func (c *Catalog) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Validate checks that ids are 1..N in order and that the successor chain
// from step 1 reaches Complete after exactly N-1 forward moves.
func (c *Catalog) Validate() error {
	for i, s := range c.steps {
		if s.ID != i+1 {
			return fmt.Errorf("catalog %s: step at index %d has id %d", c.Name, i, s.ID)
		}
		if s.Field == "" {
			return fmt.Errorf("catalog %s: step %d has no target field", c.Name, s.ID)
		}
		if s.Shape == ShapeChoice && len(s.Choices) == 0 {
			return fmt.Errorf("catalog %s: choice step %d has no choices", c.Name, s.ID)
		}
	}
	if len(c.steps) == 0 {
		return fmt.Errorf("catalog %s: empty", c.Name)
	}
	id, moves := 1, 0
	for {
		s, ok := c.Step(id)
		if !ok {
			return fmt.Errorf("catalog %s: successor %d not found", c.Name, id)
		}
		if s.Successor == Complete {
			break
		}
		if s.Successor != id+1 {
			return fmt.Errorf("catalog %s: step %d skips to %d", c.Name, id, s.Successor)
		}
		id = s.Successor
		moves++
	}
	if moves != len(c.steps)-1 {
		return fmt.Errorf("catalog %s: chain has %d moves, want %d", c.Name, moves, len(c.steps)-1)
	}
	return nil
}
