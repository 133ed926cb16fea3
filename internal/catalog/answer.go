package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"netacho/internal/neta"
)

// Form records which variant of the Answer union is populated.
type Form string

const (
	FormText   Form = "text"
	FormList   Form = "list"
	FormRecord Form = "record"
)

// Answer is a validated answer: exactly one of Text, List or Record is
// meaningful, selected by Form. It marshals to the natural JSON value
// (string, array or object) so session documents stay plain JSON.
type Answer struct {
	Form   Form
	Text   string
	List   []string
	Record map[string]any
}

// TextAnswer returns a text-form answer.
func TextAnswer(s string) Answer { return Answer{Form: FormText, Text: s} }

// ListAnswer returns a list-form answer.
func ListAnswer(items ...string) Answer { return Answer{Form: FormList, List: items} }

// RecordAnswer returns a record-form answer.
func RecordAnswer(rec map[string]any) Answer { return Answer{Form: FormRecord, Record: rec} }

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	parsed, err := decodeAnswer(data)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value returns the answer as a plain JSON-compatible value.
func (a Answer) Value() any {
	switch a.Form {
	case FormList:
		if a.List == nil {
			return []string{}
		}
		return a.List
	case FormRecord:
		return a.Record
	default:
		return a.Text
	}
}

// Items returns the answer coerced to a list: a list as-is, a text answer
// as a one-element list.
func (a Answer) Items() []string {
	switch a.Form {
	case FormList:
		return a.List
	case FormText:
		if a.Text == "" {
			return nil
		}
		return []string{a.Text}
	}
	return nil
}

// String renders the answer for humans.
func (a Answer) String() string {
	switch a.Form {
	case FormList:
		return strings.Join(a.List, "、")
	case FormRecord:
		keys := make([]string, 0, len(a.Record))
		for k := range a.Record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, a.Record[k]))
		}
		return strings.Join(parts, ", ")
	default:
		return a.Text
	}
}

// decodeAnswer parses raw JSON into the union without any shape checks.
// Numbers and booleans become text.
func decodeAnswer(data []byte) (Answer, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Answer{}, neta.Errorf(neta.ErrInvalidAnswer, "回答が空です")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Answer{}, neta.Errorf(neta.ErrInvalidAnswer, "回答を読み取れません: %v", err)
	}
	switch t := v.(type) {
	case string:
		return TextAnswer(strings.TrimSpace(t)), nil
	case float64:
		return TextAnswer(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case bool:
		return TextAnswer(strconv.FormatBool(t)), nil
	case []any:
		items, err := neta.StringList(t)
		if err != nil {
			return Answer{}, neta.Errorf(neta.ErrInvalidAnswer, "回答を読み取れません: %v", err)
		}
		return ListAnswer(items...), nil
	case map[string]any:
		return RecordAnswer(t), nil
	}
	return Answer{}, neta.Errorf(neta.ErrInvalidAnswer, "対応していない回答形式です: %T", v)
}

// Validate decodes raw and checks it against the step's shape, returning the
// normalized answer. Errors wrap neta.ErrInvalidAnswer.
func (s Step) Validate(raw json.RawMessage) (Answer, error) {
	a, err := decodeAnswer(raw)
	if err != nil {
		return Answer{}, err
	}
	return s.Normalize(a)
}

// Normalize checks an already-decoded answer against the step's shape.
func (s Step) Normalize(a Answer) (Answer, error) {
	switch s.Shape {
	case ShapeText:
		return s.normalizeText(a)
	case ShapeChoice:
		return s.normalizeChoice(a)
	case ShapeList:
		return s.normalizeList(a)
	case ShapeRecord:
		return s.normalizeRecord(a)
	case ShapeCategorize:
		return s.normalizeCategorize(a)
	}
	return Answer{}, fmt.Errorf("step %d: unknown shape %q", s.ID, s.Shape)
}

func (s Step) invalid(format string, args ...any) error {
	return neta.Errorf(neta.ErrInvalidAnswer, "ステップ%d（%s）: %s", s.ID, s.Name, fmt.Sprintf(format, args...))
}

func (s Step) normalizeText(a Answer) (Answer, error) {
	switch a.Form {
	case FormText:
		if a.Text == "" {
			return Answer{}, s.invalid("回答が空です")
		}
		return a, nil
	case FormList:
		if len(a.List) == 0 {
			return Answer{}, s.invalid("回答が空です")
		}
		return TextAnswer(strings.Join(a.List, "\n")), nil
	}
	return Answer{}, s.invalid("文章で答えてください")
}

func (s Step) normalizeChoice(a Answer) (Answer, error) {
	if a.Form != FormText || a.Text == "" {
		return Answer{}, s.invalid("選択肢から1つ選んでください: %s", strings.Join(s.Choices, " / "))
	}
	for _, c := range s.Choices {
		if a.Text == c {
			return a, nil
		}
	}
	if n, err := strconv.Atoi(a.Text); err == nil && n >= 1 && n <= len(s.Choices) {
		return TextAnswer(s.Choices[n-1]), nil
	}
	if s.AllowOther {
		return a, nil
	}
	for _, c := range s.Choices {
		if strings.HasPrefix(a.Text, c) {
			return TextAnswer(c), nil
		}
	}
	return Answer{}, s.invalid("%q は選択肢にありません: %s", a.Text, strings.Join(s.Choices, " / "))
}

func (s Step) normalizeList(a Answer) (Answer, error) {
	var items []string
	switch a.Form {
	case FormList:
		items = a.List
	case FormText:
		items = splitLines(a.Text)
	default:
		return Answer{}, s.invalid("リストで答えてください")
	}
	min := s.MinItems
	if min < 1 {
		min = 1
	}
	if len(items) < min {
		return Answer{}, s.invalid("%d個以上必要です（現在%d個）", min, len(items))
	}
	return ListAnswer(items...), nil
}

func (s Step) normalizeRecord(a Answer) (Answer, error) {
	if a.Form != FormRecord {
		return Answer{}, s.invalid("次の項目をオブジェクトで答えてください: %s", fieldKeys(s.Fields))
	}
	rec := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := a.Record[f.Key]
		if !ok {
			return Answer{}, s.invalid("%s（%s）がありません", f.Key, f.Label)
		}
		if v == nil {
			return Answer{}, s.invalid("%s（%s）が空です", f.Key, f.Label)
		}
		text := strings.TrimSpace(fmt.Sprint(v))
		if text == "" {
			return Answer{}, s.invalid("%s（%s）が空です", f.Key, f.Label)
		}
		rec[f.Key] = text
	}
	return RecordAnswer(rec), nil
}

func (s Step) normalizeCategorize(a Answer) (Answer, error) {
	if a.Form != FormRecord {
		return Answer{}, s.invalid("aruaru / arisou / nainai のリストを持つオブジェクトで答えてください")
	}
	c, err := neta.CategorizedFromRecord(a.Record)
	if err != nil {
		return Answer{}, s.invalid("%v", err)
	}
	if c.Total() == 0 {
		return Answer{}, s.invalid("分類されたボケがありません")
	}
	return RecordAnswer(map[string]any{
		string(neta.Aruaru): nonNil(c.Aruaru),
		string(neta.Arisou): nonNil(c.Arisou),
		string(neta.Nainai): nonNil(c.Nainai),
	}), nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func fieldKeys(fields []FieldSpec) string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return strings.Join(keys, ", ")
}

// splitLines turns a bulleted or numbered block of text into items.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*・•")
		line = strings.TrimSpace(trimNumbering(line))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func trimNumbering(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return line[i+1:]
	}
	return line
}
