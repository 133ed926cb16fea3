package wizard

import (
	"strings"
	"testing"
)

func TestHint(t *testing.T) {
	cases := []struct {
		topic, want string
	}{
		{"ボケ", "違和感"},
		{"joke", "違和感"},
		{"Relatable", "共感できる失敗談"},
		{"absurd", "物理法則"},
		{"オチ", "余韻"},
		{"落語", "具体的なトピックを教えてください"},
	}
	for _, tc := range cases {
		if got := Hint(tc.topic); !strings.Contains(got, tc.want) {
			t.Errorf("Hint(%q) = %q, want it to contain %q", tc.topic, got, tc.want)
		}
	}
}
