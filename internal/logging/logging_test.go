package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"level=INFO", "component=autopilot", "session_id=auto_1_0000abcd", "step advanced"}},
		{"json", []string{`"level":"INFO"`, `"component":"autopilot"`, `"session_id":"auto_1_0000abcd"`}},
		{"", []string{"level=INFO", "component=autopilot"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			Init(slog.LevelInfo, tt.format, &buf)
			New("autopilot").Info("step advanced", "session_id", "auto_1_0000abcd", "step", 2)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q: %s", w, out)
				}
			}
		})
	}
}

func TestInit_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	log := New("wizard")
	log.Debug("cursor moved")
	log.Info("answer saved")
	log.Warn("store write failed")

	out := buf.String()
	for _, quiet := range []string{"cursor moved", "answer saved"} {
		if strings.Contains(out, quiet) {
			t.Errorf("%q logged below warn level", quiet)
		}
	}
	if !strings.Contains(out, "store write failed") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tc.in, got, err)
		}
	}
}
