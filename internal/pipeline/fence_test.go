package pipeline_test

import (
	"testing"

	"github.com/styleforge/styleforge/internal/pipeline"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "body { color: red; }", "body { color: red; }"},
		{"fenced", "```css\nbody { color: red; }\n```", "body { color: red; }"},
		{"fenced no language", "```\nh1 { margin: 0; }\n```", "h1 { margin: 0; }"},
		{"fence with surrounding whitespace", "\n\n```css\na { }\n```\n", "a { }"},
		{"unterminated fence", "```css\na { }", "a { }"},
		{"lone fence line", "```css", ""},
		{"empty", "", ""},
		{"backticks mid-text stay", "a { content: '```'; }", "a { content: '```'; }"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pipeline.StripCodeFence(tc.in); got != tc.want {
				t.Fatalf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
