package coach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		shape Shape
		want  string
	}{
		{name: "plain object", raw: ` {"a":1} `, shape: ShapeAnalysis, want: `{"a":1}`},
		{name: "json fence", raw: "```json\n{\"a\":1}\n```", shape: ShapeAnalysis, want: `{"a":1}`},
		{name: "bare fence", raw: "```\n{\"a\":1}\n```", shape: ShapeAnalysis, want: `{"a":1}`},
		{name: "fence without close", raw: "```json\n{\"a\":1}", shape: ShapeAnalysis, want: `{"a":1}`},
		{name: "fence with trailing prose", raw: "```json\n{\"a\":1}\n```\nLet me know!", shape: ShapeAnalysis, want: `{"a":1}`},
		{name: "array with prose", raw: "Here you go:\n[{\"q\":1}]\nGood luck.", shape: ShapeQuestions, want: `[{"q":1}]`},
		{name: "array in fenced block inside prose", raw: "Plan:\n```json\n[{\"p\":1}]\n```\nEnjoy", shape: ShapeRoadmap, want: `[{"p":1}]`},
		{name: "array fence", raw: "```json\n[1,2]\n```", shape: ShapeQuestions, want: `[1,2]`},
		{name: "object shape keeps prose", raw: "Sure: {\"a\":1}", shape: ShapeAnalysis, want: `Sure: {"a":1}`},
		{name: "no json", raw: "Sorry, I cannot help with that.", shape: ShapeQuestions, want: "Sorry, I cannot help with that."},
		{name: "empty", raw: "", shape: ShapeRoadmap, want: ""},
		{name: "only fences", raw: "``````", shape: ShapeAnalysis, want: ""},
		{name: "backticks inside array string", raw: "[{\"q\":\"What does ```go defer``` do?\"}]", shape: ShapeQuestions, want: "[{\"q\":\"What does ```go defer``` do?\"}]"},
		{name: "fenced array with backticks inside string", raw: "```json\n[{\"q\":\"What does ```go defer``` do?\"}]\n```", shape: ShapeQuestions, want: "[{\"q\":\"What does ```go defer``` do?\"}]"},
		{name: "fenced object with backticks inside string", raw: "```json\n{\"p\":\"Writes ```sql``` daily\"}\n```", shape: ShapeAnalysis, want: "{\"p\":\"Writes ```sql``` daily\"}"},
		{name: "unclosed fence with backticks inside string", raw: "```json\n{\"p\":\"ends with ```\"}", shape: ShapeAnalysis, want: "{\"p\":\"ends with ```\"}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.shape))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"``````json\n{\"a\":1}",
		"```json\n```json\n[1]\n```\n```",
		"text [1] more ] text",
		"]broken[",
		"   ```   ",
		"Sure!\n```\n[{\"x\":\"```\"}]\n```",
		"{\"career_level\":\"mid\"",
		"",
	}
	for _, shape := range []Shape{ShapeAnalysis, ShapeQuestions, ShapeRoadmap} {
		for _, in := range inputs {
			once := Normalize(in, shape)
			assert.Equal(t, once, Normalize(once, shape), "shape=%s input=%q", shape, in)
		}
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	f.Add("```json\n{\"a\":1}\n```")
	f.Add("prose [1,2] prose")
	f.Add("```\n```")
	f.Add("```json\n{\"p\":\"Writes ```sql``` daily\"}\n```")
	f.Add("[{\"q\":\"What does ```go defer``` do?\"}]")
	f.Fuzz(func(t *testing.T, raw string) {
		for _, shape := range []Shape{ShapeAnalysis, ShapeQuestions} {
			once := Normalize(raw, shape)
			if twice := Normalize(once, shape); twice != once {
				t.Fatalf("not idempotent for %q: %q then %q", raw, once, twice)
			}
		}
	})
}

func TestBackticksInsideStringsParseDirectly(t *testing.T) {
	analysis := strings.Replace(fullAnalysisJSON, `"Steady growth in backend work."`, "\"Writes ```sql``` daily.\"", 1)
	question := "[{\"question\":\"What does ```go defer``` do?\",\"category\":\"technical\",\"difficulty_level\":\"basic\",\"suggested_answer_approach\":\"Explain LIFO order.\"}]"

	tests := []struct {
		name  string
		raw   string
		shape Shape
	}{
		{name: "fenced analysis", raw: "```json\n" + analysis + "\n```", shape: ShapeAnalysis},
		{name: "bare analysis", raw: analysis, shape: ShapeAnalysis},
		{name: "questions", raw: question, shape: ShapeQuestions},
		{name: "fenced questions", raw: "```json\n" + question + "\n```", shape: ShapeQuestions},
		{name: "questions in prose", raw: "Here:\n" + question + "\nGood luck", shape: ShapeQuestions},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			parsed := Recover(Normalize(tt.raw, tt.shape), tt.shape, fallbackFor(tt.shape))
			require.Equal(t, StageDirect, parsed.Stage)
		})
	}

	captureLogs(t)
	parsed := Recover(Normalize("```json\n"+analysis+"\n```", ShapeAnalysis), ShapeAnalysis, DefaultAnalysis())
	got, err := MapAnalysis(parsed)
	require.NoError(t, err)
	assert.Equal(t, "Writes ```sql``` daily.", got.CareerPattern)
}
