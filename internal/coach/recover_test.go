package coach

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-coach/internal/shared/telemetry"
)

const fullAnalysisJSON = `{"career_level":"mid","strength_areas":["Go services","Postgres tuning"],"improvement_areas":["system design"],"career_pattern":"Steady growth in backend work.","market_competitiveness":7,"personality_traits":["curious"],"growth_trajectory":"Likely senior within two years."}`

const threeQuestionsJSON = `[
 {"question":"Q1","category":"technical","difficulty_level":"advanced","suggested_answer_approach":"A1"},
 {"question":"Q2","category":"problem solving","difficulty_level":"Intermediate","suggested_answer_approach":"A2"},
 {"question":"Q3","category":"learning","difficulty_level":"easy","suggested_answer_approach":"A3"}
]`

const roadmapJSON = `[
 {"phase":"Phase 1","duration_weeks":4,"objectives":["deepen Go"],"resources":["Go docs",{"title":"Concurrency in Go","url":"https://example.com"}],"milestones":["ship a service"],"projects":["url shortener"],"personal_advice":"Build daily."},
 {"phase":"Phase 2","duration_weeks":8,"objectives":["learn k8s"],"resources":[],"milestones":[]}
]`

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestRecoverStages(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		shape   Shape
		stage   Stage
	}{
		{name: "direct object", payload: fullAnalysisJSON, shape: ShapeAnalysis, stage: StageDirect},
		{name: "truncated object", payload: strings.TrimSuffix(fullAnalysisJSON, "}"), shape: ShapeAnalysis, stage: StageRepaired},
		{name: "object after prose", payload: "Result: " + fullAnalysisJSON, shape: ShapeAnalysis, stage: StageRepaired},
		{name: "partial keys repaired then rejected", payload: `{"career_level":"mid"`, shape: ShapeAnalysis, stage: StageDefault},
		{name: "out of range score", payload: strings.Replace(fullAnalysisJSON, `"market_competitiveness":7`, `"market_competitiveness":11`, 1), shape: ShapeAnalysis, stage: StageDefault},
		{name: "fractional score", payload: strings.Replace(fullAnalysisJSON, `"market_competitiveness":7`, `"market_competitiveness":7.5`, 1), shape: ShapeAnalysis, stage: StageDefault},
		{name: "array where object expected", payload: `[1,2]`, shape: ShapeAnalysis, stage: StageDefault},
		{name: "prose", payload: "Sorry, I cannot help with that.", shape: ShapeAnalysis, stage: StageDefault},
		{name: "empty", payload: "", shape: ShapeAnalysis, stage: StageDefault},
		{name: "questions direct", payload: threeQuestionsJSON, shape: ShapeQuestions, stage: StageDirect},
		{name: "questions envelope", payload: `{"questions":` + threeQuestionsJSON + `}`, shape: ShapeQuestions, stage: StageDirect},
		{name: "questions empty array", payload: `[]`, shape: ShapeQuestions, stage: StageDirect},
		{name: "questions truncated array skips repair", payload: strings.TrimSuffix(strings.TrimSpace(threeQuestionsJSON), "]"), shape: ShapeQuestions, stage: StageDefault},
		{name: "question missing key", payload: `[{"question":"Q"}]`, shape: ShapeQuestions, stage: StageDefault},
		{name: "roadmap direct", payload: roadmapJSON, shape: ShapeRoadmap, stage: StageDirect},
		{name: "roadmap zero weeks", payload: `[{"phase":"p","duration_weeks":0,"objectives":["o"],"resources":[],"milestones":[]}]`, shape: ShapeRoadmap, stage: StageDefault},
		{name: "roadmap empty objectives", payload: `[{"phase":"p","duration_weeks":2,"objectives":[],"resources":[],"milestones":[]}]`, shape: ShapeRoadmap, stage: StageDefault},
		{name: "roadmap empty", payload: `[]`, shape: ShapeRoadmap, stage: StageDefault},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			got := Recover(tt.payload, tt.shape, fallbackFor(tt.shape))
			assert.Equal(t, tt.stage, got.Stage)
			assert.Equal(t, tt.shape, got.Shape)
			require.NotNil(t, got.Value)
		})
	}
}

func TestRecoverLogsFailedAttempts(t *testing.T) {
	logs := captureLogs(t)

	got := Recover("not json at all {", ShapeAnalysis, DefaultAnalysis())
	require.Equal(t, StageDefault, got.Stage)

	out := logs.String()
	assert.Equal(t, 2, strings.Count(out, "coach.parse_attempt_failed"), out)
	assert.Contains(t, out, `"attempt":"direct"`)
	assert.Contains(t, out, "not json at all")
}

func TestRecoverArrayFailureSkipsRepair(t *testing.T) {
	logs := captureLogs(t)

	got := Recover(`[{"question":"Q"`, ShapeQuestions, DefaultQuestions())
	require.Equal(t, StageDefault, got.Stage)
	assert.NotContains(t, logs.String(), `"attempt":"repaired"`)
}

func TestRepairBraces(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		ok      bool
	}{
		{name: "missing one", payload: `{"a":1`, want: `{"a":1}`, ok: true},
		{name: "missing two", payload: `{"a":{"b":1`, want: `{"a":{"b":1}}`, ok: true},
		{name: "brace inside string", payload: `{"a":"{{"`, want: `{"a":"{{"}`, ok: true},
		{name: "escaped quote", payload: `{"a":"x\"{"`, want: `{"a":"x\"{"}`, ok: true},
		{name: "open string", payload: `{"a":"mid`, want: `{"a":"mid"}`, ok: true},
		{name: "leading prose", payload: `note {"a":1}`, want: `{"a":1}`, ok: true},
		{name: "no brace", payload: `[1,2`, ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := repairBraces(tt.payload)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Whatever the completion, normalize then recover then map yields a complete result.
func TestPipelineStagesNeverYieldPartialResults(t *testing.T) {
	captureLogs(t)
	raws := []string{
		fullAnalysisJSON,
		"```json\n" + fullAnalysisJSON + "\n```",
		strings.TrimSuffix(fullAnalysisJSON, "}"),
		fullAnalysisJSON[:40],
		threeQuestionsJSON,
		"```json\n" + roadmapJSON + "\n```",
		"Here is the plan: " + roadmapJSON + " Good luck!",
		"Sorry, I cannot help with that.",
		"",
		"{",
		"[",
		"null",
		`{"questions": 5}`,
		`[{"phase": null}]`,
	}

	for _, raw := range raws {
		analysis, err := MapAnalysis(Recover(Normalize(raw, ShapeAnalysis), ShapeAnalysis, DefaultAnalysis()))
		require.NoError(t, err, "analysis raw=%q", raw)
		assert.NotEmpty(t, analysis.CareerLevel)
		assert.NotEmpty(t, analysis.StrengthAreas)
		assert.GreaterOrEqual(t, analysis.MarketCompetitiveness, 1)
		assert.LessOrEqual(t, analysis.MarketCompetitiveness, 10)

		questions, err := MapQuestions(Recover(Normalize(raw, ShapeQuestions), ShapeQuestions, DefaultQuestions()))
		require.NoError(t, err, "questions raw=%q", raw)
		assert.Len(t, questions, QuestionsPerSession)

		steps, err := MapRoadmap(Recover(Normalize(raw, ShapeRoadmap), ShapeRoadmap, DefaultRoadmap(3, "Go", "mid")))
		require.NoError(t, err, "roadmap raw=%q", raw)
		assert.NotEmpty(t, steps)
	}
}

func FuzzRecoverAlwaysMaps(f *testing.F) {
	f.Add(fullAnalysisJSON)
	f.Add(strings.TrimSuffix(fullAnalysisJSON, "}"))
	f.Add(threeQuestionsJSON)
	f.Add(roadmapJSON)
	f.Add("```json\n{\"career_pattern\":\"Writes ```sql``` daily\"}\n```")
	f.Add("[{\"question\":\"What does ```go defer``` do?\"}]")
	f.Add("Sorry, I cannot help with that.")
	f.Add("")
	f.Fuzz(func(t *testing.T, raw string) {
		restore := telemetry.SetOutput(&bytes.Buffer{})
		defer restore()
		if _, err := MapAnalysis(Recover(Normalize(raw, ShapeAnalysis), ShapeAnalysis, DefaultAnalysis())); err != nil {
			t.Fatalf("analysis: %v", err)
		}
		questions, err := MapQuestions(Recover(Normalize(raw, ShapeQuestions), ShapeQuestions, DefaultQuestions()))
		if err != nil || len(questions) != QuestionsPerSession {
			t.Fatalf("questions: %v (%d)", err, len(questions))
		}
		if _, err := MapRoadmap(Recover(Normalize(raw, ShapeRoadmap), ShapeRoadmap, DefaultRoadmap(2, "Go", "junior"))); err != nil {
			t.Fatalf("roadmap: %v", err)
		}
	})
}

func fallbackFor(shape Shape) any {
	switch shape {
	case ShapeQuestions:
		return DefaultQuestions()
	case ShapeRoadmap:
		return DefaultRoadmap(3, "Go", "mid")
	default:
		return DefaultAnalysis()
	}
}
