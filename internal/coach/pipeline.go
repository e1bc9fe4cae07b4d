package coach

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"career-coach/internal/llm"
	"career-coach/internal/shared/metrics"
	"career-coach/internal/shared/telemetry"
)

type sampling struct {
	temperature float32
	maxTokens   int
}

// Lower temperature for analysis, higher for question writing.
var samplingByShape = map[Shape]sampling{
	ShapeAnalysis:  {temperature: 0.3, maxTokens: 1500},
	ShapeQuestions: {temperature: 0.7, maxTokens: 2000},
	ShapeRoadmap:   {temperature: 0.4, maxTokens: 2500},
}

// ProcessType is the name recorded in metadata, metrics and logs.
func ProcessType(shape Shape) string {
	switch shape {
	case ShapeQuestions:
		return "interview_questions"
	case ShapeRoadmap:
		return "learning_path"
	default:
		return string(shape)
	}
}

// Generator runs prompt, gateway, normalize, recover and map for each shape.
type Generator struct {
	LLM        llm.Client
	Model      string
	Timeout    time.Duration
	RetryDelay time.Duration
	Now        func() time.Time
}

func NewGenerator(client llm.Client, model string, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Generator{
		LLM:        client,
		Model:      model,
		Timeout:    timeout,
		RetryDelay: retryBaseDelay,
		Now:        time.Now,
	}
}

// Analyze produces a CareerAnalysis for a profile.
func (g *Generator) Analyze(ctx context.Context, req AnalysisRequest) (CareerAnalysis, Metadata, error) {
	startedAt := g.now()
	parsed, err := g.run(ctx, ShapeAnalysis, BuildAnalysisPrompt(req), DefaultAnalysis())
	if err != nil {
		return CareerAnalysis{}, Metadata{}, err
	}
	analysis, err := MapAnalysis(parsed)
	if err != nil {
		return CareerAnalysis{}, Metadata{}, g.mappingFailed(ShapeAnalysis, parsed, err)
	}
	return analysis, g.finish(ShapeAnalysis, parsed, startedAt), nil
}

// Questions produces exactly QuestionsPerSession interview questions.
func (g *Generator) Questions(ctx context.Context, req QuestionsRequest) ([]InterviewQuestion, Metadata, error) {
	startedAt := g.now()
	parsed, err := g.run(ctx, ShapeQuestions, BuildQuestionsPrompt(req), DefaultQuestions())
	if err != nil {
		return nil, Metadata{}, err
	}
	questions, err := MapQuestions(parsed)
	if err != nil {
		return nil, Metadata{}, g.mappingFailed(ShapeQuestions, parsed, err)
	}
	return questions, g.finish(ShapeQuestions, parsed, startedAt), nil
}

// Roadmap produces the learning steps for the requested duration.
func (g *Generator) Roadmap(ctx context.Context, req RoadmapRequest) ([]LearningStep, Metadata, error) {
	startedAt := g.now()
	fallback := DefaultRoadmap(req.DurationMonths, req.TechnicalSkills, req.Analysis.CareerLevel)
	parsed, err := g.run(ctx, ShapeRoadmap, BuildRoadmapPrompt(req), fallback)
	if err != nil {
		return nil, Metadata{}, err
	}
	steps, err := MapRoadmap(parsed)
	if err != nil {
		return nil, Metadata{}, g.mappingFailed(ShapeRoadmap, parsed, err)
	}
	return steps, g.finish(ShapeRoadmap, parsed, startedAt), nil
}

func (g *Generator) run(ctx context.Context, shape Shape, prompt string, fallback any) (Parsed, error) {
	process := ProcessType(shape)
	metrics.IncGenerationStarted(process)

	if g.LLM == nil {
		metrics.IncGenerationFailed(process)
		return Parsed{}, llm.Provider("none", 0, llm.ErrNotConfigured)
	}

	params := samplingByShape[shape]
	client := retryingClient{base: g.LLM, timeout: g.timeout(), delay: g.RetryDelay, process: process}
	raw, err := client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   params.maxTokens,
		Temperature: params.temperature,
		JSONObject:  !shape.isArray(),
	})
	if err != nil {
		kind := llm.KindOf(err)
		metrics.IncGatewayFailure(string(kind))
		metrics.IncGenerationFailed(process)
		telemetry.Error("coach.generation_failed", map[string]any{
			"process": process,
			"kind":    string(kind),
			"error":   telemetry.Truncate(err.Error(), 300),
		})
		return Parsed{}, fmt.Errorf("%s generation: %w", shape, err)
	}

	parsed := Recover(Normalize(raw, shape), shape, fallback)
	metrics.IncRecoveryStage(process, string(parsed.Stage))
	if parsed.Stage != StageDirect {
		telemetry.Warn("coach.recovery", map[string]any{
			"process": process,
			"stage":   string(parsed.Stage),
		})
	}
	return parsed, nil
}

func (g *Generator) mappingFailed(shape Shape, parsed Parsed, err error) error {
	metrics.IncGenerationFailed(ProcessType(shape))
	telemetry.Error("coach.mapping_contract_violation", map[string]any{
		"process": ProcessType(shape),
		"stage":   string(parsed.Stage),
		"error":   err.Error(),
	})
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		err = &MappingError{Shape: shape, Err: err}
	}
	return err
}

func (g *Generator) finish(shape Shape, parsed Parsed, startedAt time.Time) Metadata {
	completedAt := g.now()
	elapsed := completedAt.Sub(startedAt)
	process := ProcessType(shape)
	metrics.IncGenerationCompleted(process)
	metrics.ObserveGenerationDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("coach.generation_complete", map[string]any{
		"process":     process,
		"stage":       string(parsed.Stage),
		"model":       g.Model,
		"duration_ms": elapsed.Milliseconds(),
	})
	return Metadata{
		ProcessType:           process,
		ModelUsed:             g.Model,
		GenerationTimeSeconds: math.Round(elapsed.Seconds()*100) / 100,
		Timestamp:             completedAt.UTC(),
	}
}

func (g *Generator) timeout() time.Duration {
	if g.Timeout <= 0 {
		return defaultCallTimeout
	}
	return g.Timeout
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
