package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"career-coach/internal/bootstrap"
	"career-coach/internal/coach"
	"career-coach/internal/extract"
	"career-coach/internal/shared/config"
)

var (
	genResume       string
	genSummary      string
	genRole         string
	genSkills       string
	genYears        int
	genAnalysisFile string
	genCompany      string
	genPosition     string
	genGoal         string
	genMonths       int
	genProvider     string
	genModel        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a live career analysis",
	RunE:  runAnalyze,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate five interview questions from a stored analysis",
	RunE:  runQuestions,
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Generate a learning roadmap from a stored analysis",
	RunE:  runRoadmap,
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, questionsCmd, roadmapCmd} {
		c.Flags().StringVar(&genProvider, "provider", "", "LLM provider override (openai, gemini)")
		c.Flags().StringVar(&genModel, "model", "", "LLM model override")
		c.Flags().StringVar(&genSkills, "skills", "", "Comma-separated technical skills")
		c.Flags().StringVar(&genSummary, "summary", "", "Career summary text")
		rootCmd.AddCommand(c)
	}
	analyzeCmd.Flags().StringVar(&genResume, "resume", "", "Resume file (pdf, docx or txt) used as the career summary")
	analyzeCmd.Flags().StringVar(&genRole, "role", "", "Job role")
	analyzeCmd.Flags().IntVar(&genYears, "years", 0, "Years of experience")

	for _, c := range []*cobra.Command{questionsCmd, roadmapCmd} {
		c.Flags().StringVarP(&genAnalysisFile, "analysis", "a", "", "Path to an analysis JSON produced by `coachctl analyze`")
		_ = c.MarkFlagRequired("analysis")
	}
	questionsCmd.Flags().StringVar(&genCompany, "company", "startup", "Target company type")
	questionsCmd.Flags().StringVar(&genPosition, "position", "junior", "Target position level")
	roadmapCmd.Flags().StringVar(&genGoal, "goal", "skill_enhancement", "Target goal")
	roadmapCmd.Flags().IntVar(&genMonths, "months", 3, "Roadmap duration in months")
}

func newGenerator(ctx context.Context) (*coach.Generator, error) {
	cfg := config.Load()
	if genProvider != "" {
		cfg.LLMProvider = genProvider
	}
	if genModel != "" {
		cfg.LLMModel = genModel
	}
	// Missing keys are an error here, not a placeholder fallback.
	cfg.Env = "production"
	client, err := bootstrap.BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return coach.NewGenerator(client, cfg.LLMModel, cfg.LLMTimeout), nil
}

type generationOutput struct {
	Metadata coach.Metadata `json:"metadata"`
	Result   any            `json:"result"`
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	summary := genSummary
	if genResume != "" {
		data, err := os.ReadFile(genResume)
		if err != nil {
			return fmt.Errorf("read resume: %w", err)
		}
		text, err := extract.TextFromBytes(ctx, data, "", filepath.Base(genResume))
		if err != nil {
			return fmt.Errorf("extract resume text: %w", err)
		}
		summary = text
	}
	if strings.TrimSpace(summary) == "" || strings.TrimSpace(genRole) == "" {
		return fmt.Errorf("--summary or --resume, and --role are required")
	}

	gen, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	analysis, meta, err := gen.Analyze(ctx, coach.AnalysisRequest{
		CareerSummary:   summary,
		JobRole:         genRole,
		TechnicalSkills: genSkills,
		ExperienceYears: genYears,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), generationOutput{Metadata: meta, Result: analysis})
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	analysis, err := loadAnalysis(genAnalysisFile)
	if err != nil {
		return err
	}
	gen, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	questions, meta, err := gen.Questions(ctx, coach.QuestionsRequest{
		Analysis:        analysis,
		CompanyType:     genCompany,
		PositionLevel:   genPosition,
		CareerSummary:   genSummary,
		TechnicalSkills: genSkills,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), generationOutput{Metadata: meta, Result: questions})
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	analysis, err := loadAnalysis(genAnalysisFile)
	if err != nil {
		return err
	}
	gen, err := newGenerator(ctx)
	if err != nil {
		return err
	}
	steps, meta, err := gen.Roadmap(ctx, coach.RoadmapRequest{
		Analysis:        analysis,
		TargetGoal:      genGoal,
		CareerSummary:   genSummary,
		TechnicalSkills: genSkills,
		DurationMonths:  genMonths,
	})
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), generationOutput{Metadata: meta, Result: steps})
}

// loadAnalysis accepts either a bare analysis or the output of `coachctl analyze`.
func loadAnalysis(path string) (coach.CareerAnalysis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return coach.CareerAnalysis{}, fmt.Errorf("read analysis: %w", err)
	}
	var wrapped struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Result) > 0 {
		raw = wrapped.Result
	}
	return coach.DecodeAnalysis(raw)
}
