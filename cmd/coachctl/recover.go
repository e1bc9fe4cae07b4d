package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"career-coach/internal/coach"
)

var (
	recoverShape    string
	recoverFile     string
	recoverMonths   int
	recoverSkills   string
	recoverLevel    string
	recoverNormOnly bool
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Normalize, parse and map a raw model completion",
	Long:  "Reads a raw completion from --file (or stdin) and prints the recovery stage and the typed result the service would store.",
	RunE:  runRecover,
}

func init() {
	recoverCmd.Flags().StringVarP(&recoverShape, "shape", "s", "analysis", "Target shape: analysis, questions or roadmap")
	recoverCmd.Flags().StringVarP(&recoverFile, "file", "f", "-", "Path to the raw completion (- for stdin)")
	recoverCmd.Flags().IntVar(&recoverMonths, "months", 3, "Roadmap duration used to size the default")
	recoverCmd.Flags().StringVar(&recoverSkills, "skills", "", "Technical skills used by the roadmap default")
	recoverCmd.Flags().StringVar(&recoverLevel, "level", "", "Career level used by the roadmap default")
	recoverCmd.Flags().BoolVar(&recoverNormOnly, "normalize-only", false, "Print the normalized text and stop")
	rootCmd.AddCommand(recoverCmd)
}

type recoverOutput struct {
	Shape  coach.Shape `json:"shape"`
	Stage  coach.Stage `json:"stage"`
	Result any         `json:"result"`
}

func runRecover(cmd *cobra.Command, _ []string) error {
	shape, err := parseShape(recoverShape)
	if err != nil {
		return err
	}
	raw, err := readInput(recoverFile, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read completion: %w", err)
	}

	normalized := coach.Normalize(string(raw), shape)
	if recoverNormOnly {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), normalized)
		return err
	}

	var (
		fallback any
		result   any
	)
	switch shape {
	case coach.ShapeAnalysis:
		fallback = coach.DefaultAnalysis()
	case coach.ShapeQuestions:
		fallback = coach.DefaultQuestions()
	case coach.ShapeRoadmap:
		fallback = coach.DefaultRoadmap(recoverMonths, recoverSkills, recoverLevel)
	}
	parsed := coach.Recover(normalized, shape, fallback)
	switch shape {
	case coach.ShapeAnalysis:
		result, err = coach.MapAnalysis(parsed)
	case coach.ShapeQuestions:
		result, err = coach.MapQuestions(parsed)
	case coach.ShapeRoadmap:
		result, err = coach.MapRoadmap(parsed)
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), recoverOutput{Shape: shape, Stage: parsed.Stage, Result: result})
}

func parseShape(raw string) (coach.Shape, error) {
	switch coach.Shape(raw) {
	case coach.ShapeAnalysis, coach.ShapeQuestions, coach.ShapeRoadmap:
		return coach.Shape(raw), nil
	default:
		return "", fmt.Errorf("unknown shape %q (want analysis, questions or roadmap)", raw)
	}
}
