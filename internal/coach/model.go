package coach

import (
	"slices"
	"time"
)

// Shape identifies the target result of one generation.
type Shape string

const (
	ShapeAnalysis  Shape = "analysis"
	ShapeQuestions Shape = "questions"
	ShapeRoadmap   Shape = "roadmap"
)

func (s Shape) isArray() bool {
	return s == ShapeQuestions || s == ShapeRoadmap
}

// QuestionsPerSession is the fixed size of a generated question set.
const QuestionsPerSession = 5

// CareerAnalysis is the persisted result of a profile analysis. JSON names are
// the storage contract for analysis_result.
type CareerAnalysis struct {
	CareerLevel           string   `json:"career_level" validate:"required"`
	StrengthAreas         []string `json:"strength_areas" validate:"required,min=1"`
	ImprovementAreas      []string `json:"improvement_areas" validate:"required"`
	CareerPattern         string   `json:"career_pattern" validate:"required"`
	MarketCompetitiveness int      `json:"market_competitiveness" validate:"min=1,max=10"`
	PersonalityTraits     []string `json:"personality_traits" validate:"required"`
	GrowthTrajectory      string   `json:"growth_trajectory" validate:"required"`
}

// Clone returns a copy that shares no slices with a.
func (a CareerAnalysis) Clone() CareerAnalysis {
	a.StrengthAreas = slices.Clone(a.StrengthAreas)
	a.ImprovementAreas = slices.Clone(a.ImprovementAreas)
	a.PersonalityTraits = slices.Clone(a.PersonalityTraits)
	return a
}

type InterviewQuestion struct {
	Question                string `json:"question" validate:"required"`
	Category                string `json:"category" validate:"required"`
	DifficultyLevel         string `json:"difficulty_level" validate:"required,oneof=basic intermediate advanced"`
	SuggestedAnswerApproach string `json:"suggested_answer_approach" validate:"required"`
}

type LearningStep struct {
	Phase          string   `json:"phase" validate:"required"`
	DurationWeeks  int      `json:"duration_weeks" validate:"min=1,max=520"`
	Objectives     []string `json:"objectives" validate:"required,min=1"`
	Resources      []string `json:"resources" validate:"required"`
	Milestones     []string `json:"milestones" validate:"required"`
	Projects       []string `json:"projects,omitempty"`
	PersonalAdvice string   `json:"personal_advice,omitempty"`
}

// AnalysisRequest carries the profile fields for an analysis prompt.
type AnalysisRequest struct {
	CareerSummary   string
	JobRole         string
	TechnicalSkills string
	ExperienceYears int
}

type QuestionsRequest struct {
	Analysis        CareerAnalysis
	CompanyType     string
	PositionLevel   string
	CareerSummary   string
	TechnicalSkills string
}

type RoadmapRequest struct {
	Analysis        CareerAnalysis
	TargetGoal      string
	CareerSummary   string
	TechnicalSkills string
	DurationMonths  int
}

// Metadata describes one generation run and is persisted next to its result.
type Metadata struct {
	ProcessType           string    `json:"process_type"`
	ModelUsed             string    `json:"model_used"`
	GenerationTimeSeconds float64   `json:"generation_time_seconds"`
	Timestamp             time.Time `json:"timestamp"`
}
