package learningpaths

import (
	"time"

	"career-coach/internal/coach"
)

// Target goals accepted for a learning path.
const (
	GoalSkillEnhancement = "skill_enhancement"
	GoalCareerChange     = "career_change"
	GoalPromotion        = "promotion"
	GoalInterviewPrep    = "interview_prep"
	GoalFreelancePrep    = "freelance_prep"
)

// Duration bounds in months.
const (
	DefaultDurationMonths = 3
	MinDurationMonths     = 1
	MaxDurationMonths     = 24
)

// LearningPath is a generated phased roadmap for one profile.
type LearningPath struct {
	ID                      string               `json:"id"`
	ProfileID               string               `json:"profile_id"`
	TargetGoal              string               `json:"target_goal"`
	LearningRoadmap         []coach.LearningStep `json:"learning_roadmap"`
	EstimatedDurationMonths int                  `json:"estimated_duration_months"`
	GenerationMetadata      coach.Metadata       `json:"generation_metadata"`
	CreatedAt               time.Time            `json:"created_at"`
}
