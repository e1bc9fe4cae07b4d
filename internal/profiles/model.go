package profiles

import (
	"time"

	"career-coach/internal/coach"
)

// Profile is a job seeker's resume summary plus its cached analysis.
// Profiles are written once and never updated.
type Profile struct {
	ID               string                `json:"id"`
	CareerSummary    string                `json:"career_summary"`
	JobRole          string                `json:"job_role"`
	TechnicalSkills  string                `json:"technical_skills"`
	ExperienceYears  int                   `json:"experience_years"`
	Analysis         *coach.CareerAnalysis `json:"analysis_result"`
	AnalysisMetadata *coach.Metadata       `json:"analysis_metadata,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// Clone returns a copy whose analysis and metadata are not shared with p.
func (p Profile) Clone() Profile {
	if p.Analysis != nil {
		analysis := p.Analysis.Clone()
		p.Analysis = &analysis
	}
	if p.AnalysisMetadata != nil {
		meta := *p.AnalysisMetadata
		p.AnalysisMetadata = &meta
	}
	return p
}

// Feedback types.
const (
	FeedbackInterviewQuality      = "interview_quality"
	FeedbackLearningPathRelevance = "learning_path_relevance"
	FeedbackOverallSatisfaction   = "overall_satisfaction"
)

type Feedback struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	FeedbackType string    `json:"feedback_type"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackStats summarises the feedback left on a profile.
type FeedbackStats struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// Insights is the usage summary returned by GET /profiles/:id/insights.
type Insights struct {
	ProfileSummary  ProfileSummary `json:"profile_summary"`
	Feedback        FeedbackStats  `json:"feedback"`
	Recommendations []string       `json:"recommendations"`
}

type ProfileSummary struct {
	CareerLevel           string `json:"career_level"`
	MarketCompetitiveness int    `json:"market_competitiveness"`
	CreatedSessions       int    `json:"created_sessions"`
	CreatedLearningPaths  int    `json:"created_learning_paths"`
}
