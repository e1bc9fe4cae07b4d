package profiles

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"career-coach/internal/coach"
	"career-coach/internal/shared/telemetry"
)

// Analyzer runs the analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, req coach.AnalysisRequest) (coach.CareerAnalysis, coach.Metadata, error)
}

// Service coordinates profile creation, lookups and insights.
type Service struct {
	Repo     Repo
	Feedback FeedbackRepo
	Analyzer Analyzer
	Sessions Counter
	Paths    Counter
	Now      func() time.Time
}

// CreateInput holds validated profile fields.
type CreateInput struct {
	CareerSummary   string
	JobRole         string
	TechnicalSkills string
	ExperienceYears int
}

type FeedbackInput struct {
	FeedbackType string
	Rating       int
	Comment      string
}

var defaultRecommendations = []string{
	"Refresh interview questions regularly",
	"Check progress against the learning path",
	"Reflect new technology trends in your skills",
}

// Create runs the analysis and stores the profile with it. A gateway failure
// is returned as is and nothing is stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (Profile, error) {
	in.CareerSummary = strings.TrimSpace(in.CareerSummary)
	in.JobRole = strings.TrimSpace(in.JobRole)
	in.TechnicalSkills = strings.TrimSpace(in.TechnicalSkills)

	analysis, meta, err := s.Analyzer.Analyze(ctx, coach.AnalysisRequest{
		CareerSummary:   in.CareerSummary,
		JobRole:         in.JobRole,
		TechnicalSkills: in.TechnicalSkills,
		ExperienceYears: in.ExperienceYears,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("analyze profile: %w", err)
	}

	profile := Profile{
		ID:               uuid.NewString(),
		CareerSummary:    in.CareerSummary,
		JobRole:          in.JobRole,
		TechnicalSkills:  in.TechnicalSkills,
		ExperienceYears:  in.ExperienceYears,
		Analysis:         &analysis,
		AnalysisMetadata: &meta,
		CreatedAt:        s.now(),
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("store profile: %w", err)
	}
	telemetry.Info("profile.created", map[string]any{
		"profile_id":             profile.ID,
		"career_level":           analysis.CareerLevel,
		"market_competitiveness": analysis.MarketCompetitiveness,
	})
	return profile, nil
}

// Get returns a profile. Malformed IDs are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, profileID string) (Profile, error) {
	if _, err := uuid.Parse(profileID); err != nil {
		return Profile{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, profileID)
}

// GetAnalyzed returns a profile that has a stored analysis.
func (s *Service) GetAnalyzed(ctx context.Context, profileID string) (Profile, error) {
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return Profile{}, err
	}
	if profile.Analysis == nil {
		return Profile{}, ErrAnalysisRequired
	}
	return profile, nil
}

// Insights summarises a profile with counts of what was generated from it.
func (s *Service) Insights(ctx context.Context, profileID string) (Insights, error) {
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return Insights{}, err
	}

	var sessions, paths int
	var feedback FeedbackStats
	g, gctx := errgroup.WithContext(ctx)
	if s.Sessions != nil {
		g.Go(func() error {
			n, err := s.Sessions.CountByProfile(gctx, profileID)
			if err != nil {
				return fmt.Errorf("count interview sessions: %w", err)
			}
			sessions = n
			return nil
		})
	}
	if s.Paths != nil {
		g.Go(func() error {
			n, err := s.Paths.CountByProfile(gctx, profileID)
			if err != nil {
				return fmt.Errorf("count learning paths: %w", err)
			}
			paths = n
			return nil
		})
	}
	if s.Feedback != nil {
		g.Go(func() error {
			stats, err := s.Feedback.FeedbackStats(gctx, profileID)
			if err != nil {
				return fmt.Errorf("feedback stats: %w", err)
			}
			feedback = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Insights{}, err
	}

	summary := ProfileSummary{
		CareerLevel:          "analysis required",
		CreatedSessions:      sessions,
		CreatedLearningPaths: paths,
	}
	if profile.Analysis != nil {
		summary.CareerLevel = profile.Analysis.CareerLevel
		summary.MarketCompetitiveness = profile.Analysis.MarketCompetitiveness
	}
	recs := make([]string, len(defaultRecommendations))
	copy(recs, defaultRecommendations)
	return Insights{ProfileSummary: summary, Feedback: feedback, Recommendations: recs}, nil
}

// AddFeedback records feedback on an existing profile.
func (s *Service) AddFeedback(ctx context.Context, profileID string, in FeedbackInput) (Feedback, error) {
	if _, err := s.Get(ctx, profileID); err != nil {
		return Feedback{}, err
	}
	feedback := Feedback{
		ID:           uuid.NewString(),
		ProfileID:    profileID,
		FeedbackType: in.FeedbackType,
		Rating:       in.Rating,
		Comment:      strings.TrimSpace(in.Comment),
		CreatedAt:    s.now(),
	}
	if err := s.Feedback.CreateFeedback(ctx, feedback); err != nil {
		return Feedback{}, fmt.Errorf("store feedback: %w", err)
	}
	return feedback, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
