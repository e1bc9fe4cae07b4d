package learningpaths

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"career-coach/internal/coach"
	"career-coach/internal/profiles"
	"career-coach/internal/shared/telemetry"
)

// ProfileSource loads a profile that already has its analysis.
type ProfileSource interface {
	GetAnalyzed(ctx context.Context, profileID string) (profiles.Profile, error)
}

// RoadmapGenerator runs the roadmap pipeline.
type RoadmapGenerator interface {
	Roadmap(ctx context.Context, req coach.RoadmapRequest) ([]coach.LearningStep, coach.Metadata, error)
}

// Service creates and reads learning paths.
type Service struct {
	Repo      Repo
	Profiles  ProfileSource
	Generator RoadmapGenerator
	Now       func() time.Time
}

type CreateInput struct {
	ProfileID      string
	TargetGoal     string
	DurationMonths int
}

// Create generates a roadmap for the profile and stores it. Out-of-range
// durations are clamped to 1-24 months; zero means the default.
func (s *Service) Create(ctx context.Context, in CreateInput) (LearningPath, error) {
	if in.TargetGoal == "" {
		in.TargetGoal = GoalSkillEnhancement
	}
	switch {
	case in.DurationMonths == 0:
		in.DurationMonths = DefaultDurationMonths
	case in.DurationMonths < MinDurationMonths:
		in.DurationMonths = MinDurationMonths
	case in.DurationMonths > MaxDurationMonths:
		in.DurationMonths = MaxDurationMonths
	}

	profile, err := s.Profiles.GetAnalyzed(ctx, in.ProfileID)
	if err != nil {
		return LearningPath{}, err
	}

	steps, meta, err := s.Generator.Roadmap(ctx, coach.RoadmapRequest{
		Analysis:        *profile.Analysis,
		TargetGoal:      in.TargetGoal,
		CareerSummary:   profile.CareerSummary,
		TechnicalSkills: profile.TechnicalSkills,
		DurationMonths:  in.DurationMonths,
	})
	if err != nil {
		return LearningPath{}, fmt.Errorf("generate roadmap: %w", err)
	}

	path := LearningPath{
		ID:                      uuid.NewString(),
		ProfileID:               profile.ID,
		TargetGoal:              in.TargetGoal,
		LearningRoadmap:         steps,
		EstimatedDurationMonths: in.DurationMonths,
		GenerationMetadata:      meta,
		CreatedAt:               s.now(),
	}
	if err := s.Repo.Create(ctx, path); err != nil {
		return LearningPath{}, fmt.Errorf("store learning path: %w", err)
	}
	telemetry.Info("learning_path.created", map[string]any{
		"learning_path_id": path.ID,
		"profile_id":       path.ProfileID,
		"target_goal":      path.TargetGoal,
		"duration_months":  path.EstimatedDurationMonths,
		"phase_count":      len(path.LearningRoadmap),
	})
	return path, nil
}

// Get returns a stored learning path. Malformed IDs are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, pathID string) (LearningPath, error) {
	if _, err := uuid.Parse(pathID); err != nil {
		return LearningPath{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, pathID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
