package interviews

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

// QuestionGenerator runs the interview question pipeline.
type QuestionGenerator interface {
	Questions(ctx context.Context, req coach.QuestionsRequest) ([]coach.InterviewQuestion, coach.Metadata, error)
}

// Service creates and reads interview sessions.
type Service struct {
	Repo      Repo
	Profiles  ProfileSource
	Generator QuestionGenerator
	Now       func() time.Time
}

type CreateInput struct {
	ProfileID           string
	TargetCompanyType   string
	TargetPositionLevel string
}

// Create generates five questions for the profile and stores the session.
// Profiles without an analysis are rejected with profiles.ErrAnalysisRequired.
func (s *Service) Create(ctx context.Context, in CreateInput) (Session, error) {
	if in.TargetCompanyType == "" {
		in.TargetCompanyType = CompanyStartup
	}
	if in.TargetPositionLevel == "" {
		in.TargetPositionLevel = LevelJunior
	}

	profile, err := s.Profiles.GetAnalyzed(ctx, in.ProfileID)
	if err != nil {
		return Session{}, err
	}

	questions, meta, err := s.Generator.Questions(ctx, coach.QuestionsRequest{
		Analysis:        *profile.Analysis,
		CompanyType:     in.TargetCompanyType,
		PositionLevel:   in.TargetPositionLevel,
		CareerSummary:   profile.CareerSummary,
		TechnicalSkills: profile.TechnicalSkills,
	})
	if err != nil {
		return Session{}, fmt.Errorf("generate questions: %w", err)
	}

	session := Session{
		ID:                  uuid.NewString(),
		ProfileID:           profile.ID,
		TargetCompanyType:   in.TargetCompanyType,
		TargetPositionLevel: in.TargetPositionLevel,
		Questions:           questions,
		GenerationMetadata:  meta,
		CreatedAt:           s.now(),
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, fmt.Errorf("store interview session: %w", err)
	}
	telemetry.Info("interview_session.created", map[string]any{
		"session_id":     session.ID,
		"profile_id":     session.ProfileID,
		"company_type":   session.TargetCompanyType,
		"position_level": session.TargetPositionLevel,
		"question_count": len(session.Questions),
	})
	return session, nil
}

// Get returns a stored session. Malformed IDs are reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, sessionID string) (Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return Session{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, sessionID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
