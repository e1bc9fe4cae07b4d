package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"career-coach/internal/coach"
)

// PGRepo implements Repo and FeedbackRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new profile together with its analysis.
func (r *PGRepo) Create(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO resume_profiles (
	id, career_summary, job_role, technical_skills, experience_years,
	analysis_result, analysis_metadata, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var analysisPayload []byte
	if profile.Analysis != nil {
		payload, err := json.Marshal(profile.Analysis)
		if err != nil {
			return err
		}
		analysisPayload = payload
	}
	metadataPayload := []byte("{}")
	if profile.AnalysisMetadata != nil {
		payload, err := json.Marshal(profile.AnalysisMetadata)
		if err != nil {
			return err
		}
		metadataPayload = payload
	}
	_, err := r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.CareerSummary,
		profile.JobRole,
		profile.TechnicalSkills,
		profile.ExperienceYears,
		nullableJSON(analysisPayload),
		metadataPayload,
		profile.CreatedAt,
	)
	return err
}

// GetByID returns a profile by ID, reconstructing its analysis.
func (r *PGRepo) GetByID(ctx context.Context, profileID string) (Profile, error) {
	const query = `
SELECT id, career_summary, job_role, technical_skills, experience_years,
       analysis_result, analysis_metadata, created_at
FROM resume_profiles
WHERE id = $1
LIMIT 1`
	var p Profile
	var analysisResult sql.NullString
	var analysisMetadata sql.NullString
	err := r.DB.QueryRowContext(ctx, query, profileID).Scan(
		&p.ID,
		&p.CareerSummary,
		&p.JobRole,
		&p.TechnicalSkills,
		&p.ExperienceYears,
		&analysisResult,
		&analysisMetadata,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if analysisResult.Valid && analysisResult.String != "" && analysisResult.String != "null" {
		analysis, err := coach.DecodeAnalysis([]byte(analysisResult.String))
		if err != nil {
			return Profile{}, err
		}
		p.Analysis = &analysis
	}
	if analysisMetadata.Valid && analysisMetadata.String != "{}" {
		var meta coach.Metadata
		if err := json.Unmarshal([]byte(analysisMetadata.String), &meta); err == nil {
			p.AnalysisMetadata = &meta
		}
	}
	return p, nil
}

func (r *PGRepo) CreateFeedback(ctx context.Context, feedback Feedback) error {
	const query = `
INSERT INTO user_feedbacks (id, profile_id, feedback_type, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		feedback.ID,
		feedback.ProfileID,
		feedback.FeedbackType,
		feedback.Rating,
		feedback.Comment,
		feedback.CreatedAt,
	)
	return err
}

func (r *PGRepo) FeedbackStats(ctx context.Context, profileID string) (FeedbackStats, error) {
	const query = `
SELECT COUNT(*), COALESCE(AVG(rating), 0)::float8
FROM user_feedbacks
WHERE profile_id = $1`
	var stats FeedbackStats
	if err := r.DB.QueryRowContext(ctx, query, profileID).Scan(&stats.Count, &stats.AverageRating); err != nil {
		return FeedbackStats{}, err
	}
	stats.AverageRating = roundRating(stats.AverageRating)
	return stats, nil
}

func nullableJSON(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	return payload
}
