package learningpaths

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"career-coach/internal/coach"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, path LearningPath) error {
	const query = `
INSERT INTO learning_paths (
	id, profile_id, target_goal, learning_roadmap,
	estimated_duration_months, generation_metadata, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	roadmap, err := json.Marshal(path.LearningRoadmap)
	if err != nil {
		return fmt.Errorf("encode roadmap: %w", err)
	}
	metadata, err := json.Marshal(path.GenerationMetadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		path.ID,
		path.ProfileID,
		path.TargetGoal,
		roadmap,
		path.EstimatedDurationMonths,
		metadata,
		path.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, pathID string) (LearningPath, error) {
	const query = `
SELECT id, profile_id, target_goal, learning_roadmap,
       estimated_duration_months, generation_metadata, created_at
FROM learning_paths
WHERE id = $1
LIMIT 1`
	var p LearningPath
	var roadmap, metadata []byte
	err := r.DB.QueryRowContext(ctx, query, pathID).Scan(
		&p.ID,
		&p.ProfileID,
		&p.TargetGoal,
		&roadmap,
		&p.EstimatedDurationMonths,
		&metadata,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LearningPath{}, ErrNotFound
		}
		return LearningPath{}, err
	}
	if err := json.Unmarshal(roadmap, &p.LearningRoadmap); err != nil {
		return LearningPath{}, fmt.Errorf("decode roadmap: %w", err)
	}
	if len(metadata) > 0 {
		var meta coach.Metadata
		if err := json.Unmarshal(metadata, &meta); err == nil {
			p.GenerationMetadata = meta
		}
	}
	return p, nil
}

func (r *PGRepo) CountByProfile(ctx context.Context, profileID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM learning_paths WHERE profile_id = $1`, profileID).Scan(&n)
	return n, err
}
