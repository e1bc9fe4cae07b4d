package interviews

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

func (r *PGRepo) Create(ctx context.Context, session Session) error {
	const query = `
INSERT INTO interview_sessions (
	id, profile_id, target_company_type, target_position_level,
	questions, generation_metadata, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	questions, err := json.Marshal(session.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	metadata, err := json.Marshal(session.GenerationMetadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		session.ID,
		session.ProfileID,
		session.TargetCompanyType,
		session.TargetPositionLevel,
		questions,
		metadata,
		session.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, profile_id, target_company_type, target_position_level,
       questions, generation_metadata, created_at
FROM interview_sessions
WHERE id = $1
LIMIT 1`
	var s Session
	var questions, metadata []byte
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&s.ID,
		&s.ProfileID,
		&s.TargetCompanyType,
		&s.TargetPositionLevel,
		&questions,
		&metadata,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return Session{}, fmt.Errorf("decode questions: %w", err)
	}
	if len(metadata) > 0 {
		var meta coach.Metadata
		if err := json.Unmarshal(metadata, &meta); err == nil {
			s.GenerationMetadata = meta
		}
	}
	return s, nil
}

func (r *PGRepo) CountByProfile(ctx context.Context, profileID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM interview_sessions WHERE profile_id = $1`, profileID).Scan(&n)
	return n, err
}
