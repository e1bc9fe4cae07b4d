package learningpaths

import "context"

// Repo defines persistence operations for learning paths.
type Repo interface {
	Create(ctx context.Context, path LearningPath) error
	GetByID(ctx context.Context, pathID string) (LearningPath, error)
	CountByProfile(ctx context.Context, profileID string) (int, error)
}
