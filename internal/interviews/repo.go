package interviews

import "context"

// Repo defines persistence operations for interview sessions.
type Repo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, sessionID string) (Session, error)
	CountByProfile(ctx context.Context, profileID string) (int, error)
}
