package profiles

import "context"

// Repo defines persistence operations for profiles.
type Repo interface {
	Create(ctx context.Context, profile Profile) error
	GetByID(ctx context.Context, profileID string) (Profile, error)
}

// FeedbackRepo stores feedback left on profiles.
type FeedbackRepo interface {
	CreateFeedback(ctx context.Context, feedback Feedback) error
	FeedbackStats(ctx context.Context, profileID string) (FeedbackStats, error)
}

// Counter counts records generated for a profile (interview sessions, learning paths).
type Counter interface {
	CountByProfile(ctx context.Context, profileID string) (int, error)
}
