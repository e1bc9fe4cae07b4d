package profiles

import (
	"context"
	"sync"
)

// MemoryRepo stores profiles and feedback in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Profile
	feedback map[string][]Feedback
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Profile),
		feedback: make(map[string][]Feedback),
	}
}

// Create stores the profile.
func (r *MemoryRepo) Create(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[profile.ID] = profile.Clone()
	return nil
}

// GetByID returns a profile by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, profileID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.byID[profileID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile.Clone(), nil
}

func (r *MemoryRepo) CreateFeedback(ctx context.Context, feedback Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[feedback.ProfileID]; !ok {
		return ErrNotFound
	}
	r.feedback[feedback.ProfileID] = append(r.feedback[feedback.ProfileID], feedback)
	return nil
}

func (r *MemoryRepo) FeedbackStats(ctx context.Context, profileID string) (FeedbackStats, error) {
	if err := ctx.Err(); err != nil {
		return FeedbackStats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.feedback[profileID]
	if len(items) == 0 {
		return FeedbackStats{}, nil
	}
	total := 0
	for _, f := range items {
		total += f.Rating
	}
	return FeedbackStats{Count: len(items), AverageRating: roundRating(float64(total) / float64(len(items)))}, nil
}
