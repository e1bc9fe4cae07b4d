package learningpaths

import (
	"context"
	"sync"
)

// MemoryRepo stores learning paths in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]LearningPath
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]LearningPath)}
}

func (r *MemoryRepo) Create(ctx context.Context, path LearningPath) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[path.ID] = path
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, pathID string) (LearningPath, error) {
	if err := ctx.Err(); err != nil {
		return LearningPath{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.byID[pathID]
	if !ok {
		return LearningPath{}, ErrNotFound
	}
	return path, nil
}

func (r *MemoryRepo) CountByProfile(ctx context.Context, profileID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.byID {
		if p.ProfileID == profileID {
			n++
		}
	}
	return n, nil
}
