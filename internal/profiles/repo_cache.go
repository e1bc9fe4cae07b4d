package profiles

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 512

// CachedRepo is a read-through LRU in front of a Repo. Profiles are immutable
// once written, so entries never need invalidation. Entries are cloned on the
// way in and out so callers cannot alter what is cached.
type CachedRepo struct {
	Repo
	cache *lru.Cache[string, Profile]
}

// NewCachedRepo wraps base with an LRU of the given size.
func NewCachedRepo(base Repo, size int) (*CachedRepo, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, Profile](size)
	if err != nil {
		return nil, err
	}
	return &CachedRepo{Repo: base, cache: cache}, nil
}

func (r *CachedRepo) Create(ctx context.Context, profile Profile) error {
	if err := r.Repo.Create(ctx, profile); err != nil {
		return err
	}
	r.cache.Add(profile.ID, profile.Clone())
	return nil
}

func (r *CachedRepo) GetByID(ctx context.Context, profileID string) (Profile, error) {
	if profile, ok := r.cache.Get(profileID); ok {
		return profile.Clone(), nil
	}
	profile, err := r.Repo.GetByID(ctx, profileID)
	if err != nil {
		return Profile{}, err
	}
	r.cache.Add(profileID, profile.Clone())
	return profile, nil
}

// Len reports the number of cached profiles.
func (r *CachedRepo) Len() int {
	return r.cache.Len()
}
