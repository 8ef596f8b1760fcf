package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// FavoriteSet mirrors the signed-in user's favorited job IDs locally so the
// UI can render heart state without a round trip per card. Toggles mutate
// the set optimistically; a failed call invalidates the whole set and the
// next read refetches the authoritative list instead of trusting stale
// optimistic state.
type FavoriteSet struct {
	client *Client

	mu     sync.Mutex
	ids    map[string]struct{}
	loaded bool
}

func NewFavoriteSet(c *Client) *FavoriteSet {
	return &FavoriteSet{client: c, ids: make(map[string]struct{})}
}

// Load fetches the full favorites list and rebuilds the ID set. Called on
// sign-in, on page load, and after an invalidation.
func (s *FavoriteSet) Load(ctx context.Context) error {
	favs, err := s.client.ListAllFavorites(ctx)
	if err != nil {
		return err
	}

	ids := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		ids[f.JobID] = struct{}{}
	}

	s.mu.Lock()
	s.ids = ids
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *FavoriteSet) IsFavorite(ctx context.Context, jobID string) (bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	s.mu.Lock()
	_, ok := s.ids[jobID]
	s.mu.Unlock()
	return ok, nil
}

func (s *FavoriteSet) Count(ctx context.Context) (int, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	s.mu.Lock()
	n := len(s.ids)
	s.mu.Unlock()
	return n, nil
}

// Add puts the job in the local set first, then persists. A conflict means
// the server already holds the entry, which is exactly the optimistic
// state, so it is not a failure. Any other error invalidates the set.
func (s *FavoriteSet) Add(ctx context.Context, j FavoriteJob) error {
	if !s.client.SignedIn() {
		return ErrNotSignedIn
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.ids[j.JobID] = struct{}{}
	s.mu.Unlock()

	err := s.client.AddFavorite(ctx, j)
	if err == nil || isStatus(err, http.StatusConflict) {
		return nil
	}
	s.Invalidate()
	return err
}

// Remove drops the job from the local set first, then persists. A not-found
// means the server already lacks the entry; anything else invalidates.
func (s *FavoriteSet) Remove(ctx context.Context, jobID string) error {
	if !s.client.SignedIn() {
		return ErrNotSignedIn
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.ids, jobID)
	s.mu.Unlock()

	err := s.client.RemoveFavorite(ctx, jobID)
	if err == nil || isStatus(err, http.StatusNotFound) {
		return nil
	}
	s.Invalidate()
	return err
}

// Invalidate discards the local set; the next read reloads from the server.
func (s *FavoriteSet) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.ids = make(map[string]struct{})
	s.mu.Unlock()
}

func (s *FavoriteSet) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Load(ctx)
}

func isStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
