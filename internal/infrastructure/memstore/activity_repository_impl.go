package memstore

import (
	"sync"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/repository"
)

// ActivityRepository is the in-memory activity ledger, keyed by user id.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries map[string]*entity.UserActivity
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{entries: make(map[string]*entity.UserActivity)}
}

func (r *ActivityRepository) Get(userID string) (*entity.UserActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.entries[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneActivity(a), nil
}

func (r *ActivityRepository) Put(a *entity.UserActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[a.UserID] = cloneActivity(a)
	return nil
}

func (r *ActivityRepository) All() (map[string]*entity.UserActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*entity.UserActivity, len(r.entries))
	for id, a := range r.entries {
		out[id] = cloneActivity(a)
	}
	return out, nil
}

// Restore replaces the ledger contents from a snapshot.
func (r *ActivityRepository) Restore(entries map[string]*entity.UserActivity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entity.UserActivity, len(entries))
	for id, a := range entries {
		r.entries[id] = cloneActivity(a)
	}
}

func cloneActivity(a *entity.UserActivity) *entity.UserActivity {
	c := *a
	c.MovieViews = append([]entity.MovieView(nil), a.MovieViews...)
	c.Reactions = append([]entity.Reaction(nil), a.Reactions...)
	c.Comments = append([]entity.Comment(nil), a.Comments...)
	c.Shares = append([]entity.Share(nil), a.Shares...)
	return &c
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
