package memstore

import (
	"sync"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/repository"
)

// UserRepository is the in-memory user store. Email and username indexes are
// exact-match. Insertion order is preserved for List, which the leaderboard
// uses as a stable tiebreak.
//
// Lookups return copies; mutation only lands through Update. A single RWMutex
// guards the maps because Gin serves requests concurrently.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*entity.User
	byEmail    map[string]string
	byUsername map[string]string
	order      []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[string]*entity.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *UserRepository) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrConflict
	}
	if _, ok := r.byUsername[u.Username]; ok {
		return repository.ErrConflict
	}
	stored := cloneUser(u)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	r.byUsername[stored.Username] = stored.ID
	r.order = append(r.order, stored.ID)
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) List() ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

func (r *UserRepository) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// Email and username are immutable after signup; keep indexes aligned
	// anyway in case that ever changes.
	if prev.Email != u.Email {
		delete(r.byEmail, prev.Email)
		r.byEmail[u.Email] = u.ID
	}
	if prev.Username != u.Username {
		delete(r.byUsername, prev.Username)
		r.byUsername[u.Username] = u.ID
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

// SnapshotUsers returns all users in insertion order for persistence.
func (r *UserRepository) SnapshotUsers() []*entity.User {
	users, _ := r.List()
	return users
}

// Restore replaces the store contents from a snapshot, keeping slice order
// as insertion order.
func (r *UserRepository) Restore(users []*entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*entity.User, len(users))
	r.byEmail = make(map[string]string, len(users))
	r.byUsername = make(map[string]string, len(users))
	r.order = r.order[:0]
	for _, u := range users {
		stored := cloneUser(u)
		r.byID[stored.ID] = stored
		r.byEmail[stored.Email] = stored.ID
		r.byUsername[stored.Username] = stored.ID
		r.order = append(r.order, stored.ID)
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Badges = append([]string(nil), u.Badges...)
	c.UnlockedAvatars = append([]string(nil), u.UnlockedAvatars...)
	c.AvatarHistory = append([]string(nil), u.AvatarHistory...)
	c.Favorites = append([]string(nil), u.Favorites...)
	c.DownloadHistory = append([]entity.Download(nil), u.DownloadHistory...)
	return &c
}

var _ repository.UserRepository = (*UserRepository)(nil)
