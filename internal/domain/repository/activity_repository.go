package repository

import "github.com/moviebazar/account-service/internal/domain/entity"

// ActivityRepository stores the per-user activity ledger, keyed by user id.
// Get returns ErrNotFound for users with no recorded activity yet; callers
// create the entry lazily.
type ActivityRepository interface {
	Get(userID string) (*entity.UserActivity, error)
	Put(a *entity.UserActivity) error
	All() (map[string]*entity.UserActivity, error)
}
