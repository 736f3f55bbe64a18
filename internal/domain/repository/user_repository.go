package repository

import (
	"errors"

	"github.com/moviebazar/account-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups when no record matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by Create when a unique field is taken.
	ErrConflict = errors.New("already exists")
)

// UserRepository defines the store interface for user records. Lookups are
// exact-match. List returns users in insertion order, which the leaderboard
// relies on as a stable tiebreak.
//
// There is deliberately no partial-update surface: all mutation flows through
// the progression service, which keeps the derived fields consistent.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(u *entity.User) error
}
