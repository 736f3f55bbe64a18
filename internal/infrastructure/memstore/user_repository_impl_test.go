package memstore

import (
	"errors"
	"testing"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/repository"
)

func user(id, username, email string) *entity.User {
	return &entity.User{ID: id, Username: username, Email: email, Favorites: []string{"m1"}}
}

func TestUserRepositoryCreateAndLookups(t *testing.T) {
	r := NewUserRepository()
	if err := r.Create(user("1", "alice", "alice@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name   string
		lookup func() (*entity.User, error)
		found  bool
	}{
		{name: "by id", lookup: func() (*entity.User, error) { return r.GetByID("1") }, found: true},
		{name: "by email", lookup: func() (*entity.User, error) { return r.GetByEmail("alice@example.com") }, found: true},
		{name: "by username", lookup: func() (*entity.User, error) { return r.GetByUsername("alice") }, found: true},
		{name: "missing id", lookup: func() (*entity.User, error) { return r.GetByID("2") }},
		{name: "email is exact match", lookup: func() (*entity.User, error) { return r.GetByEmail("ALICE@example.com") }},
		{name: "username is exact match", lookup: func() (*entity.User, error) { return r.GetByUsername("Alice") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := tt.lookup()
			if tt.found {
				if err != nil || u.ID != "1" {
					t.Fatalf("got %v, %v", u, err)
				}
			} else if !errors.Is(err, repository.ErrNotFound) {
				t.Fatalf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestUserRepositoryCreateConflicts(t *testing.T) {
	r := NewUserRepository()
	if err := r.Create(user("1", "alice", "alice@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Create(user("2", "bob", "alice@example.com")); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("email conflict: err = %v", err)
	}
	if err := r.Create(user("2", "alice", "bob@example.com")); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("username conflict: err = %v", err)
	}
}

func TestUserRepositoryLookupsReturnCopies(t *testing.T) {
	r := NewUserRepository()
	if err := r.Create(user("1", "alice", "alice@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, _ := r.GetByID("1")
	u.Points = 999
	u.Favorites = append(u.Favorites, "m2")

	fresh, _ := r.GetByID("1")
	if fresh.Points != 0 || len(fresh.Favorites) != 1 {
		t.Fatalf("mutation leaked into the store: %+v", fresh)
	}

	// mutation lands only through Update
	u.Points = 5
	if err := r.Update(u); err != nil {
		t.Fatalf("update: %v", err)
	}
	fresh, _ = r.GetByID("1")
	if fresh.Points != 5 {
		t.Fatalf("update not applied: %+v", fresh)
	}
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	r := NewUserRepository()
	if err := r.Update(user("1", "alice", "alice@example.com")); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserRepositoryListKeepsInsertionOrder(t *testing.T) {
	r := NewUserRepository()
	for _, id := range []string{"c", "a", "b"} {
		if err := r.Create(user(id, "user-"+id, id+"@example.com")); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	users, err := r.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := []string{users[0].ID, users[1].ID, users[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestUserRepositoryRestore(t *testing.T) {
	r := NewUserRepository()
	if err := r.Create(user("old", "old", "old@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	r.Restore([]*entity.User{
		user("1", "alice", "alice@example.com"),
		user("2", "bob", "bob@example.com"),
	})

	if _, err := r.GetByID("old"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("pre-restore user survived: err = %v", err)
	}
	if _, err := r.GetByUsername("bob"); err != nil {
		t.Fatalf("restored user missing: %v", err)
	}
	users, _ := r.List()
	if len(users) != 2 || users[0].ID != "1" {
		t.Fatalf("restored list: %+v", users)
	}
}
