package entity

import (
	"time"
)

// User is the aggregate root for the account domain. Passwords are stored as
// bcrypt hashes in Password. Points may go negative: removing a favorite
// deducts the points the add granted, with no floor (observed product
// behavior, kept on purpose).
//
// Level, Badges and UnlockedAvatars are derived from Points and are
// recomputed by the progression service on every point-changing event.
type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Password        string     `json:"-"`
	Points          int        `json:"points"`
	Level           int        `json:"level"`
	Badges          []string   `json:"badges"`
	UnlockedAvatars []string   `json:"unlockedAvatars"`
	CurrentAvatar   string     `json:"avatar"`
	AvatarHistory   []string   `json:"avatarHistory"`
	Favorites       []string   `json:"favorites"`
	DownloadHistory []Download `json:"downloadHistory"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Download is one entry in a user's append-only download history.
type Download struct {
	MovieID    string    `json:"movieId"`
	Quality    string    `json:"quality"`
	Downloaded time.Time `json:"downloadedAt"`
}

// HasBadge reports whether the badge was already awarded.
func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// HasUnlocked reports whether the avatar is in the unlocked set.
func (u *User) HasUnlocked(avatar string) bool {
	for _, a := range u.UnlockedAvatars {
		if a == avatar {
			return true
		}
	}
	return false
}

// HasSelected reports whether the avatar was ever selected by this user.
func (u *User) HasSelected(avatar string) bool {
	for _, a := range u.AvatarHistory {
		if a == avatar {
			return true
		}
	}
	return false
}

// HasFavorite reports whether the movie is currently favorited.
func (u *User) HasFavorite(movieID string) bool {
	for _, m := range u.Favorites {
		if m == movieID {
			return true
		}
	}
	return false
}

// RemoveFavorite drops the movie from the favorites set.
func (u *User) RemoveFavorite(movieID string) {
	out := u.Favorites[:0]
	for _, m := range u.Favorites {
		if m != movieID {
			out = append(out, m)
		}
	}
	u.Favorites = out
}
