package entity

import "time"

// UserActivity is the per-user activity ledger. One entry exists per user,
// created lazily on first activity. It backs the anti-abuse checks (daily
// view cap, one reaction per movie) and the login streak.
//
// TotalEarned is a running counter of points granted through the ledger; it
// is reporting-only and independent of User.Points (which favorites can
// decrement).
type UserActivity struct {
	UserID       string      `json:"userId"`
	LastLoginDay string      `json:"lastLoginDay"` // calendar day, YYYY-MM-DD
	LoginStreak  int         `json:"loginStreak"`
	MovieViews   []MovieView `json:"movieViews"`
	Reactions    []Reaction  `json:"reactions"`
	Comments     []Comment   `json:"comments"`
	Shares       []Share     `json:"shares"`
	TotalEarned  int         `json:"totalPointsEarned"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

type MovieView struct {
	MovieID string `json:"movieId"`
	Day     string `json:"day"` // calendar day, YYYY-MM-DD
}

type Reaction struct {
	MovieID string `json:"movieId"`
	Type    string `json:"type"`
	Points  int    `json:"pointsEarned"`
}

type Comment struct {
	ID        string `json:"id"`
	MovieID   string `json:"movieId"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
	Points    int    `json:"pointsEarned"`
}

type Share struct {
	MovieID  string `json:"movieId"`
	Platform string `json:"platform"`
}

// ViewsOn counts recorded views for the given calendar day.
func (a *UserActivity) ViewsOn(day string) int {
	n := 0
	for _, v := range a.MovieViews {
		if v.Day == day {
			n++
		}
	}
	return n
}

// HasReacted reports whether the user already reacted to the movie.
func (a *UserActivity) HasReacted(movieID string) bool {
	for _, r := range a.Reactions {
		if r.MovieID == movieID {
			return true
		}
	}
	return false
}
