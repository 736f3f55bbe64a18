package application

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/progression"
	repo "github.com/moviebazar/account-service/internal/domain/repository"
	"github.com/moviebazar/account-service/pkg/helpers"
)

// ActionKind names a point-earning action.
type ActionKind string

const (
	ActionView     ActionKind = "view"
	ActionReaction ActionKind = "reaction"
	ActionComment  ActionKind = "comment"
	ActionShare    ActionKind = "share"
	ActionDownload ActionKind = "download"
	ActionFavorite ActionKind = "favorite"
)

// ActionPayload carries the per-kind fields of a recorded action.
type ActionPayload struct {
	MovieID      string
	ReactionType string
	Platform     string
	Quality      string
	Text         string
}

// ActionResult is the outcome of one recorded action. A capped or duplicate
// action is not an error: Accepted is false, Points is zero and Reason says
// why.
type ActionResult struct {
	Points    int
	Accepted  bool
	Reason    string
	ViewsLeft int // meaningful for view actions only
	Favorited bool
	User      *entity.User
}

// ProgressView is the response of a level-progress query.
type ProgressView struct {
	CurrentLevel    progression.Level  `json:"currentLevel"`
	NextLevel       *progression.Level `json:"nextLevel,omitempty"`
	Percent         float64            `json:"progress"`
	UnlockedAvatars []string           `json:"unlockedAvatars"`
	TotalPoints     int                `json:"totalPoints"`
}

// LeaderboardEntry is the projection ranked by points.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Level    int    `json:"level"`
	Avatar   string `json:"avatar"`
}

const leaderboardCacheTTL = 30 * time.Second

// ProgressionService is the only writer of the user store and activity
// ledger. Every action funnels through one admission check here before any
// state changes.
type ProgressionService struct {
	Users      repo.UserRepository
	Activities repo.ActivityRepository
	Redis      *redis.Client
	Logger     *logrus.Logger

	// Now is injectable for calendar-day logic in tests.
	Now func() time.Time

	notify func()
}

func NewProgressionService(users repo.UserRepository, activities repo.ActivityRepository, rdb *redis.Client, logger *logrus.Logger) *ProgressionService {
	return &ProgressionService{
		Users:      users,
		Activities: activities,
		Redis:      rdb,
		Logger:     logger,
		Now:        time.Now,
	}
}

// OnMutation registers a hook invoked after every successful mutation,
// used to schedule a debounced snapshot save.
func (s *ProgressionService) OnMutation(fn func()) { s.notify = fn }

func calendarDay(t time.Time) string { return t.Format("2006-01-02") }

// RecordAction validates and applies one action for the user, returning the
// points earned and the refreshed user view.
func (s *ProgressionService) RecordAction(userID string, kind ActionKind, p ActionPayload) (*ActionResult, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	a := s.activityFor(userID)

	res := &ActionResult{Accepted: true, User: u}
	var pts int

	switch kind {
	case ActionView:
		today := calendarDay(s.Now())
		used := a.ViewsOn(today)
		if used >= progression.MaxDailyViews {
			res.Accepted = false
			res.Reason = "daily view limit reached"
			res.ViewsLeft = 0
			return res, nil
		}
		a.MovieViews = append(a.MovieViews, entity.MovieView{MovieID: p.MovieID, Day: today})
		pts = progression.ViewPoints
		res.ViewsLeft = progression.MaxDailyViews - used - 1

	case ActionReaction:
		if a.HasReacted(p.MovieID) {
			res.Accepted = false
			res.Reason = "already reacted to this movie"
			return res, nil
		}
		pts = progression.ReactionPoints(p.ReactionType)
		a.Reactions = append(a.Reactions, entity.Reaction{MovieID: p.MovieID, Type: p.ReactionType, Points: pts})

	case ActionComment:
		var words int
		pts, words = progression.CommentPoints(p.Text)
		a.Comments = append(a.Comments, entity.Comment{
			ID:        uuid.NewString(),
			MovieID:   p.MovieID,
			Text:      p.Text,
			WordCount: words,
			Points:    pts,
		})

	case ActionShare:
		pts = progression.SharePoints(p.Platform)
		a.Shares = append(a.Shares, entity.Share{MovieID: p.MovieID, Platform: p.Platform})

	case ActionDownload:
		pts = progression.DownloadPoints(p.Quality)
		u.DownloadHistory = append(u.DownloadHistory, entity.Download{
			MovieID:    p.MovieID,
			Quality:    p.Quality,
			Downloaded: s.Now(),
		})

	case ActionFavorite:
		if u.HasFavorite(p.MovieID) {
			u.RemoveFavorite(p.MovieID)
			pts = -progression.FavoritePoints
		} else {
			u.Favorites = append(u.Favorites, p.MovieID)
			pts = progression.FavoritePoints
			res.Favorited = true
		}

	default:
		return nil, errors.New("unknown action: " + string(kind))
	}

	s.apply(u, a, pts)
	res.Points = pts
	res.User = u
	return res, nil
}

// RecordDailyLogin grants the streak-tiered login reward, at most once per
// calendar day. The streak grows only when the previous recorded day is
// exactly yesterday; any gap resets it to 1.
func (s *ProgressionService) RecordDailyLogin(userID string) (*ActionResult, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	a := s.activityFor(userID)

	now := s.Now()
	today := calendarDay(now)
	if a.LastLoginDay == today {
		return &ActionResult{Accepted: false, Reason: "daily bonus already claimed", User: u}, nil
	}

	if a.LastLoginDay == calendarDay(now.AddDate(0, 0, -1)) {
		a.LoginStreak++
	} else {
		a.LoginStreak = 1
	}
	a.LastLoginDay = today

	pts := progression.LoginBonus(a.LoginStreak)
	s.apply(u, a, pts)
	return &ActionResult{Accepted: true, Points: pts, User: u}, nil
}

// ChangeAvatar switches the user's avatar. The target must exist in the
// level table and already be unlocked. The first-ever selection of an avatar
// grants a one-time bonus tracked through avatar history.
func (s *ProgressionService) ChangeAvatar(userID, avatarID string) (*entity.User, int, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, 0, ErrUserNotFound
	}
	if !progression.AvatarKnown(avatarID) {
		return nil, 0, ErrAvatarNotFound
	}
	if !u.HasUnlocked(avatarID) {
		return nil, 0, ErrAvatarLocked
	}

	pts := 0
	if !u.HasSelected(avatarID) {
		pts = progression.FirstAvatarPoints
		u.AvatarHistory = append(u.AvatarHistory, avatarID)
	}
	u.CurrentAvatar = avatarID

	a := s.activityFor(userID)
	s.apply(u, a, pts)
	return u, pts, nil
}

// Progress reports the user's level, unlocks and progress toward the next
// tier.
func (s *ProgressionService) Progress(userID string) (*ProgressView, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	current, next, pct := progression.Progress(u.Points)
	return &ProgressView{
		CurrentLevel:    current,
		NextLevel:       next,
		Percent:         pct,
		UnlockedAvatars: u.UnlockedAvatars,
		TotalPoints:     u.Points,
	}, nil
}

// Leaderboard returns the top n users by points. Ties keep insertion order.
// Results are cached briefly in redis when available.
func (s *ProgressionService) Leaderboard(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	cacheKey := "leaderboard:top:" + strconv.Itoa(n)
	if s.Redis != nil {
		var cached []LeaderboardEntry
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	users, err := s.Users.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].Points > users[j].Points })
	if n > len(users) {
		n = len(users)
	}

	entries := make([]LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		u := users[i]
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			Username: u.Username,
			Points:   u.Points,
			Level:    u.Level,
			Avatar:   u.CurrentAvatar,
		})
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, cacheKey, entries, leaderboardCacheTTL); err != nil {
			s.Logger.WithError(err).Warn("leaderboard cache write failed")
		}
	}
	return entries, nil
}

// activityFor returns the user's ledger entry, creating it lazily.
func (s *ProgressionService) activityFor(userID string) *entity.UserActivity {
	a, err := s.Activities.Get(userID)
	if err != nil {
		return &entity.UserActivity{UserID: userID}
	}
	return a
}

// apply adds the earned points, re-derives level, unlocks and badges, and
// persists both records. Unlocks and badges only ever grow, even when points
// drop. Store failures are logged, never surfaced: the in-memory mutation
// already happened and persistence is best effort.
func (s *ProgressionService) apply(u *entity.User, a *entity.UserActivity, pts int) {
	u.Points += pts
	prevLevel := u.Level

	lvl := progression.LevelFor(u.Points)
	u.Level = lvl.Level
	for _, av := range progression.UnlockedAvatars(u.Points) {
		if !u.HasUnlocked(av) {
			u.UnlockedAvatars = append(u.UnlockedAvatars, av)
		}
	}
	if u.Level > prevLevel {
		for l := prevLevel + 1; l <= u.Level; l++ {
			if badge, ok := progression.LevelBadges[l]; ok && !u.HasBadge(badge) {
				u.Badges = append(u.Badges, badge)
			}
		}
		s.Logger.WithFields(logrus.Fields{
			"user_id": u.ID,
			"level":   u.Level,
			"points":  u.Points,
		}).Info("level up")
	}
	u.UpdatedAt = s.Now()

	if pts > 0 {
		a.TotalEarned += pts
	}
	a.UpdatedAt = s.Now()

	if err := s.Users.Update(u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("user store update failed")
	}
	if err := s.Activities.Put(a); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("activity store update failed")
	}
	if s.notify != nil {
		s.notify()
	}
}
