package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/repository"
)

// ActivityRepository is the pgx-backed activity ledger, one row per user.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityColumns = `user_id, last_login_day, login_streak, movie_views,
	reactions, comments, shares, total_earned, updated_at`

func (r *ActivityRepository) Get(userID string) (*entity.UserActivity, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE user_id = $1`, userID)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *ActivityRepository) Put(a *entity.UserActivity) error {
	ctx := context.Background()
	a.UpdatedAt = time.Now()
	views, _ := json.Marshal(a.MovieViews)
	reactions, _ := json.Marshal(a.Reactions)
	comments, _ := json.Marshal(a.Comments)
	shares, _ := json.Marshal(a.Shares)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO activities (user_id, last_login_day, login_streak, movie_views,
			reactions, comments, shares, total_earned, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE
		SET last_login_day = EXCLUDED.last_login_day,
			login_streak = EXCLUDED.login_streak,
			movie_views = EXCLUDED.movie_views,
			reactions = EXCLUDED.reactions,
			comments = EXCLUDED.comments,
			shares = EXCLUDED.shares,
			total_earned = EXCLUDED.total_earned,
			updated_at = EXCLUDED.updated_at
	`, a.UserID, a.LastLoginDay, a.LoginStreak, views,
		reactions, comments, shares, a.TotalEarned, a.UpdatedAt)
	return err
}

func (r *ActivityRepository) All() (map[string]*entity.UserActivity, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+activityColumns+` FROM activities`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*entity.UserActivity)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out[a.UserID] = a
	}
	return out, rows.Err()
}

func scanActivity(row pgx.Row) (*entity.UserActivity, error) {
	a := &entity.UserActivity{}
	var views, reactions, comments, shares []byte
	if err := row.Scan(&a.UserID, &a.LastLoginDay, &a.LoginStreak, &views,
		&reactions, &comments, &shares, &a.TotalEarned, &a.UpdatedAt); err != nil {
		return nil, err
	}
	_ = json.Unmarshal(views, &a.MovieViews)
	_ = json.Unmarshal(reactions, &a.Reactions)
	_ = json.Unmarshal(comments, &a.Comments)
	_ = json.Unmarshal(shares, &a.Shares)
	return a, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
