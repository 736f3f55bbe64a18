package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/repository"
)

// UserRepository is the pgx-backed user store. Set and sequence fields are
// kept as jsonb: they are only ever read and written whole, through the
// progression service.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, points, level,
	badges, unlocked_avatars, current_avatar, avatar_history,
	favorites, download_history, created_at, updated_at`

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	badges, _ := json.Marshal(u.Badges)
	unlocked, _ := json.Marshal(u.UnlockedAvatars)
	history, _ := json.Marshal(u.AvatarHistory)
	favorites, _ := json.Marshal(u.Favorites)
	downloads, _ := json.Marshal(u.DownloadHistory)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, points, level,
			badges, unlocked_avatars, current_avatar, avatar_history,
			favorites, download_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, u.ID, u.Username, u.Email, u.Password, u.Points, u.Level,
		badges, unlocked, u.CurrentAvatar, history,
		favorites, downloads, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	return r.getBy(`WHERE username = $1`, username)
}

func (r *UserRepository) getBy(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List() ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()
	badges, _ := json.Marshal(u.Badges)
	unlocked, _ := json.Marshal(u.UnlockedAvatars)
	history, _ := json.Marshal(u.AvatarHistory)
	favorites, _ := json.Marshal(u.Favorites)
	downloads, _ := json.Marshal(u.DownloadHistory)

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET points = $1, level = $2, badges = $3, unlocked_avatars = $4,
			current_avatar = $5, avatar_history = $6, favorites = $7,
			download_history = $8, updated_at = $9
		WHERE id = $10
	`, u.Points, u.Level, badges, unlocked,
		u.CurrentAvatar, history, favorites,
		downloads, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var badges, unlocked, history, favorites, downloads []byte
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Points, &u.Level,
		&badges, &unlocked, &u.CurrentAvatar, &history,
		&favorites, &downloads, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	_ = json.Unmarshal(badges, &u.Badges)
	_ = json.Unmarshal(unlocked, &u.UnlockedAvatars)
	_ = json.Unmarshal(history, &u.AvatarHistory)
	_ = json.Unmarshal(favorites, &u.Favorites)
	_ = json.Unmarshal(downloads, &u.DownloadHistory)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
