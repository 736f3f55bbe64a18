package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/moviebazar/account-service/internal/domain/entity"
	"github.com/moviebazar/account-service/internal/domain/progression"
	repo "github.com/moviebazar/account-service/internal/domain/repository"
	"github.com/moviebazar/account-service/pkg/helpers"
)

// AccountService handles signup, login and token issuance. Point-granting
// side effects of login are delegated to the progression service so every
// mutation stays on one path.
type AccountService struct {
	Users       repo.UserRepository
	Progression *ProgressionService
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Logger      *logrus.Logger
}

func NewAccountService(users repo.UserRepository, prog *ProgressionService, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AccountService {
	return &AccountService{Users: users, Progression: prog, JWT: jwt, Redis: rdb, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Signup creates an account with the level-1 starting state. The conflict
// error tells the caller which field collided.
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (*entity.User, error) {
	if _, err := s.Users.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.Users.GetByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	first := progression.Levels[0]
	now := s.Progression.Now()
	u := &entity.User{
		ID:              uuid.NewString(),
		Username:        username,
		Email:           email,
		Password:        hash,
		Points:          0,
		Level:           first.Level,
		Badges:          []string{progression.SignupBadge},
		UnlockedAvatars: append([]string(nil), first.Avatars...),
		CurrentAvatar:   first.Avatars[0],
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Users.Create(u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			// Lost a race after the pre-checks; report the likelier field.
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user created")
	if s.Progression.notify != nil {
		s.Progression.notify()
	}
	return u, nil
}

// Login authenticates the credentials and grants the daily-login reward if
// it was not already claimed today. The returned user reflects the reward.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, *ActionResult, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}

	reward, err := s.Progression.RecordDailyLogin(u.ID)
	if err != nil {
		return nil, nil, err
	}
	return reward.User, reward, nil
}

// IssueTokens generates the bearer token pair and records a session in
// redis when it is configured.
func (s *AccountService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the token pair. With redis configured, the refresh
// token's session id must match the active session.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(claims.UserID)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the redis session, invalidating refresh tokens bound to it.
func (s *AccountService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, sessionKey(userID)); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

// Profile returns the user record for the given id.
func (s *AccountService) Profile(userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// CheckUsername reports availability and, for taken names, a few
// suggestions.
func (s *AccountService) CheckUsername(username string) (bool, []string) {
	if _, err := s.Users.GetByUsername(username); err != nil {
		return true, nil
	}
	year := s.Progression.Now().Year()
	return false, []string{
		username + "123",
		fmt.Sprintf("%s_%d", username, rand.Intn(100)),
		"The_" + username,
		fmt.Sprintf("%s%d", username, year),
	}
}
