package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/moviebazar/account-service/internal/domain/progression"
	"github.com/moviebazar/account-service/internal/infrastructure/memstore"
	"github.com/moviebazar/account-service/pkg/helpers"
)

func newTestAccounts(t *testing.T) *AccountService {
	t.Helper()
	users := memstore.NewUserRepository()
	prog := NewProgressionService(users, memstore.NewActivityRepository(), nil, testLogger())
	prog.Now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAccountService(users, prog, jwt, nil, testLogger())
}

func TestSignup(t *testing.T) {
	svc := newTestAccounts(t)

	u, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Points != 0 || u.Level != 1 {
		t.Fatalf("starting state: points=%d level=%d", u.Points, u.Level)
	}
	if !u.HasBadge(progression.SignupBadge) {
		t.Fatalf("signup badge missing: %v", u.Badges)
	}
	if len(u.UnlockedAvatars) != len(progression.Levels[0].Avatars) {
		t.Fatalf("unlocked %d avatars, want %d", len(u.UnlockedAvatars), len(progression.Levels[0].Avatars))
	}
	if u.CurrentAvatar != progression.Levels[0].Avatars[0] {
		t.Fatalf("default avatar = %q", u.CurrentAvatar)
	}
	if u.Password == "hunter2hunter2" {
		t.Fatal("password stored in the clear")
	}
}

func TestSignupConflicts(t *testing.T) {
	svc := newTestAccounts(t)
	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{name: "email taken", username: "alice2", email: "alice@example.com", wantErr: ErrEmailTaken},
		{name: "username taken", username: "alice", email: "other@example.com", wantErr: ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Signup(context.Background(), tt.username, tt.email, "hunter2hunter2"); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newTestAccounts(t)
	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	u, reward, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !reward.Accepted || reward.Points != 1 {
		t.Fatalf("daily bonus: accepted=%v points=%d", reward.Accepted, reward.Points)
	}
	if u.Points != 1 {
		t.Fatalf("points after login = %d, want 1", u.Points)
	}

	// same-day second login authenticates but pays nothing
	u, reward, err = svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if reward.Accepted || u.Points != 1 {
		t.Fatalf("second login: accepted=%v points=%d", reward.Accepted, u.Points)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newTestAccounts(t)
	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "bob@example.com", password: "hunter2hunter2"},
		{name: "wrong password", email: "alice@example.com", password: "wrong-password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestIssueAndRefreshTokens(t *testing.T) {
	svc := newTestAccounts(t)
	u, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	pair, err := svc.IssueTokens(context.Background(), u)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token pair")
	}

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("uid = %q, want %q", claims.UserID, u.ID)
	}

	rotated, userID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if userID != u.ID || rotated.AccessToken == "" {
		t.Fatalf("refresh result: userID=%q", userID)
	}

	// an access token is not a refresh token
	if _, _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("refresh with access token: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCheckUsername(t *testing.T) {
	svc := newTestAccounts(t)
	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	available, suggestions := svc.CheckUsername("bob")
	if !available || suggestions != nil {
		t.Fatalf("fresh name: available=%v suggestions=%v", available, suggestions)
	}

	available, suggestions = svc.CheckUsername("alice")
	if available {
		t.Fatal("taken name reported available")
	}
	if len(suggestions) != 4 {
		t.Fatalf("got %d suggestions, want 4", len(suggestions))
	}
	for _, s := range suggestions {
		if !strings.Contains(s, "alice") {
			t.Fatalf("suggestion %q does not derive from the name", s)
		}
	}
}

func TestProfile(t *testing.T) {
	svc := newTestAccounts(t)
	u, err := svc.Signup(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	got, err := svc.Profile(u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("username = %q", got.Username)
	}

	if _, err := svc.Profile("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
