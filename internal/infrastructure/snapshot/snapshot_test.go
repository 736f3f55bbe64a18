package snapshot

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/moviebazar/account-service/internal/domain/entity"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestStoreSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snapshot.json")
	store := NewStore(path, testLogger())

	snap := Empty()
	snap.Users = []*entity.User{
		{ID: "1", Username: "alice", Email: "alice@example.com", Points: 42, Level: 1},
	}
	snap.Activities["1"] = &entity.UserActivity{UserID: "1", LoginStreak: 2, TotalEarned: 42}

	if err := store.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := store.Load()
	if len(got.Users) != 1 || got.Users[0].Username != "alice" || got.Users[0].Points != 42 {
		t.Fatalf("users = %+v", got.Users)
	}
	a, ok := got.Activities["1"]
	if !ok || a.LoginStreak != 2 || a.TotalEarned != 42 {
		t.Fatalf("activities = %+v", got.Activities)
	}
	if got.SavedAt.IsZero() {
		t.Fatal("savedAt not stamped")
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"), testLogger())
	got := store.Load()
	if len(got.Users) != 0 || got.Activities == nil {
		t.Fatalf("missing file should load empty, got %+v", got)
	}
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(path, testLogger())
	got := store.Load()
	if len(got.Users) != 0 || got.Activities == nil {
		t.Fatalf("corrupt file should load empty, got %+v", got)
	}
}

func TestSaverNotifyDebounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewStore(path, testLogger())

	source := func() *Snapshot {
		s := Empty()
		s.Users = []*entity.User{{ID: "1", Username: "alice", Email: "alice@example.com"}}
		return s
	}
	saver := NewSaver(store, source, time.Hour, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		saver.Run(ctx)
		close(done)
	}()

	// a burst of notifies collapses into one debounced save
	for i := 0; i < 10; i++ {
		saver.Notify()
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced save never landed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	<-done

	got := store.Load()
	if len(got.Users) != 1 {
		t.Fatalf("saved snapshot: %+v", got)
	}
}

func TestSaverFinalSaveOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewStore(path, testLogger())

	source := func() *Snapshot {
		s := Empty()
		s.Users = []*entity.User{{ID: "1", Username: "alice", Email: "alice@example.com"}}
		return s
	}
	saver := NewSaver(store, source, time.Hour, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		saver.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("final save missing: %v", err)
	}
}
