package snapshot

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/moviebazar/account-service/internal/domain/entity"
)

// Snapshot is a full serialized copy of the user store and activity ledger.
type Snapshot struct {
	Users      []*entity.User                  `json:"users"`
	Activities map[string]*entity.UserActivity `json:"activities"`
	SavedAt    time.Time                       `json:"savedAt"`
}

// Empty returns a snapshot with initialized, empty collections.
func Empty() *Snapshot {
	return &Snapshot{Activities: make(map[string]*entity.UserActivity)}
}

// Store reads and writes snapshots on disk. Persistence is best effort: a
// missing or corrupt file degrades to an empty snapshot instead of failing
// startup.
type Store struct {
	path   string
	logger *logrus.Logger
}

func NewStore(path string, logger *logrus.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load restores the last saved snapshot. It never fails: unreadable or
// corrupt files are logged and replaced with empty state.
func (s *Store) Load() *Snapshot {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.path).Warn("snapshot unreadable, starting empty")
		}
		return Empty()
	}
	snap := Empty()
	if err := json.Unmarshal(b, snap); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("snapshot corrupt, starting empty")
		return Empty()
	}
	if snap.Activities == nil {
		snap.Activities = make(map[string]*entity.UserActivity)
	}
	s.logger.WithFields(logrus.Fields{
		"users":    len(snap.Users),
		"saved_at": snap.SavedAt,
	}).Info("snapshot restored")
	return snap
}

// Save writes the snapshot atomically (temp file + rename).
func (s *Store) Save(snap *Snapshot) error {
	snap.SavedAt = time.Now().UTC()
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
