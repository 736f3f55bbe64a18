package snapshot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Saver persists snapshots in the background: on a fixed interval, a short
// debounce after any mutation, and once more on shutdown. Save failures are
// logged and never surfaced to the action that triggered them.
type Saver struct {
	store    *Store
	source   func() *Snapshot
	interval time.Duration
	debounce time.Duration
	kick     chan struct{}
	logger   *logrus.Logger
}

func NewSaver(store *Store, source func() *Snapshot, interval, debounce time.Duration, logger *logrus.Logger) *Saver {
	return &Saver{
		store:    store,
		source:   source,
		interval: interval,
		debounce: debounce,
		kick:     make(chan struct{}, 1),
		logger:   logger,
	}
}

// Notify schedules a debounced save. It never blocks; a burst of mutations
// collapses into one write.
func (s *Saver) Notify() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run drives the saver until the context is cancelled, then writes a final
// snapshot.
func (s *Saver) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var pending *time.Timer
	var due <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				pending.Stop()
			}
			s.save()
			return
		case <-ticker.C:
			s.save()
		case <-s.kick:
			if pending == nil {
				pending = time.NewTimer(s.debounce)
				due = pending.C
			}
		case <-due:
			pending = nil
			due = nil
			s.save()
		}
	}
}

func (s *Saver) save() {
	if err := s.store.Save(s.source()); err != nil {
		s.logger.WithError(err).Error("snapshot save failed")
	}
}
