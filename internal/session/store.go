// internal/session/store.go
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
	"github.com/EmmanuelSan01/SportBot/internal/common/metrics"
)

// Session is the ephemeral conversation state for one (user, chat) pair.
// It lives in memory only and dies with the process.
type Session struct {
	UserID       int64
	ChatID       int64
	Username     string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	LastActivity time.Time
	MessageCount int
}

// Store holds sessions behind an explicit mutex. Touch is the only write
// path; Sweep evicts idle entries.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	logger      logger.Logger

	now func() time.Time // test hook
}

func NewStore(idleTimeout time.Duration, log logger.Logger) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		logger:      log.WithFields(map[string]interface{}{"component": "session"}),
		now:         time.Now,
	}
}

func key(userID, chatID int64) string {
	return fmt.Sprintf("%d_%d", userID, chatID)
}

// Touch returns the session for the pair, creating it on first contact, and
// records one message of activity.
func (s *Store) Touch(userID, chatID int64, username, firstName, lastName string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(userID, chatID)
	sess, ok := s.sessions[k]
	if !ok {
		now := s.now()
		sess = &Session{
			UserID:    userID,
			ChatID:    chatID,
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
			CreatedAt: now,
		}
		s.sessions[k] = sess
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	sess.LastActivity = s.now()
	sess.MessageCount++

	snapshot := *sess
	return &snapshot
}

// Get returns a snapshot of the session, or nil if absent.
func (s *Store) Get(userID, chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key(userID, chatID)]
	if !ok {
		return nil
	}
	snapshot := *sess
	return &snapshot
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the timeout and reports how many
// were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTimeout)
	evicted := 0
	for k, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, k)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("idle sessions evicted", map[string]interface{}{
			"evicted":   evicted,
			"remaining": len(s.sessions),
		})
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return evicted
}

// Run sweeps on the given interval until the context is cancelled. Meant to
// be started once from main as a goroutine.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
