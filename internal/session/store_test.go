package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmmanuelSan01/SportBot/internal/common/logger"
)

func newTestStore(t *testing.T) *Store {
	return NewStore(30*time.Minute, logger.NewTestLogger(t))
}

func TestStore_TouchCreatesOnFirstContact(t *testing.T) {
	s := newTestStore(t)

	sess := s.Touch(42, 7001, "laura_tkd", "Laura", "Gómez")

	require.NotNil(t, sess)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, "Laura", sess.FirstName)
	assert.Equal(t, 1, sess.MessageCount)
	assert.False(t, sess.CreatedAt.IsZero())
	assert.Equal(t, 1, s.Len())
}

func TestStore_TouchAccumulates(t *testing.T) {
	s := newTestStore(t)

	s.Touch(42, 7001, "", "Laura", "")
	s.Touch(42, 7001, "", "Laura", "")
	sess := s.Touch(42, 7001, "", "Laura", "")

	assert.Equal(t, 3, sess.MessageCount)
	assert.Equal(t, 1, s.Len())
}

func TestStore_KeyedByUserAndChat(t *testing.T) {
	s := newTestStore(t)

	s.Touch(42, 7001, "", "Laura", "")
	s.Touch(42, 7002, "", "Laura", "")
	s.Touch(43, 7001, "", "Andrés", "")

	assert.Equal(t, 3, s.Len())
	assert.Nil(t, s.Get(43, 7002))
}

func TestStore_SweepEvictsIdle(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.Touch(1, 1, "", "Viejo", "")

	s.now = func() time.Time { return base.Add(10 * time.Minute) }
	s.Touch(2, 2, "", "Reciente", "")

	// Sweep at +40min: the first session is 40min idle, the second 30min
	// exactly (not strictly older than the cutoff).
	s.now = func() time.Time { return base.Add(40 * time.Minute) }
	evicted := s.Sweep()

	assert.Equal(t, 1, evicted)
	assert.Nil(t, s.Get(1, 1))
	assert.NotNil(t, s.Get(2, 2))
}

func TestStore_TouchRevivesIdleClock(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.Touch(1, 1, "", "Laura", "")

	// Activity at +25min resets the idle window.
	s.now = func() time.Time { return base.Add(25 * time.Minute) }
	s.Touch(1, 1, "", "Laura", "")

	s.now = func() time.Time { return base.Add(45 * time.Minute) }
	assert.Zero(t, s.Sweep())
	assert.NotNil(t, s.Get(1, 1))
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	s := newTestStore(t)
	s.Touch(1, 1, "", "Laura", "")

	snap := s.Get(1, 1)
	snap.MessageCount = 99

	assert.Equal(t, 1, s.Get(1, 1).MessageCount)
}
