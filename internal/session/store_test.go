package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stayfront/internal/booking"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(time.Minute)
	require.NoError(t, err)
	return s
}

func newTestForm() *booking.Controller {
	return booking.NewController(nil, zap.NewNop().Sugar())
}

func TestStoreOpenAndGet(t *testing.T) {
	s := newTestStore(t)

	ctrl := newTestForm()
	id, ref := s.Open(ctrl)

	assert.NotEmpty(t, id)
	assert.GreaterOrEqual(t, len(ref), 6)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Same(t, ctrl, got)
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get("unknown-id")
	assert.False(t, ok)
}

func TestStoreRefsAreDistinct(t *testing.T) {
	s := newTestStore(t)

	_, ref1 := s.Open(newTestForm())
	_, ref2 := s.Open(newTestForm())

	assert.NotEqual(t, ref1, ref2)
}

func TestStoreDiscard(t *testing.T) {
	s := newTestStore(t)

	id, _ := s.Open(newTestForm())
	s.Discard(id)

	_, ok := s.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	// Unknown ids are a no-op.
	s.Discard("unknown-id")
}
