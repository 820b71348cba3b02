package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovalle/stockpile/internal/identity"
	"github.com/ovalle/stockpile/internal/network/protocol"
)

var testMarkers = []string{"No existe", "inexistente", "terminado"}

func newTestStore(t *testing.T) (*Store, *identity.Store) {
	t.Helper()
	session, err := identity.Open(filepath.Join(t.TempDir(), "session.yaml"))
	require.NoError(t, err)
	return NewStore(session, testMarkers), session
}

func recvSnapshot(t *testing.T, ch <-chan *protocol.GameSnapshot) *protocol.GameSnapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
		return nil
	}
}

func TestApplyFullyReplaces(t *testing.T) {
	st, _ := newTestStore(t)

	s1 := playingSnapshot()
	s1.WinnerID = "p_me" // field absent in s2
	st.Apply(s1)

	s2 := playingSnapshot()
	s2.DrawPileCount = 12
	st.Apply(s2)

	cur := st.Current()
	assert.Same(t, s2, cur)
	assert.Empty(t, cur.WinnerID, "no trace of s1-only fields lingers")
	assert.Equal(t, 12, cur.DrawPileCount)
}

func TestObserveReplaysLatest(t *testing.T) {
	st, _ := newTestStore(t)

	s := playingSnapshot()
	st.Apply(s)

	// A late subscriber still sees the current value.
	ch := st.Observe()
	assert.Same(t, s, recvSnapshot(t, ch))

	s2 := playingSnapshot()
	st.Apply(s2)
	assert.Same(t, s2, recvSnapshot(t, ch))
}

func TestApplyRefreshesGameContext(t *testing.T) {
	st, session := newTestStore(t)

	st.Apply(playingSnapshot())

	gameID, name := session.GameContext()
	assert.Equal(t, "g_1", gameID)
	assert.Equal(t, "Alice", name)
}

func TestPushErrorTransient(t *testing.T) {
	st, session := newTestStore(t)
	st.Apply(playingSnapshot())
	errs := st.Errors()

	st.PushError("move rejected")

	select {
	case msg := <-errs:
		assert.Equal(t, "move rejected", msg)
	case <-time.After(time.Second):
		t.Fatal("error never surfaced")
	}

	assert.Empty(t, st.TerminalError(), "move rejection is advisory, not terminal")
	gameID, _ := session.GameContext()
	assert.Equal(t, "g_1", gameID, "transient errors keep the cached game")
}

func TestPushErrorSessionInvalid(t *testing.T) {
	st, session := newTestStore(t)
	st.Apply(playingSnapshot())

	st.PushError("La partida No existe")

	assert.Equal(t, "La partida No existe", st.TerminalError())
	gameID, _ := session.GameContext()
	assert.Empty(t, gameID, "a dead game clears the cached game id")

	st.ClearTerminalError()
	assert.Empty(t, st.TerminalError())
	assert.Nil(t, st.Current())
}

func TestIsSessionInvalid(t *testing.T) {
	st, _ := newTestStore(t)

	assert.True(t, st.IsSessionInvalid("El juego ha terminado"))
	assert.True(t, st.IsSessionInvalid("juego inexistente"))
	assert.False(t, st.IsSessionInvalid("not your turn"))
}
