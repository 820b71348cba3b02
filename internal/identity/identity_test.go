package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.yaml")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestPlayerIDStableAcrossRestarts(t *testing.T) {
	s, path := openTestStore(t)

	id := s.PlayerID()
	assert.True(t, strings.HasPrefix(id, "p_"))
	assert.Equal(t, id, s.PlayerID(), "same process must see one identity")

	// Simulate a process restart.
	s2, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, id, s2.PlayerID())
}

func TestResetIssuesFreshIdentity(t *testing.T) {
	s, _ := openTestStore(t)

	id := s.PlayerID()
	s.CacheGameContext("g_1", "Alice")

	newID := s.Reset()
	assert.NotEqual(t, id, newID)

	gameID, name := s.GameContext()
	assert.Empty(t, gameID, "reset drops the cached game")
	assert.Empty(t, name)
}

func TestGameContextRoundTrip(t *testing.T) {
	s, path := openTestStore(t)

	s.CacheGameContext("g_42", "Alice")

	s2, err := Open(path)
	require.NoError(t, err)
	gameID, name := s2.GameContext()
	assert.Equal(t, "g_42", gameID)
	assert.Equal(t, "Alice", name)

	s2.ClearGameContext()
	gameID, name = s2.GameContext()
	assert.Empty(t, gameID)
	assert.Equal(t, "Alice", name, "clearing the game keeps the name")
}

func TestCacheGameContextKeepsNameWhenBlank(t *testing.T) {
	s, _ := openTestStore(t)

	s.CacheGameContext("g_1", "Alice")
	s.CacheGameContext("g_1", "")

	_, name := s.GameContext()
	assert.Equal(t, "Alice", name)
}

func TestCorruptSessionFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.NotEmpty(t, s.PlayerID())
}

func TestSetPlayerName(t *testing.T) {
	s, path := openTestStore(t)

	s.SetPlayerName("  Bob  ")
	s2, err := Open(path)
	require.NoError(t, err)
	_, name := s2.GameContext()
	assert.Equal(t, "Bob", name)
}
