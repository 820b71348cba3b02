// Package identity owns the persisted player identity and the cached
// game context used to resume a session after a process restart.
package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// session is the on-disk format.
type session struct {
	PlayerID   string `yaml:"player_id"`
	PlayerName string `yaml:"player_name,omitempty"`
	GameID     string `yaml:"game_id,omitempty"`
}

// Store persists the stable player identity and the last active game.
// It is the only writer of the session file.
type Store struct {
	mu   sync.Mutex
	path string
	data session
}

// Open loads or creates the session file at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &s.data); err != nil {
			// A corrupt session file is not fatal; start fresh.
			s.data = session{}
		}
	case errors.Is(err, os.ErrNotExist):
		// First run.
	default:
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	return s, nil
}

// OpenDefault opens the session file in the user's home directory.
func OpenDefault() (*Store, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".stockpile")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return Open(filepath.Join(dir, "session.yaml"))
}

// PlayerID returns the stable identity, creating and persisting one on
// first use. It never changes within an installation unless Reset is
// called.
func (s *Store) PlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.PlayerID == "" {
		s.data.PlayerID = newPlayerID()
		s.persist()
	}
	return s.data.PlayerID
}

// Reset discards the identity and issues a fresh one. Only for explicit
// new-session flows, never mid-game.
func (s *Store) Reset() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = session{PlayerID: newPlayerID()}
	s.persist()
	return s.data.PlayerID
}

// CacheGameContext remembers the active game so a restarted process can
// rejoin without user input.
func (s *Store) CacheGameContext(gameID, playerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gameID == s.data.GameID && playerName == s.data.PlayerName {
		return
	}
	s.data.GameID = gameID
	if playerName != "" {
		s.data.PlayerName = playerName
	}
	s.persist()
}

// ClearGameContext forgets the active game, keeping the identity.
func (s *Store) ClearGameContext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.GameID == "" {
		return
	}
	s.data.GameID = ""
	s.persist()
}

// GameContext returns the cached game id and display name.
func (s *Store) GameContext() (gameID, playerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.GameID, s.data.PlayerName
}

// SetPlayerName persists the last used display name for lobby prefill.
func (s *Store) SetPlayerName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || name == s.data.PlayerName {
		return
	}
	s.data.PlayerName = name
	s.persist()
}

// persist writes the session file atomically. Callers hold s.mu.
// Write failures are swallowed: losing the cache costs a manual rejoin,
// nothing more.
func (s *Store) persist() {
	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}

func newPlayerID() string {
	return "p_" + uuid.NewString()
}
