// Package client holds the client-side game runtime: the snapshot
// store, the phase mapping, move validation with optimistic overlay and
// the tie-breaker sub-protocol.
package client

import (
	"strings"
	"sync"

	"github.com/ovalle/stockpile/internal/identity"
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// Store mirrors the last server-pushed snapshot. Every Apply fully
// replaces the value; there is no field-level merge.
type Store struct {
	mu        sync.RWMutex
	current   *protocol.GameSnapshot
	observers []chan *protocol.GameSnapshot
	errChans  []chan string

	session        *identity.Store
	invalidMarkers []string
	terminalErr    string
}

// NewStore creates a store bound to the session context. Each snapshot
// refreshes the cached game context so a killed process can resume.
func NewStore(session *identity.Store, invalidMarkers []string) *Store {
	return &Store{
		session:        session,
		invalidMarkers: invalidMarkers,
	}
}

// Current returns the authoritative snapshot, or nil before the first
// one arrives.
func (st *Store) Current() *protocol.GameSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Apply installs a new authoritative snapshot and notifies observers.
func (st *Store) Apply(s *protocol.GameSnapshot) {
	st.mu.Lock()
	st.current = s
	observers := make([]chan *protocol.GameSnapshot, len(st.observers))
	copy(observers, st.observers)
	st.mu.Unlock()

	if st.session != nil && s.GameID != "" {
		st.session.CacheGameContext(s.GameID, s.Me.Name)
	}

	for _, ch := range observers {
		select {
		case ch <- s:
		default:
		}
	}
}

// Observe returns a hot snapshot stream that replays the latest value
// to the new subscriber.
func (st *Store) Observe() <-chan *protocol.GameSnapshot {
	ch := make(chan *protocol.GameSnapshot, 16)

	st.mu.Lock()
	st.observers = append(st.observers, ch)
	if st.current != nil {
		ch <- st.current
	}
	st.mu.Unlock()

	return ch
}

// Errors returns the transient error notice stream.
func (st *Store) Errors() <-chan string {
	ch := make(chan string, 16)

	st.mu.Lock()
	st.errChans = append(st.errChans, ch)
	st.mu.Unlock()

	return ch
}

// PushError surfaces a server error once. Session-invalid errors also
// clear the cached game context and flip the terminal error state.
func (st *Store) PushError(msg string) {
	if st.IsSessionInvalid(msg) {
		st.mu.Lock()
		st.terminalErr = msg
		st.mu.Unlock()

		if st.session != nil {
			st.session.ClearGameContext()
		}
	}

	st.mu.RLock()
	errChans := make([]chan string, len(st.errChans))
	copy(errChans, st.errChans)
	st.mu.RUnlock()

	for _, ch := range errChans {
		select {
		case ch <- msg:
		default:
		}
	}
}

// IsSessionInvalid reports whether a server error means the game no
// longer exists or has ended.
func (st *Store) IsSessionInvalid(msg string) bool {
	for _, marker := range st.invalidMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// TerminalError returns the blocking session error, if any.
func (st *Store) TerminalError() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.terminalErr
}

// ClearTerminalError resets the terminal state after the user leaves
// the dead game.
func (st *Store) ClearTerminalError() {
	st.mu.Lock()
	st.terminalErr = ""
	st.current = nil
	st.mu.Unlock()
}
