package client

import (
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// TieBreaker manages the rock-paper-scissors sub-protocol that resolves
// simultaneous end-game ties.
type TieBreaker struct {
	myID string

	state       *protocol.TieBreakerState
	roundID     int
	localChoice protocol.RpsChoice
}

// NewTieBreaker creates a controller for the local player.
func NewTieBreaker(myID string) *TieBreaker {
	return &TieBreaker{myID: myID}
}

// Sync feeds the tie-breaker state embedded in a snapshot. A new round
// id discards any previously recorded local choice: a new round always
// starts unchosen, even if the player had chosen in a prior round.
func (t *TieBreaker) Sync(ts *protocol.TieBreakerState) {
	t.state = ts
	if ts == nil {
		return
	}
	if ts.RoundID != t.roundID {
		t.roundID = ts.RoundID
		t.localChoice = ""
	}
}

// AmPlayer1 reports which seat the local player holds.
func (t *TieBreaker) AmPlayer1() bool {
	return t.state != nil && t.state.Player1ID == t.myID
}

// LocalChoice returns the choice recorded for the current round.
func (t *TieBreaker) LocalChoice() protocol.RpsChoice {
	return t.localChoice
}

// myServerChoice returns the choice the server has echoed back for the
// local player, if any.
func (t *TieBreaker) myServerChoice() protocol.RpsChoice {
	if t.state == nil {
		return ""
	}
	if t.AmPlayer1() {
		return t.state.P1Choice
	}
	return t.state.P2Choice
}

func (t *TieBreaker) opponentChoice() protocol.RpsChoice {
	if t.state == nil {
		return ""
	}
	if t.AmPlayer1() {
		return t.state.P2Choice
	}
	return t.state.P1Choice
}

// Choose records a choice for the current round. It is a no-op when a
// local choice already exists or the server has already recorded one:
// a late echo after a slow round trip must not allow re-choosing. The
// return value says whether the caller should emit the choice.
func (t *TieBreaker) Choose(choice protocol.RpsChoice) bool {
	if t.state == nil || t.localChoice != "" || t.myServerChoice() != "" {
		return false
	}

	t.localChoice = choice
	return true
}

// StatusMessage derives the banner text. A present lastResult always
// overrides in-progress messaging, even if local choice state appears
// stale.
func (t *TieBreaker) StatusMessage() string {
	if t.state == nil {
		return "LOADING..."
	}

	if result := t.state.LastResult; result != protocol.RpsPending {
		if result == protocol.RpsDraw {
			return "IT'S A TIE!"
		}
		iWon := (t.AmPlayer1() && result == protocol.RpsP1Wins) ||
			(!t.AmPlayer1() && result == protocol.RpsP2Wins)
		if iWon {
			return "WIN! YOU START"
		}
		return "LOSE! RIVAL STARTS"
	}

	opponentHasChosen := t.opponentChoice() != ""

	if t.localChoice == "" {
		if opponentHasChosen {
			return "OPPONENT IS READY!"
		}
		return "CHOOSE YOUR WEAPON"
	}

	if opponentHasChosen {
		return "CALCULATING..."
	}
	return "WAITING OPPONENT..."
}
