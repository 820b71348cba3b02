package client

import (
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// View is the sub-view a snapshot status selects. Phase changes only on
// receipt of a new snapshot; no client-side timer moves the phase.
type View int

const (
	ViewWaiting View = iota
	ViewTieBreaker
	ViewBoard
	ViewFinished
)

func (v View) String() string {
	switch v {
	case ViewWaiting:
		return "waiting"
	case ViewTieBreaker:
		return "tie-breaker"
	case ViewBoard:
		return "board"
	case ViewFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ViewFor maps a snapshot status to exactly one active view.
func ViewFor(status protocol.GameStatus) View {
	switch status {
	case protocol.StatusWaiting:
		return ViewWaiting
	case protocol.StatusResolvingTie:
		return ViewTieBreaker
	case protocol.StatusFinished:
		return ViewFinished
	default:
		return ViewBoard
	}
}

// FinishOutcome describes the side effects a finished snapshot demands.
type FinishOutcome struct {
	// Celebrate is true exactly once, when the local player won.
	Celebrate bool
	// ScheduleReturn asks for the single auto-return timer.
	ScheduleReturn bool
	// WinnerName is the display name for the finished view.
	WinnerName string
	// LocalWin reports whether the local player is the winner.
	LocalWin bool
}

// FinishTracker turns finished snapshots into one-shot side effects. A
// repeated finished snapshot for the same game schedules nothing.
type FinishTracker struct {
	handledGame string
}

// Observe inspects a snapshot and returns the side effects to run.
func (ft *FinishTracker) Observe(s *protocol.GameSnapshot) FinishOutcome {
	if s == nil || s.Status != protocol.StatusFinished || s.WinnerID == "" {
		return FinishOutcome{}
	}
	if ft.handledGame == s.GameID {
		return FinishOutcome{}
	}
	ft.handledGame = s.GameID

	localWin := s.WinnerID == s.Me.ID
	winnerName := "You"
	if !localWin {
		winnerName = "Opponent"
		if s.Opponent != nil && s.Opponent.Name != "" {
			winnerName = s.Opponent.Name
		}
	}

	return FinishOutcome{
		Celebrate:      localWin,
		ScheduleReturn: true,
		WinnerName:     winnerName,
		LocalWin:       localWin,
	}
}

// Reset forgets the handled game, for a fresh session.
func (ft *FinishTracker) Reset() {
	ft.handledGame = ""
}
