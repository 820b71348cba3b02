// Package model defines the UI state and the tea messages that drive it.
package model

import (
	netclient "github.com/ovalle/stockpile/internal/network/client"
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// Phase is the active screen. Game phases follow the snapshot status;
// the rest are client-side only.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseConnecting
	PhaseWaiting
	PhaseTieBreak
	PhaseBoard
	PhaseFinished
	PhaseTerminalError
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseConnecting:
		return "connecting"
	case PhaseWaiting:
		return "waiting"
	case PhaseTieBreak:
		return "tie-break"
	case PhaseBoard:
		return "board"
	case PhaseFinished:
		return "finished"
	case PhaseTerminalError:
		return "terminal-error"
	default:
		return "unknown"
	}
}

// --- Tea messages ---

// ServerMessage wraps an inbound protocol message.
type ServerMessage struct {
	Msg *protocol.Message
}

// ChannelStateMsg reports a connection state transition.
type ChannelStateMsg struct {
	State netclient.State
}

// ToastExpiredMsg clears a transient error notice.
type ToastExpiredMsg struct {
	Seq int
}

// RecycleExpiredMsg clears the recycle pulse.
type RecycleExpiredMsg struct {
	Seq int
}

// CopiedExpiredMsg clears the "copied" hint.
type CopiedExpiredMsg struct {
	Seq int
}

// AutoReturnMsg fires the scheduled return to the lobby after a
// finished game. Stale sequence numbers are ignored, which is how a
// superseded timer is cancelled.
type AutoReturnMsg struct {
	Seq int
}
