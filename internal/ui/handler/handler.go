// Package handler turns tea messages into state changes and commands.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	netclient "github.com/ovalle/stockpile/internal/network/client"
	"github.com/ovalle/stockpile/internal/ui/model"
)

// Handle is the single update entry point for the app model.
func Handle(m *model.AppModel, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case model.ServerMessage:
		return tea.Batch(handleServerMessage(m, msg.Msg), m.Listen())

	case model.ChannelStateMsg:
		return tea.Batch(handleChannelState(m, msg.State), m.Listen())

	case model.ToastExpiredMsg:
		m.ExpireToast(msg.Seq)
		return nil

	case model.RecycleExpiredMsg:
		m.ExpireRecyclePulse(msg.Seq)
		return nil

	case model.CopiedExpiredMsg:
		m.ExpireCopied(msg.Seq)
		return nil

	case model.AutoReturnMsg:
		// Stale tokens are cancelled timers; they must not fire.
		if m.AutoReturnCurrent(msg.Seq) && m.Phase() == model.PhaseFinished {
			m.EnterLobby()
		}
		return nil

	case tea.FocusMsg:
		// Foreground resume: reconnect or force a state re-request.
		m.Channel.Resume()
		return nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return nil

	case tea.KeyMsg:
		return HandleKey(m, msg)
	}

	return nil
}

func handleChannelState(m *model.AppModel, st netclient.State) tea.Cmd {
	m.ChannelState = st

	switch st {
	case netclient.StateExhausted:
		// Terminal: surfaced, never silent.
		m.ShowToast("Connection lost. Check your network and restart.")
	case netclient.StateConnected:
		if m.Phase() == model.PhaseConnecting {
			gameID, _ := m.Session.GameContext()
			if gameID == "" {
				m.SetPhase(model.PhaseLobby)
			} else {
				// A cached context means a previous run died mid-game.
				// Re-join and let the snapshot pick the screen.
				m.Rejoin()
			}
		}
	}

	return nil
}
