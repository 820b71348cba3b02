package handler

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	gameclient "github.com/ovalle/stockpile/internal/client"
	"github.com/ovalle/stockpile/internal/logger"
	"github.com/ovalle/stockpile/internal/network/protocol"
	"github.com/ovalle/stockpile/internal/ui/model"
)

// Board key layout: 1-5 select a hand card, g the goal top, a/s/d/f a
// discard slot, u/i/o/p play onto common piles 1-4, esc clears.
var discardKeys = map[string]int{"a": 0, "s": 1, "d": 2, "f": 3}
var pileKeys = map[string]int{"u": 0, "i": 1, "o": 2, "p": 3}

// HandleKey routes key presses by phase.
func HandleKey(m *model.AppModel, msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.Phase() {
	case model.PhaseLobby:
		return handleLobbyKey(m, msg)
	case model.PhaseWaiting:
		return handleWaitingKey(m, msg)
	case model.PhaseTieBreak:
		return handleTieBreakKey(m, msg)
	case model.PhaseBoard:
		return handleBoardKey(m, msg)
	case model.PhaseFinished, model.PhaseTerminalError:
		if msg.String() == "enter" || msg.String() == "q" {
			m.EnterLobby()
		}
		return nil
	}

	return nil
}

func handleLobbyKey(m *model.AppModel, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "down", "up":
		cycleLobbyFocus(m, msg.String() == "shift+tab" || msg.String() == "up")
		return nil

	case "enter":
		return submitLobby(m)

	case "esc":
		return tea.Quit
	}

	var cmd tea.Cmd
	switch m.Focus {
	case model.FieldName:
		m.NameInput, cmd = m.NameInput.Update(msg)
	case model.FieldGoal:
		m.GoalInput, cmd = m.GoalInput.Update(msg)
	case model.FieldCode:
		m.CodeInput, cmd = m.CodeInput.Update(msg)
	}
	return cmd
}

func cycleLobbyFocus(m *model.AppModel, backwards bool) {
	order := []model.LobbyField{model.FieldName, model.FieldGoal, model.FieldCode}
	idx := 0
	for i, f := range order {
		if f == m.Focus {
			idx = i
		}
	}
	if backwards {
		idx = (idx + len(order) - 1) % len(order)
	} else {
		idx = (idx + 1) % len(order)
	}
	m.Focus = order[idx]

	m.NameInput.Blur()
	m.GoalInput.Blur()
	m.CodeInput.Blur()
	switch m.Focus {
	case model.FieldName:
		m.NameInput.Focus()
	case model.FieldGoal:
		m.GoalInput.Focus()
	case model.FieldCode:
		m.CodeInput.Focus()
	}
}

// submitLobby creates a game, or joins one when a code was entered.
func submitLobby(m *model.AppModel) tea.Cmd {
	name := strings.TrimSpace(m.NameInput.Value())
	if name == "" {
		seq := m.ShowToast("Enter a name first")
		return tick(m.Cfg.UI.ToastWindow(), model.ToastExpiredMsg{Seq: seq})
	}
	m.Session.SetPlayerName(name)

	playerID := m.Session.PlayerID()
	code := strings.TrimSpace(m.CodeInput.Value())

	var err error
	if code != "" {
		// Joining caches the context up front so a crash before the
		// first snapshot can still resume.
		m.Session.CacheGameContext(code, name)
		err = m.Channel.JoinGame(code, playerID, name)
	} else {
		err = m.Channel.CreateGame(playerID, name, m.GoalSize())
	}

	if err != nil {
		logger.LogError("lobby submit: %v", err)
		seq := m.ShowToast("Not connected yet, retrying...")
		m.Channel.Resume()
		return tick(m.Cfg.UI.ToastWindow(), model.ToastExpiredMsg{Seq: seq})
	}

	// Navigation happens on the first snapshot with a game id.
	return nil
}

func handleWaitingKey(m *model.AppModel, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "c":
		s := m.Store.Current()
		if s == nil {
			return nil
		}
		// Best effort: a clipboard failure is a log line, nothing more.
		if err := clipboard.WriteAll(s.GameID); err != nil {
			logger.LogError("clipboard write: %v", err)
			return nil
		}
		seq := m.ShowCopied()
		return tick(m.Cfg.UI.CopiedWindow(), model.CopiedExpiredMsg{Seq: seq})

	case "q", "esc":
		m.EnterLobby()
	}
	return nil
}

func handleTieBreakKey(m *model.AppModel, msg tea.KeyMsg) tea.Cmd {
	var choice protocol.RpsChoice
	switch msg.String() {
	case "r":
		choice = protocol.RpsRock
	case "p":
		choice = protocol.RpsPaper
	case "s":
		choice = protocol.RpsScissors
	default:
		return nil
	}

	// The controller decides whether choosing is still allowed.
	if !m.TieBreaker.Choose(choice) {
		return nil
	}

	s := m.Store.Current()
	if s == nil {
		return nil
	}
	if err := m.Channel.ChooseRps(s.GameID, m.Session.PlayerID(), choice); err != nil {
		logger.LogError("rps choice: %v", err)
	}
	return nil
}

func handleBoardKey(m *model.AppModel, msg tea.KeyMsg) tea.Cmd {
	s := m.Store.Current()
	if s == nil {
		return nil
	}

	key := msg.String()

	switch key {
	case "esc":
		m.Engine.ClearSelection()
		return nil
	case "g":
		m.Engine.SelectGoal(s)
		return nil
	case "1", "2", "3", "4", "5":
		m.Engine.SelectHand(s, int(key[0]-'1'))
		return nil
	}

	if slot, ok := discardKeys[key]; ok {
		if intent := m.Engine.ClickDiscardSlot(s, slot); intent != nil {
			emitDiscard(m, s, intent)
		}
		return nil
	}

	if target, ok := pileKeys[key]; ok {
		if intent := m.Engine.ClickPile(s, target); intent != nil {
			emitMove(m, s, intent)
		}
		return nil
	}

	return nil
}

func emitMove(m *model.AppModel, s *protocol.GameSnapshot, intent *gameclient.MoveIntent) {
	err := m.Channel.PlayCard(s.GameID, m.Session.PlayerID(), intent.CardID,
		intent.Source, intent.TargetIndex, intent.SourceIndex)
	if err != nil {
		logger.LogError("play_card: %v", err)
	}
}

func emitDiscard(m *model.AppModel, s *protocol.GameSnapshot, intent *gameclient.DiscardIntent) {
	err := m.Channel.Discard(s.GameID, m.Session.PlayerID(), intent.CardID, intent.TargetIndex)
	if err != nil {
		logger.LogError("discard_card: %v", err)
	}
}
