package model

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	gameclient "github.com/ovalle/stockpile/internal/client"
	"github.com/ovalle/stockpile/internal/config"
	"github.com/ovalle/stockpile/internal/identity"
	"github.com/ovalle/stockpile/internal/logger"
	netclient "github.com/ovalle/stockpile/internal/network/client"
	"github.com/ovalle/stockpile/internal/network/protocol"
	"github.com/ovalle/stockpile/internal/sound"
)

// LobbyField indexes the focusable lobby inputs.
type LobbyField int

const (
	FieldName LobbyField = iota
	FieldGoal
	FieldCode
)

// AppModel is the full client state behind the terminal UI.
type AppModel struct {
	Cfg     *config.Config
	Session *identity.Store
	Channel *netclient.Client
	Store   *gameclient.Store
	Engine  *gameclient.Engine
	Sounds  *sound.SoundManager

	TieBreaker *gameclient.TieBreaker
	Finish     gameclient.FinishTracker
	Recycle    gameclient.RecycleTracker

	phase Phase

	// Lobby inputs
	NameInput textinput.Model
	GoalInput textinput.Model
	CodeInput textinput.Model
	Focus     LobbyField

	// Transient cues with sequence tokens; a bumped token cancels the
	// matching scheduled message.
	Toast        string
	toastSeq     int
	RecyclePulse bool
	recycleSeq   int
	Copied       bool
	copiedSeq    int
	autoReturn   int

	// Finished view
	WinnerName string
	LocalWin   bool

	// Connection banner
	ChannelState netclient.State

	inbound chan tea.Msg

	Width  int
	Height int
}

// New wires the model to the already-constructed runtime pieces.
func New(cfg *config.Config, session *identity.Store, channel *netclient.Client, store *gameclient.Store) *AppModel {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 20
	name.Width = 24
	name.Focus()
	if _, cached := session.GameContext(); cached != "" {
		name.SetValue(cached)
	}

	goal := textinput.New()
	goal.Placeholder = "Goal size (default 20)"
	goal.CharLimit = 2
	goal.Width = 24

	code := textinput.New()
	code.Placeholder = "Game code to join"
	code.CharLimit = 16
	code.Width = 24

	m := &AppModel{
		Cfg:        cfg,
		Session:    session,
		Channel:    channel,
		Store:      store,
		Engine:     gameclient.NewEngine(),
		Sounds:     sound.NewSoundManager(),
		TieBreaker: gameclient.NewTieBreaker(session.PlayerID()),
		phase:      PhaseConnecting,
		NameInput:  name,
		GoalInput:  goal,
		CodeInput:  code,
		inbound:    make(chan tea.Msg, 64),
	}

	channel.OnMessage = func(msg *protocol.Message) {
		m.push(ServerMessage{Msg: msg})
	}
	channel.OnStateChange = func(st netclient.State) {
		m.push(ChannelStateMsg{State: st})
	}
	channel.OnResync = m.Rejoin

	return m
}

// push hands an event from a network goroutine to the tea loop. On a
// full buffer the oldest event is evicted: state is last-wins, so the
// newest event is always the one worth keeping.
func (m *AppModel) push(msg tea.Msg) {
	select {
	case m.inbound <- msg:
		return
	default:
	}

	select {
	case <-m.inbound:
	default:
	}

	select {
	case m.inbound <- msg:
	default:
		logger.LogError("inbound event dropped: buffer full")
	}
}

// Listen returns a command that delivers the next inbound event. The
// update loop re-issues it after every delivery.
func (m *AppModel) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.inbound
	}
}

// Phase returns the active screen.
func (m *AppModel) Phase() Phase {
	return m.phase
}

// SetPhase switches screens.
func (m *AppModel) SetPhase(p Phase) {
	m.phase = p
}

// Rejoin re-sends the join handshake for the cached game context. Safe
// to call from any goroutine; the in-flight latch absorbs overlapping
// resume triggers.
func (m *AppModel) Rejoin() {
	gameID, name := m.Session.GameContext()
	if gameID == "" {
		return
	}
	if name == "" {
		name = "Player"
	}

	err := m.Channel.JoinGame(gameID, m.Session.PlayerID(), name)
	if err != nil && err != netclient.ErrJoinInFlight {
		logger.LogError("rejoin failed: %v", err)
	}
}

// GoalSize parses the lobby goal input, clamped to a sane range.
func (m *AppModel) GoalSize() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.GoalInput.Value()))
	if err != nil || n == 0 {
		return 20
	}
	if n < 5 {
		return 5
	}
	if n > 50 {
		return 50
	}
	return n
}

// --- Transient cue tokens ---

// ShowToast installs a transient notice and returns its token.
func (m *AppModel) ShowToast(msg string) int {
	m.Toast = msg
	m.toastSeq++
	return m.toastSeq
}

// ExpireToast clears the notice if the token is still current.
func (m *AppModel) ExpireToast(seq int) {
	if seq == m.toastSeq {
		m.Toast = ""
	}
}

// ShowRecyclePulse activates the recycle cue and returns its token.
func (m *AppModel) ShowRecyclePulse() int {
	m.RecyclePulse = true
	m.recycleSeq++
	return m.recycleSeq
}

// ExpireRecyclePulse clears the cue if the token is still current.
func (m *AppModel) ExpireRecyclePulse(seq int) {
	if seq == m.recycleSeq {
		m.RecyclePulse = false
	}
}

// ShowCopied activates the clipboard hint and returns its token.
func (m *AppModel) ShowCopied() int {
	m.Copied = true
	m.copiedSeq++
	return m.copiedSeq
}

// ExpireCopied clears the hint if the token is still current.
func (m *AppModel) ExpireCopied(seq int) {
	if seq == m.copiedSeq {
		m.Copied = false
	}
}

// ScheduleAutoReturn arms the single return-to-lobby timer and returns
// its token. Any previously armed timer becomes stale.
func (m *AppModel) ScheduleAutoReturn() int {
	m.autoReturn++
	return m.autoReturn
}

// AutoReturnCurrent reports whether the token is still the armed timer.
func (m *AppModel) AutoReturnCurrent(seq int) bool {
	return seq == m.autoReturn
}

// CancelAutoReturn invalidates any armed timer.
func (m *AppModel) CancelAutoReturn() {
	m.autoReturn++
}

// EnterLobby resets the per-game state for a fresh session.
func (m *AppModel) EnterLobby() {
	m.CancelAutoReturn()
	m.Store.ClearTerminalError()
	m.Session.ClearGameContext()
	m.Engine.Sync(nil)
	m.Finish.Reset()
	m.Recycle = gameclient.RecycleTracker{}
	m.TieBreaker = gameclient.NewTieBreaker(m.Session.PlayerID())
	m.WinnerName = ""
	m.LocalWin = false
	m.CodeInput.SetValue("")
	m.phase = PhaseLobby
	m.Focus = FieldName
	m.NameInput.Focus()
	m.GoalInput.Blur()
	m.CodeInput.Blur()
}

// Display returns the snapshot the board should render: authoritative
// state with the optimistic overlay applied.
func (m *AppModel) Display() *protocol.GameSnapshot {
	return m.Engine.Display(m.Store.Current())
}
