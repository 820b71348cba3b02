package handler

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ovalle/stockpile/internal/logger"
	"github.com/ovalle/stockpile/internal/network/protocol"
	"github.com/ovalle/stockpile/internal/sound"
	"github.com/ovalle/stockpile/internal/ui/model"
)

func handleServerMessage(m *model.AppModel, msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgGameState:
		return handleGameState(m, msg)
	case protocol.MsgError:
		return handleError(m, msg)
	}
	return nil
}

func handleGameState(m *model.AppModel, msg *protocol.Message) tea.Cmd {
	var s protocol.GameSnapshot
	if err := msg.DecodePayload(&s); err != nil {
		logger.LogError("bad game_state payload: %v", err)
		return nil
	}

	m.Channel.FinishJoin()

	m.Store.Apply(&s)
	m.Engine.Sync(&s)
	m.TieBreaker.Sync(s.TieBreaker)

	// A dead-game panel blocks everything until the user leaves.
	if m.Phase() == model.PhaseTerminalError {
		return nil
	}

	var cmds []tea.Cmd

	switch s.Status {
	case protocol.StatusWaiting:
		m.SetPhase(model.PhaseWaiting)
	case protocol.StatusResolvingTie:
		m.SetPhase(model.PhaseTieBreak)
	case protocol.StatusFinished:
		m.SetPhase(model.PhaseFinished)
	default:
		m.SetPhase(model.PhaseBoard)
	}

	if s.Status != protocol.StatusFinished {
		// A re-opened game supersedes any armed return timer.
		m.CancelAutoReturn()
	}

	if out := m.Finish.Observe(&s); out.ScheduleReturn {
		m.WinnerName = out.WinnerName
		m.LocalWin = out.LocalWin
		if out.Celebrate {
			m.Sounds.Play(sound.CueVictory)
		}
		seq := m.ScheduleAutoReturn()
		cmds = append(cmds, tick(m.Cfg.UI.AutoReturnDelay(), model.AutoReturnMsg{Seq: seq}))
	}

	if m.Recycle.Observe(s.PilesToRecycleCount) {
		m.Sounds.Play(sound.CueRecycle)
		seq := m.ShowRecyclePulse()
		cmds = append(cmds, tick(m.Cfg.UI.RecycleWindow(), model.RecycleExpiredMsg{Seq: seq}))
	}

	return tea.Batch(cmds...)
}

func handleError(m *model.AppModel, msg *protocol.Message) tea.Cmd {
	errMsg := protocol.ParseErrorPayload(msg.Payload)
	logger.LogError("server error: %s", errMsg)

	m.Channel.FinishJoin()
	m.Store.PushError(errMsg)

	if m.Store.IsSessionInvalid(errMsg) {
		// Blocking panel with a single recovery action.
		m.SetPhase(model.PhaseTerminalError)
		return nil
	}

	// Recoverable: transient toast, auto-expires.
	m.Sounds.Play(sound.CueError)
	seq := m.ShowToast(errMsg)
	return tick(m.Cfg.UI.ToastWindow(), model.ToastExpiredMsg{Seq: seq})
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
