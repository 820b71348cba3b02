// Package view renders each phase of the terminal UI.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	gameclient "github.com/ovalle/stockpile/internal/client"
	"github.com/ovalle/stockpile/internal/network/protocol"
	"github.com/ovalle/stockpile/internal/ui/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("228")).Bold(true)
	wildStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	pulseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// Render draws the active screen.
func Render(m *model.AppModel) string {
	var body string

	switch m.Phase() {
	case model.PhaseConnecting:
		body = connectingView(m)
	case model.PhaseLobby:
		body = lobbyView(m)
	case model.PhaseWaiting:
		body = waitingView(m)
	case model.PhaseTieBreak:
		body = tieBreakView(m)
	case model.PhaseBoard, model.PhaseFinished:
		body = boardView(m)
	case model.PhaseTerminalError:
		body = terminalErrorView(m)
	default:
		body = "unknown phase"
	}

	return body + footer(m)
}

func footer(m *model.AppModel) string {
	var sb strings.Builder
	if m.Toast != "" {
		sb.WriteString("\n" + errorStyle.Render("⚠ "+m.Toast))
	}
	if m.ChannelState != 0 && !m.Channel.IsConnected() {
		sb.WriteString("\n" + dimStyle.Render("("+m.ChannelState.String()+")"))
	}
	return sb.String()
}

func connectingView(m *model.AppModel) string {
	return titleStyle.Render("STOCKPILE") + "\n\nConnecting to server...\n"
}

func lobbyView(m *model.AppModel) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("STOCKPILE") + "\n\n")
	sb.WriteString("  Name: " + m.NameInput.View() + "\n")
	sb.WriteString("  Goal: " + m.GoalInput.View() + "\n")
	sb.WriteString("  Code: " + m.CodeInput.View() + "\n\n")
	sb.WriteString(dimStyle.Render("tab: next field · enter: create (or join with a code) · esc: quit") + "\n")
	return sb.String()
}

func waitingView(m *model.AppModel) string {
	s := m.Store.Current()
	if s == nil {
		return "Waiting...\n"
	}

	code := s.GameID
	hint := "c: copy code · q: back to lobby"
	if m.Copied {
		hint = noticeStyle.Render("Copied!")
	}

	content := titleStyle.Render("WAITING FOR OPPONENT") + "\n\n" +
		"Room code: " + selStyle.Render(" "+code+" ") + "\n\n" +
		dimStyle.Render(hint)

	return boxStyle.Render(content) + "\n"
}

func tieBreakView(m *model.AppModel) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("TIE BREAKER") + "\n\n")
	sb.WriteString(noticeStyle.Render(m.TieBreaker.StatusMessage()) + "\n\n")

	s := m.Store.Current()
	if s != nil {
		if my := protocol.TopCard(s.Me.GoalPile); my != nil {
			sb.WriteString(fmt.Sprintf("Your goal card: %s\n", cardLabel(*my)))
		}
		if s.Opponent != nil {
			if opp := protocol.TopCard(s.Opponent.GoalPile); opp != nil {
				sb.WriteString(fmt.Sprintf("Opponent goal card: %s\n", cardLabel(*opp)))
			}
		}
	}

	if m.TieBreaker.LocalChoice() != "" {
		sb.WriteString("\nYou chose: " + string(m.TieBreaker.LocalChoice()) + "\n")
	} else {
		sb.WriteString("\n" + dimStyle.Render("r: rock · p: paper · s: scissors") + "\n")
	}
	return sb.String()
}

func boardView(m *model.AppModel) string {
	s := m.Display()
	if s == nil {
		return "Loading...\n"
	}

	var sb strings.Builder

	turn := "Opponent's turn"
	if s.IsMyTurn() {
		turn = noticeStyle.Render("YOUR TURN")
	}
	sb.WriteString(titleStyle.Render("STOCKPILE") + "  " + turn + "\n\n")

	if s.Opponent != nil {
		sb.WriteString(fmt.Sprintf("%s · goal left: %d, hand: %d\n",
			s.Opponent.Name, s.Opponent.GoalRemaining, len(s.Opponent.Hand)))
		sb.WriteString(renderPileRow("  their discards", s.Opponent.Discards, nil, ""))
		sb.WriteString("\n")
	}

	recycle := ""
	if m.RecyclePulse {
		recycle = "  " + pulseStyle.Render("♻ recycled!")
	} else if s.PilesToRecycleCount >= 2 {
		recycle = "  " + errorStyle.Render(fmt.Sprintf("♻ %d pending", s.PilesToRecycleCount))
	}
	sb.WriteString(fmt.Sprintf("Draw pile: %d%s\n", s.DrawPileCount, recycle))
	sb.WriteString(renderPileRow("  piles [u i o p]", s.CommonPiles, nil, ""))
	sb.WriteString("\n")

	sel := m.Engine.Selection()

	goalLabel := "(empty)"
	if top := protocol.TopCard(s.Me.GoalPile); top != nil {
		goalLabel = cardLabel(*top)
		if sel != nil && sel.Source == protocol.SourceGoal {
			goalLabel = selStyle.Render(goalLabel)
		}
	}
	sb.WriteString(fmt.Sprintf("%s · goal left: %d, goal top [g]: %s\n", s.Me.Name, s.Me.GoalRemaining, goalLabel))
	sb.WriteString(renderPileRow("  discards [a s d f]", s.Me.Discards, sel, protocol.SourceDiscard))
	sb.WriteString(renderHand(s, sel))

	if m.Phase() == model.PhaseFinished {
		sb.WriteString("\n" + finishedBanner(m))
	} else {
		sb.WriteString("\n" + dimStyle.Render("1-5: pick card · u/i/o/p: play pile · a/s/d/f: discard · esc: clear") + "\n")
	}

	return sb.String()
}

// renderPileRow draws the top card of each stack in a row.
func renderPileRow(label string, piles [][]protocol.Card, sel *gameclient.Selection, source protocol.Source) string {
	var cells []string
	for i, pile := range piles {
		cell := "[· ]"
		if top := protocol.TopCard(pile); top != nil {
			cell = "[" + cardLabel(*top) + "]"
			if sel != nil && sel.Source == source && sel.Index == i {
				cell = selStyle.Render(cell)
			}
		}
		cells = append(cells, cell)
	}
	return fmt.Sprintf("%s: %s\n", label, strings.Join(cells, " "))
}

func renderHand(s *protocol.GameSnapshot, sel *gameclient.Selection) string {
	var cells []string
	for i, c := range s.Me.Hand {
		cell := fmt.Sprintf("%d:%s", i+1, cardLabel(c))
		if sel != nil && sel.Source == protocol.SourceHand && sel.CardID == c.ID {
			cell = selStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	return "  hand: " + strings.Join(cells, "  ") + "\n"
}

func finishedBanner(m *model.AppModel) string {
	banner := fmt.Sprintf("Winner: %s", m.WinnerName)
	if m.LocalWin {
		banner = "🎉 YOU WIN! 🎉"
	}
	return boxStyle.Render(banner+"\n"+dimStyle.Render("returning to lobby shortly · enter: leave now")) + "\n"
}

func terminalErrorView(m *model.AppModel) string {
	content := errorStyle.Render("Oops! Something went wrong") + "\n\n" +
		m.Store.TerminalError() + "\n\n" +
		dimStyle.Render("enter: back to lobby")
	return boxStyle.Render(content) + "\n"
}

func cardLabel(c protocol.Card) string {
	if c.IsWild || c.Value == protocol.WildValue {
		return wildStyle.Render("★")
	}
	return fmt.Sprintf("%d", c.Value)
}
