// Package ui binds the app model, handler and view into a tea.Model.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ovalle/stockpile/internal/logger"
	"github.com/ovalle/stockpile/internal/ui/handler"
	"github.com/ovalle/stockpile/internal/ui/model"
	"github.com/ovalle/stockpile/internal/ui/view"
)

// App is the bubbletea program root. All state lives in the AppModel;
// App only routes Init/Update/View to the right package.
type App struct {
	m *model.AppModel
}

// NewApp wraps an already-wired model.
func NewApp(m *model.AppModel) App {
	return App{m: m}
}

// Init dials the server and starts draining network events.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.connect(), a.m.Listen())
}

func (a App) connect() tea.Cmd {
	return func() tea.Msg {
		if err := a.m.Channel.Connect(); err != nil {
			// The retry loop is already running; surface nothing here.
			logger.LogError("initial dial: %v", err)
		}
		return nil
	}
}

// Update delegates to the handler package.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, handler.Handle(a.m, msg)
}

// View delegates to the view package.
func (a App) View() string {
	return view.Render(a.m)
}
